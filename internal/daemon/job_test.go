package daemon

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/username/calendar-heatmap/internal/activity"
	"github.com/username/calendar-heatmap/internal/calendar"
	"github.com/username/calendar-heatmap/internal/daterange"
	"github.com/username/calendar-heatmap/internal/gradient"
	"github.com/username/calendar-heatmap/internal/render"
	"github.com/username/calendar-heatmap/internal/selection"
	"go.uber.org/zap"
)

func TestRenderJob_Render(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()
	cal := calendar.MustGregorian(time.UTC)

	dataFile := filepath.Join(dir, "activity.txt")
	data := "# date value\n2025-02-03 4\n2025-02-14 8\n"
	if err := os.WriteFile(dataFile, []byte(data), 0644); err != nil {
		t.Fatalf("write data: %v", err)
	}

	store := selection.NewStore(filepath.Join(dir, "selection.json"), cal, logger)
	if err := store.Select(time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), "month:2025-02"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	out := filepath.Join(dir, "out", "heatmap.txt")
	job := &RenderJob{
		Spec:       daterange.Month(2025, 2),
		Calendar:   cal,
		Source:     activity.NewFileSource(dataFile, cal, logger),
		Selection:  store,
		Stops:      gradient.Green,
		Empty:      gradient.DefaultEmpty,
		Style:      render.DefaultStyle(),
		OutputFile: out,
		Logger:     logger,
	}

	if err := job.Render(context.Background(), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(content)

	for _, want := range []string{"2025-02-01 .. 2025-02-28", "Feb", "[]", "Less", "More"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRenderJob_CancelledContext(t *testing.T) {
	job := &RenderJob{
		Spec:       daterange.CurrentMonth(),
		Calendar:   calendar.MustGregorian(time.UTC),
		OutputFile: filepath.Join(t.TempDir(), "heatmap.txt"),
		Logger:     zap.NewNop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := job.Render(ctx, time.Now()); err == nil {
		t.Error("Render() error = nil with cancelled context")
	}
	if _, err := os.Stat(job.OutputFile); !os.IsNotExist(err) {
		t.Errorf("output written despite cancelled context: %v", err)
	}
}

func TestRenderJob_ReplacesOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "heatmap.txt")
	if err := os.WriteFile(out, []byte("stale"), 0644); err != nil {
		t.Fatalf("write output: %v", err)
	}

	job := &RenderJob{
		Spec:       daterange.Month(2025, 2),
		Calendar:   calendar.MustGregorian(time.UTC),
		Stops:      gradient.Green,
		Empty:      gradient.DefaultEmpty,
		Style:      render.DefaultStyle(),
		OutputFile: out,
		Logger:     zap.NewNop(),
	}
	if err := job.Render(context.Background(), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(content), "stale") || !strings.Contains(string(content), "2025-02-01 .. 2025-02-28") {
		t.Errorf("output not replaced:\n%s", content)
	}

	// No temp files left next to the output
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("output directory holds %v, want only heatmap.txt", names)
	}
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	w.after--
	return len(p), nil
}

func TestEncodeICO_WriteErrors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	// Fail on the header, then on the image data after four header writes
	for _, after := range []int{0, 4} {
		if err := encodeICO(&failingWriter{after: after}, img); err == nil {
			t.Errorf("encodeICO() with writer failing after %d writes: error = nil", after)
		}
	}
}

func TestHeatmapIcon(t *testing.T) {
	ico, err := heatmapIcon(gradient.Green)
	if err != nil {
		t.Fatalf("heatmapIcon() error = %v", err)
	}

	if len(ico) < 22 {
		t.Fatalf("icon too short: %d bytes", len(ico))
	}
	if !bytes.Equal(ico[:6], []byte{0, 0, 1, 0, 1, 0}) {
		t.Errorf("ICONDIR = %v", ico[:6])
	}
	if !bytes.Equal(ico[22:30], []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("embedded image is not PNG: %v", ico[22:30])
	}
}
