package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/username/calendar-heatmap/internal/calendar"
	"go.uber.org/zap"
)

func TestFileSource_Load(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	cal := calendar.MustGregorian(time.UTC)

	path := filepath.Join(t.TempDir(), "activity.txt")
	content := `# commits per day
2025-01-01 3
2025-01-02 0.5

2025-01-02 1.5
2025-01-03
not-a-date 4
2025-01-04 many
15.01.2025 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	values, err := NewFileSource(path, cal, logger).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[time.Time]float64{
		utcDate(2025, 1, 1):  3,
		utcDate(2025, 1, 2):  2,
		utcDate(2025, 1, 15): 7,
	}

	if len(values) != len(want) {
		t.Fatalf("loaded %d days, want %d: %v", len(values), len(want), values)
	}
	for d, w := range want {
		if values[d] != w {
			t.Errorf("%s = %v, want %v", d.Format("2006-01-02"), values[d], w)
		}
	}
}

func TestFileSource_LoadMissingFile(t *testing.T) {
	fs := NewFileSource(filepath.Join(t.TempDir(), "missing.txt"), calendar.MustGregorian(time.UTC), zap.NewNop())

	if _, err := fs.Load(); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestFileSource_SaveThenLoad(t *testing.T) {
	cal := calendar.MustGregorian(time.UTC)
	path := filepath.Join(t.TempDir(), "nested", "activity.txt")
	fs := NewFileSource(path, cal, zap.NewNop())

	values := Values{
		utcDate(2025, 2, 1):  0.25,
		utcDate(2025, 1, 31): 12,
	}
	if err := fs.Save(values); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	wantContent := "# date value\n2025-01-31 12\n2025-02-01 0.25\n"
	if string(data) != wantContent {
		t.Errorf("file content = %q, want %q", string(data), wantContent)
	}

	loaded, err := fs.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 2 || loaded[utcDate(2025, 2, 1)] != 0.25 {
		t.Errorf("Load() = %v", loaded)
	}
}
