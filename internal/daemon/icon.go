package daemon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/username/calendar-heatmap/internal/gradient"
)

const iconSize = 16

// heatmapIcon draws a 3x3 block of gradient cells as an ICO, which is what
// the Windows tray expects
func heatmapIcon(stops []gradient.Color) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	const cell, gap = 4, 1
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			t := float64((row*3+col)%5) / 4
			c := gradient.Interpolate(stops, t).Flatten(gradient.RGB(1, 1, 1))
			x0, y0 := gap+col*(cell+gap), gap+row*(cell+gap)
			for y := y0; y < y0+cell; y++ {
				for x := x0; x < x0+cell; x++ {
					img.Set(x, y, c)
				}
			}
		}
	}

	var ico bytes.Buffer
	if err := encodeICO(&ico, img); err != nil {
		return nil, err
	}
	return ico.Bytes(), nil
}

// encodeICO writes img as a single-entry ICO holding a PNG
func encodeICO(w io.Writer, img image.Image) error {
	var pngData bytes.Buffer
	if err := png.Encode(&pngData, img); err != nil {
		return fmt.Errorf("failed to encode icon: %w", err)
	}

	size := img.Bounds().Size()
	header := []any{
		// ICONDIR
		[3]uint16{0, 1, 1},
		// ICONDIRENTRY
		[4]uint8{uint8(size.X), uint8(size.Y), 0, 0},
		[2]uint16{1, 32},
		[2]uint32{uint32(pngData.Len()), 6 + 16},
	}
	for _, field := range header {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("failed to write icon header: %w", err)
		}
	}

	if _, err := w.Write(pngData.Bytes()); err != nil {
		return fmt.Errorf("failed to write icon image: %w", err)
	}
	return nil
}
