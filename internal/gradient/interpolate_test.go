package gradient

import (
	"math"
	"testing"
)

var (
	black = Color{R: 0, G: 0, B: 0, A: 0}
	white = Color{R: 1, G: 1, B: 1, A: 1}
)

func almostEqual(a, b Color) bool {
	const eps = 1e-12
	return math.Abs(a.R-b.R) < eps &&
		math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps &&
		math.Abs(a.A-b.A) < eps
}

func TestInterpolate_BoundariesAreExact(t *testing.T) {
	a := Color{R: 0.1, G: 0.2, B: 0.3, A: 0.15}
	b := Color{R: 0.9, G: 0.7, B: 0.13, A: 1}
	stops := []Color{a, b}

	if got := Interpolate(stops, 0); got != a {
		t.Errorf("Interpolate(t=0) = %+v, want %+v", got, a)
	}
	if got := Interpolate(stops, 1); got != b {
		t.Errorf("Interpolate(t=1) = %+v, want %+v", got, b)
	}
}

func TestInterpolate(t *testing.T) {
	mid := Color{R: 0.5, G: 0.5, B: 0.5, A: 0.5}
	red := Color{R: 1, A: 1}

	tests := []struct {
		name  string
		stops []Color
		t     float64
		want  Color
	}{
		{"Midpoint of two stops", []Color{black, white}, 0.5, mid},
		{"Quarter of two stops", []Color{black, white}, 0.25, Color{R: 0.25, G: 0.25, B: 0.25, A: 0.25}},
		{"Below zero clamps", []Color{black, white}, -3, black},
		{"Above one clamps", []Color{black, white}, 7, white},
		{"NaN treated as zero", []Color{black, white}, math.NaN(), black},
		{"Three stops middle hits inner stop", []Color{black, red, white}, 0.5, red},
		{"Three stops first segment", []Color{black, red, white}, 0.25, Color{R: 0.5, A: 0.5}},
		{"Three stops second segment", []Color{black, red, white}, 0.75, Color{R: 1, G: 0.5, B: 0.5, A: 1}},
		{"Three stops end", []Color{black, red, white}, 1, white},
		{"Single stop fallback", []Color{red}, 0.7, red},
		{"No stops fallback", nil, 0.7, Transparent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.stops, tt.t)
			if !almostEqual(got, tt.want) {
				t.Errorf("Interpolate(%v) = %+v, want %+v", tt.t, got, tt.want)
			}
		})
	}
}

func TestInterpolate_LinearWithinSegment(t *testing.T) {
	stops := []Color{black, white, black}

	// Inside the first segment the red channel must rise linearly with t
	prev := Interpolate(stops, 0).R
	for i := 1; i <= 10; i++ {
		tt := float64(i) * 0.05
		got := Interpolate(stops, tt).R
		if got <= prev {
			t.Fatalf("Interpolate(%v).R = %v, not increasing from %v", tt, got, prev)
		}
		if want := tt * 2; math.Abs(got-want) > 1e-12 {
			t.Errorf("Interpolate(%v).R = %v, want %v", tt, got, want)
		}
		prev = got
	}
}

func TestInterpolate_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		tt := float64(i) / 99
		if Interpolate(Green, tt) != Interpolate(Green, tt) {
			t.Fatalf("Interpolate(%v) is not deterministic", tt)
		}
	}
}

func TestBlend(t *testing.T) {
	got := Blend(black, white, 0.5)
	want := Color{R: 0.5, G: 0.5, B: 0.5, A: 0.5}
	if !almostEqual(got, want) {
		t.Errorf("Blend() = %+v, want %+v", got, want)
	}
}
