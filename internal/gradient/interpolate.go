package gradient

import "math"

// Interpolate returns the color at t along a piecewise-linear gradient.
//
// t is clamped to [0,1] (NaN counts as 0). The stops split [0,1] into len(stops)-1 equal
// segments and the two stops bounding t are blended channel by channel.
// With fewer than two stops it returns the single stop, or Transparent
// when there are none.
func Interpolate(stops []Color, t float64) Color {
	if len(stops) < 2 {
		if len(stops) == 1 {
			return stops[0]
		}
		return Transparent
	}

	if math.IsNaN(t) {
		t = 0
	}
	clamped := math.Min(math.Max(t, 0), 1)
	segments := len(stops) - 1
	scaled := clamped * float64(segments)
	index := int(math.Floor(scaled))
	if index > segments-1 {
		index = segments - 1
	}
	localT := scaled - float64(index)

	return Blend(stops[index], stops[index+1], localT)
}

// Blend linearly mixes two colors; fraction 0 gives a, 1 gives b
func Blend(a, b Color, fraction float64) Color {
	return Color{
		R: lerp(a.R, b.R, fraction),
		G: lerp(a.G, b.G, fraction),
		B: lerp(a.B, b.B, fraction),
		A: lerp(a.A, b.A, fraction),
	}
}

// lerp is exact at both ends
func lerp(a, b, f float64) float64 {
	return a*(1-f) + b*f
}
