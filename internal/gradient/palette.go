package gradient

var (
	gray  = MustParseHex("#8e8e93")
	green = MustParseHex("#34c759")
	blue  = MustParseHex("#007aff")
	red   = MustParseHex("#ff3b30")

	// DefaultEmpty fills in-range days that carry no value
	DefaultEmpty = gray.WithAlpha(0.15)
)

// Green is the GitHub-style contributions gradient
var Green = []Color{
	DefaultEmpty,
	green.WithAlpha(0.3),
	green.WithAlpha(0.5),
	green.WithAlpha(0.7),
	green,
}

// Blue gradient
var Blue = []Color{
	DefaultEmpty,
	blue.WithAlpha(0.3),
	blue.WithAlpha(0.5),
	blue.WithAlpha(0.7),
	blue,
}

// Heat is an orange-red gradient
var Heat = []Color{
	DefaultEmpty,
	MustParseHex("#ffcc00").WithAlpha(0.4),
	MustParseHex("#ff9500").WithAlpha(0.6),
	red.WithAlpha(0.8),
	red,
}

// Purple gradient
var Purple = []Color{
	DefaultEmpty,
	MustParseHex("#af52de").WithAlpha(0.3),
	MustParseHex("#af52de").WithAlpha(0.5),
	MustParseHex("#af52de").WithAlpha(0.7),
	MustParseHex("#af52de"),
}

// Palette returns a predefined gradient by name
func Palette(name string) ([]Color, bool) {
	switch name {
	case "green":
		return Green, true
	case "blue":
		return Blue, true
	case "heat":
		return Heat, true
	case "purple":
		return Purple, true
	default:
		return nil, false
	}
}
