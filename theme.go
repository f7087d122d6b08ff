package faceframe

// Design tokens shared by the site widgets and the CLI. Values follow the
// brand guide: warm neutrals with a champagne gold accent.

// Palette holds the brand colors.
var Palette = struct {
	Ivory     Color
	Cream     Color
	Champagne Color
	Gold      Color
	Blush     Color
	Espresso  Color
	Charcoal  Color
	Overlay   Color
}{
	Ivory:     RGB(0xfb, 0xf8, 0xf3),
	Cream:     RGB(0xf3, 0xec, 0xe2),
	Champagne: RGB(0xe8, 0xd5, 0xb5),
	Gold:      RGB(0xc9, 0xa9, 0x6e),
	Blush:     RGB(0xe9, 0xc6, 0xc0),
	Espresso:  RGB(0x3b, 0x2a, 0x20),
	Charcoal:  RGB(0x22, 0x20, 0x1e),
	Overlay:   Color{R: 0.08, G: 0.07, B: 0.06, A: 0.55},
}

// Spacing scale in pixels.
const (
	SpaceXS  = 4.0
	SpaceSM  = 8.0
	SpaceMD  = 16.0
	SpaceLG  = 24.0
	SpaceXL  = 40.0
	Space2XL = 64.0
)

// Corner radii in pixels.
const (
	RadiusSM   = 2.0
	RadiusMD   = 6.0
	RadiusPill = 999.0
)

// Type sizes in pixels.
const (
	TypeCaption = 11.0
	TypeLabel   = 13.0
	TypeBody    = 16.0
	TypeHeading = 28.0
)

// Motion durations in seconds.
const (
	DurationFast   = 0.2
	DurationBase   = 0.4
	DurationSlow   = 0.8
	DurationReveal = 2.0
)

// EaseLuxury is the house easing curve, cubic-bezier(0.19, 1, 0.22, 1).
// Every programmatic transition uses it so motion feels consistent.
var EaseLuxury = CubicBezier(0.19, 1, 0.22, 1)
