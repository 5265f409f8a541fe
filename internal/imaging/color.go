package imaging

import (
	"image"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a sampled color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// SampleColor reports the interpolated color at a real-valued coordinate.
//
// Parameters:
//   - img: The source grid.
//   - x, y: Position in source pixel space. Fractional positions blend the
//     four neighbouring pixels exactly as the geometric transforms do.
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: ErrInvalidParameters if the coordinate lies outside
//     [0, W-1] × [0, H-1]. Unlike SampleBilinear, which clamps, a probe
//     outside the image is treated as a caller mistake.
func SampleColor(img *image.NRGBA, x, y float64) (*ColorResult, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if math.IsNaN(x) || math.IsNaN(y) || x < 0 || y < 0 || x > float64(w-1) || y > float64(h-1) {
		return nil, errors.Wrapf(ErrInvalidParameters, "coordinates (%g,%g) outside image bounds %dx%d", x, y, w, h)
	}

	c := SampleBilinear(img, x, y)
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	hue, sat, light := cf.Hsl()

	return &ColorResult{
		Hex:  strings.ToUpper(cf.Hex()),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL: HSLColor{
			H: int(math.Round(hue)) % 360,
			S: int(math.Round(sat * 100)),
			L: int(math.Round(light * 100)),
		},
	}, nil
}

// LabeledPoint is a sample position with an optional descriptive label.
type LabeledPoint struct {
	X     float64 // X coordinate in source pixel space
	Y     float64 // Y coordinate in source pixel space
	Label string  // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"` // Optional label (empty if not provided)
	X     float64     `json:"x"`               // X coordinate that was sampled
	Y     float64     `json:"y"`               // Y coordinate that was sampled
	Color ColorResult `json:"color"`           // The color at this location
}

// MultiColorResult contains color samples from multiple points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples every point with SampleColor. If any point is
// out of bounds the whole call fails and no partial results are returned.
func SampleColorsMulti(img *image.NRGBA, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to sample point (%g,%g)", p.X, p.Y)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}
