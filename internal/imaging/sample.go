package imaging

import (
	"image"
	"image/color"
	"math"
)

// SampleBilinear returns the colour at a real-valued position by blending the
// four surrounding pixels.
//
// Coordinates are clamped to [0, W-1] × [0, H-1] first, so positions past an
// edge repeat the edge pixel. Each channel, alpha included, is interpolated
// independently, rounded to nearest and clamped to [0,255]. A grid with no
// pixels yields the zero colour.
func SampleBilinear(img *image.NRGBA, x, y float64) color.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return color.NRGBA{}
	}

	cx := clampFloat(x, 0, float64(w-1))
	cy := clampFloat(y, 0, float64(h-1))

	x0 := int(math.Floor(cx))
	y0 := int(math.Floor(cy))
	x1 := minInt(x0+1, w-1)
	y1 := minInt(y0+1, h-1)

	dx := cx - float64(x0)
	dy := cy - float64(y0)

	p00 := img.PixOffset(img.Rect.Min.X+x0, img.Rect.Min.Y+y0)
	p10 := img.PixOffset(img.Rect.Min.X+x1, img.Rect.Min.Y+y0)
	p01 := img.PixOffset(img.Rect.Min.X+x0, img.Rect.Min.Y+y1)
	p11 := img.PixOffset(img.Rect.Min.X+x1, img.Rect.Min.Y+y1)

	var out [4]uint8
	for i := 0; i < 4; i++ {
		top := lerp(float64(img.Pix[p00+i]), float64(img.Pix[p10+i]), dx)
		bottom := lerp(float64(img.Pix[p01+i]), float64(img.Pix[p11+i]), dx)
		out[i] = clampChannel(lerp(top, bottom, dy))
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// clampChannel rounds v to the nearest integer and clamps it to a byte.
func clampChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
