package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Rect is an axis-aligned region given by its top-left origin and size.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Crop copies a rectangular region out of img without resampling.
//
// A rectangle that overflows the right or bottom edge is shrunk to
// min(requested, sourceDimension-origin) rather than rejected.
//
// Returns ErrInvalidRegion if the width or height is zero or negative, or if
// the origin lies outside the source (negative, x >= W or y >= H).
func Crop(img *image.NRGBA, r Rect) (*image.NRGBA, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, errors.Wrapf(ErrInvalidRegion, "crop size %dx%d must be positive", r.Width, r.Height)
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	if r.X < 0 || r.Y < 0 || r.X >= w || r.Y >= h {
		return nil, errors.Wrapf(ErrInvalidRegion, "crop origin (%d,%d) outside image bounds %dx%d", r.X, r.Y, w, h)
	}

	cw := minInt(r.Width, w-r.X)
	ch := minInt(r.Height, h-r.Y)

	o := img.Rect.Min
	return imaging.Crop(img, image.Rect(o.X+r.X, o.Y+r.Y, o.X+r.X+cw, o.Y+r.Y+ch)), nil
}

// CropRegion extracts a named region from an image.
//
// Supported names are top-left, top-right, bottom-left, bottom-right,
// top-half, bottom-half, left-half, right-half and center (the middle 50% in
// each dimension). Unknown names fail with ErrInvalidParameters.
func CropRegion(img *image.NRGBA, region string) (*image.NRGBA, error) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	midX := w / 2
	midY := h / 2

	var r Rect

	switch region {
	case "top-left":
		r = Rect{0, 0, midX, midY}
	case "top-right":
		r = Rect{midX, 0, w - midX, midY}
	case "bottom-left":
		r = Rect{0, midY, midX, h - midY}
	case "bottom-right":
		r = Rect{midX, midY, w - midX, h - midY}
	case "top-half":
		r = Rect{0, 0, w, midY}
	case "bottom-half":
		r = Rect{0, midY, w, h - midY}
	case "left-half":
		r = Rect{0, 0, midX, h}
	case "right-half":
		r = Rect{midX, 0, w - midX, h}
	case "center":
		qW := w / 4
		qH := h / 4
		r = Rect{qW, qH, w - 2*qW, h - 2*qH}
	default:
		return nil, errors.Wrapf(ErrInvalidParameters, "unknown region: %s", region)
	}

	return Crop(img, r)
}
