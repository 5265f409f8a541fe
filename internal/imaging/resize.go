package imaging

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Filter selects the resampling kernel used by Resize.
type Filter int

const (
	// FilterLanczos3 is the default: sharpest downscale, slight ringing.
	FilterLanczos3 Filter = iota
	FilterNearest
	FilterTriangle
	FilterCatmullRom
	FilterGaussian
)

// ParseFilter maps a case-insensitive filter name to a Filter. Unrecognized
// names, including the empty string, select FilterLanczos3.
func ParseFilter(name string) Filter {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nearest":
		return FilterNearest
	case "triangle":
		return FilterTriangle
	case "catmullrom", "catmull":
		return FilterCatmullRom
	case "gaussian":
		return FilterGaussian
	default:
		return FilterLanczos3
	}
}

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterTriangle:
		return "triangle"
	case FilterCatmullRom:
		return "catmullrom"
	case FilterGaussian:
		return "gaussian"
	default:
		return "lanczos3"
	}
}

func (f Filter) kernel() imaging.ResampleFilter {
	switch f {
	case FilterNearest:
		return imaging.NearestNeighbor
	case FilterTriangle:
		return imaging.Linear
	case FilterCatmullRom:
		return imaging.CatmullRom
	case FilterGaussian:
		return imaging.Gaussian
	default:
		return imaging.Lanczos
	}
}

// Resize resamples img to exactly width × height with the given filter.
// The aspect ratio is not preserved; use FitWithin for that.
//
// Returns ErrInvalidParameters if either dimension is not positive.
func Resize(img *image.NRGBA, width, height int, f Filter) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameters, "target size %dx%d must be positive", width, height)
	}
	return imaging.Resize(img, width, height, f.kernel()), nil
}
