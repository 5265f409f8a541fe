package imaging

import (
	"image"
	"math"

	"github.com/pkg/errors"
)

// FitScale returns the uniform scale factor that fits a srcW × srcH image
// inside maxW × maxH. A zero bound leaves that dimension unconstrained. The
// stricter of the two ratios wins, so the aspect ratio is preserved and both
// bounds hold.
func FitScale(srcW, srcH, maxW, maxH int) float64 {
	if maxW <= 0 {
		maxW = srcW
	}
	if maxH <= 0 {
		maxH = srcH
	}
	scaleW := float64(maxW) / float64(srcW)
	scaleH := float64(maxH) / float64(srcH)
	return math.Min(scaleW, scaleH)
}

// FitWithin scales img uniformly to fit inside maxWidth × maxHeight.
//
// Parameters:
//   - img: The source grid.
//   - maxWidth, maxHeight: Bounding box; 0 means unconstrained in that
//     dimension. At least one must be positive.
//   - allowUpscale: If false and the image already fits (scale >= 1), the
//     source is returned unchanged.
//
// Returns:
//   - *image.NRGBA: Either img itself (no resize needed) or a new grid of
//     round(dimension * scale), never smaller than 1, resampled with
//     Lanczos-3.
//   - error: ErrInvalidParameters if both bounds are zero or negative.
func FitWithin(img *image.NRGBA, maxWidth, maxHeight int, allowUpscale bool) (*image.NRGBA, error) {
	if maxWidth <= 0 && maxHeight <= 0 {
		return nil, errors.Wrap(ErrInvalidParameters, "provide at least one dimension to optimize")
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameters, "cannot fit %dx%d image", w, h)
	}

	tw, th, resize := FitSize(w, h, maxWidth, maxHeight, allowUpscale)
	if !resize {
		return img, nil
	}
	return Resize(img, tw, th, FilterLanczos3)
}

// FitSize returns the dimensions FitWithin would produce for a srcW × srcH
// source, and false when it would return the source unchanged. It touches
// no pixels, so callers can vet the result size before decoding.
func FitSize(srcW, srcH, maxWidth, maxHeight int, allowUpscale bool) (w, h int, resize bool) {
	scale := FitScale(srcW, srcH, maxWidth, maxHeight)
	if !allowUpscale && scale >= 1 {
		return srcW, srcH, false
	}
	return scaledDim(srcW, scale), scaledDim(srcH, scale), true
}

// scaledDim is round(n * scale) held to [1, MaxInt32].
func scaledDim(n int, scale float64) int {
	d := math.Round(float64(n) * scale)
	if d < 1 {
		return 1
	}
	if d > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(d)
}

// Optimize fits img inside the bounding box (see FitWithin) and encodes the
// result with the given format and quality.
func Optimize(img *image.NRGBA, maxWidth, maxHeight, quality int, format Format, allowUpscale bool) ([]byte, error) {
	fitted, err := FitWithin(img, maxWidth, maxHeight, allowUpscale)
	if err != nil {
		return nil, err
	}
	return Encode(fitted, format, quality)
}
