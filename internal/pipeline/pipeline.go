// Package pipeline exposes the image operations as byte-buffer functions:
// compressed bytes in, compressed bytes out.
//
// Every call decodes, transforms and encodes synchronously with no state
// shared between calls, so a single Processor may serve concurrent
// requests without locking. Parameter checks that need no pixels run
// before decoding, so a malformed request never pays for a decode.
package pipeline

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-pipeline-mcp/internal/config"
	"github.com/ironsheep/image-pipeline-mcp/internal/imaging"
)

// Result is an encoded image together with its pixel dimensions.
type Result struct {
	Data   []byte
	Width  int
	Height int
	Format imaging.Format
}

// Processor runs pipeline operations with fixed settings.
type Processor struct {
	outputQuality   int
	maxInputBytes   int
	maxOutputPixels int
}

// NewProcessor creates a Processor from configuration. A nil cfg uses the
// defaults.
func NewProcessor(cfg *config.Config) *Processor {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Processor{
		outputQuality:   imaging.ClampQuality(cfg.OutputQuality),
		maxInputBytes:   cfg.MaxInputBytes,
		maxOutputPixels: cfg.MaxOutputPixels,
	}
}

// Crop copies the rectangle (x, y, width, height) out of the image and
// returns it as PNG. The rectangle is shrunk if it overflows the source.
func (p *Processor) Crop(data []byte, x, y, width, height int) (*Result, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrap(imaging.ErrInvalidRegion, "width and height must be positive")
	}
	return p.run("crop", data, func(img *imaging.Grid) (*imaging.Grid, error) {
		return imaging.Crop(img, imaging.Rect{X: x, Y: y, Width: width, Height: height})
	}, imaging.FormatPNG, p.outputQuality)
}

// CropRegion extracts a named region (see imaging.CropRegion) as PNG.
func (p *Processor) CropRegion(data []byte, region string) (*Result, error) {
	return p.run("crop_region", data, func(img *imaging.Grid) (*imaging.Grid, error) {
		return imaging.CropRegion(img, region)
	}, imaging.FormatPNG, p.outputQuality)
}

// PerspectiveCrop warps the quadrilateral given by points
// (x0,y0,x1,y1,x2,y2,x3,y3: top-left, top-right, bottom-right, bottom-left)
// onto an outWidth × outHeight rectangle and returns it as PNG.
func (p *Processor) PerspectiveCrop(data []byte, points []float64, outWidth, outHeight int) (*Result, error) {
	quad, err := imaging.QuadFromPoints(points)
	if err != nil {
		return nil, err
	}
	if outWidth <= 0 || outHeight <= 0 {
		return nil, errors.Wrap(imaging.ErrInvalidParameters, "output size must be positive")
	}
	if err := p.checkOutput(outWidth, outHeight); err != nil {
		return nil, err
	}
	return p.run("perspective_crop", data, func(img *imaging.Grid) (*imaging.Grid, error) {
		return imaging.PerspectiveWarp(img, quad, outWidth, outHeight)
	}, imaging.FormatPNG, p.outputQuality)
}

// Resize resamples the image to exactly width × height and returns it as
// PNG. filterName is one of nearest, triangle, catmullrom, gaussian or
// lanczos3; anything else means lanczos3.
func (p *Processor) Resize(data []byte, width, height int, filterName string) (*Result, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrap(imaging.ErrInvalidParameters, "width and height must be positive")
	}
	if err := p.checkOutput(width, height); err != nil {
		return nil, err
	}
	filter := imaging.ParseFilter(filterName)
	return p.run("resize", data, func(img *imaging.Grid) (*imaging.Grid, error) {
		return imaging.Resize(img, width, height, filter)
	}, imaging.FormatPNG, p.outputQuality)
}

// Compress re-encodes the image unchanged in the named format at the given
// quality.
func (p *Processor) Compress(data []byte, quality int, formatName string) (*Result, error) {
	return p.run("compress", data, nil, imaging.ParseFormat(formatName), quality)
}

// Optimize fits the image inside maxWidth × maxHeight (0 = unconstrained)
// and re-encodes it. Without allowUpscale an image that already fits is
// encoded at its own size.
func (p *Processor) Optimize(data []byte, maxWidth, maxHeight, quality int, formatName string, allowUpscale bool) (*Result, error) {
	if maxWidth <= 0 && maxHeight <= 0 {
		return nil, errors.Wrap(imaging.ErrInvalidParameters, "provide at least one dimension to optimize")
	}
	return p.run("optimize", data, func(img *imaging.Grid) (*imaging.Grid, error) {
		// The target size depends on the source, so it is vetted after decode
		w, h, resize := imaging.FitSize(img.Rect.Dx(), img.Rect.Dy(), maxWidth, maxHeight, allowUpscale)
		if resize {
			if err := p.checkOutput(w, h); err != nil {
				return nil, err
			}
		}
		return imaging.FitWithin(img, maxWidth, maxHeight, allowUpscale)
	}, imaging.ParseFormat(formatName), quality)
}

// Info decodes the image and reports its metadata.
func (p *Processor) Info(data []byte) (*imaging.ImageInfo, error) {
	if err := p.checkSize(data); err != nil {
		return nil, err
	}
	return imaging.DecodeInfo(data)
}

// Sample reports the bilinearly interpolated colour at each point.
func (p *Processor) Sample(data []byte, points []imaging.LabeledPoint) (*imaging.MultiColorResult, error) {
	img, err := p.decode(data)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColorsMulti(img, points)
}

// run is decode → transform → encode. A nil transform encodes the decoded
// grid as is.
func (p *Processor) run(op string, data []byte, transform func(*imaging.Grid) (*imaging.Grid, error),
	format imaging.Format, quality int) (*Result, error) {
	start := time.Now()

	img, err := p.decode(data)
	if err != nil {
		return nil, err
	}

	out := img
	if transform != nil {
		if out, err = transform(img); err != nil {
			return nil, err
		}
	}

	encoded, err := imaging.Encode(out, format, quality)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("op", op).
		Int("src_width", img.Rect.Dx()).
		Int("src_height", img.Rect.Dy()).
		Int("width", out.Rect.Dx()).
		Int("height", out.Rect.Dy()).
		Str("format", format.String()).
		Int("quality", imaging.ClampQuality(quality)).
		Int("in_bytes", len(data)).
		Int("out_bytes", len(encoded)).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline operation finished")

	return &Result{
		Data:   encoded,
		Width:  out.Rect.Dx(),
		Height: out.Rect.Dy(),
		Format: format,
	}, nil
}

func (p *Processor) decode(data []byte) (*imaging.Grid, error) {
	if err := p.checkSize(data); err != nil {
		return nil, err
	}
	return imaging.Decode(data)
}

func (p *Processor) checkSize(data []byte) error {
	if p.maxInputBytes > 0 && len(data) > p.maxInputBytes {
		return errors.Wrapf(imaging.ErrInvalidParameters, "input of %d bytes exceeds limit of %d bytes", len(data), p.maxInputBytes)
	}
	return nil
}

// checkOutput rejects a result grid larger than the configured pixel limit.
// w and h must be positive.
func (p *Processor) checkOutput(w, h int) error {
	if p.maxOutputPixels > 0 && w > p.maxOutputPixels/h {
		return errors.Wrapf(imaging.ErrInvalidParameters, "output of %dx%d exceeds limit of %d pixels", w, h, p.maxOutputPixels)
	}
	return nil
}
