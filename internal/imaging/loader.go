package imaging

import (
	"bytes"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Grid is the pixel grid every operation consumes and produces: row-major,
// non-premultiplied 8-bit RGBA with bounds starting at (0,0).
type Grid = image.NRGBA

// Decode turns a compressed image buffer into an RGBA pixel grid.
//
// The container is detected from the content, never from a name. Supported
// inputs are PNG, JPEG, GIF, WebP, BMP and TIFF; for animated or multi-page
// containers only the first frame is used.
//
// Parameters:
//   - data: The complete compressed image.
//
// Returns:
//   - *image.NRGBA: A new grid with bounds starting at (0,0). Sources without
//     an alpha channel (grayscale, paletted, YCbCr) are expanded to 4
//     channels with alpha=255 everywhere.
//   - error: ErrDecode if the bytes are empty, truncated, corrupt or not a
//     recognized image.
func Decode(data []byte) (*image.NRGBA, error) {
	img, _, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// decodeImage tries the registered decoders first and falls back to libwebp
// for WebP variants the pure-Go decoder rejects.
func decodeImage(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", errors.Wrap(ErrDecode, "empty input")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		fallback, werr := webp.Decode(bytes.NewReader(data))
		if werr != nil {
			return nil, "", errors.Wrapf(ErrDecode, "failed to decode image: %v", err)
		}
		img, format = fallback, "webp"
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, "", errors.Wrapf(ErrDecode, "image has no pixels (%dx%d)", b.Dx(), b.Dy())
	}
	return img, format, nil
}

// ImageInfo contains metadata about a compressed image buffer.
//
// This struct provides essential information about an image without requiring
// the caller to analyze the image data directly.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected container: "png", "jpeg", "gif", "webp",
	// "bmp" or "tiff". Detection is based on content, not a file name.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha reports whether any pixel is not fully opaque. A PNG with an
	// alpha channel whose pixels are all opaque reports false.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the length of the compressed input.
	SizeBytes int `json:"size_bytes"`
}

// DecodeInfo decodes an image and returns metadata about it.
//
// Parameters:
//   - data: The complete compressed image.
//
// Returns:
//   - *ImageInfo: Dimensions, detected format, bit depth and transparency.
//   - error: ErrDecode if the bytes cannot be decoded.
//
// # Color Depth Detection
//
// Color depth is determined by the decoded Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
//
// The pipeline itself always works on 8-bit channels.
func DecodeInfo(data []byte) (*ImageInfo, error) {
	img, format, err := decodeImage(data)
	if err != nil {
		return nil, err
	}

	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     format,
		ColorDepth: colorDepth,
		HasAlpha:   !IsOpaque(imaging.Clone(img)),
		SizeBytes:  len(data),
	}, nil
}
