package imaging

import (
	"bytes"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Format is the output container of Encode.
type Format int

const (
	// FormatPNG is lossless; quality selects compression effort only.
	FormatPNG Format = iota
	// FormatJPEG is lossy and never carries alpha.
	FormatJPEG
	// FormatWebP is written losslessly after quality-driven bit-depth
	// reduction of the colour channels.
	FormatWebP
)

// ParseFormat maps a case-insensitive format name, file extension or MIME
// type to a Format. Anything unrecognized selects FormatPNG.
func ParseFormat(name string) Format {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "image/")
	n = strings.TrimPrefix(n, ".")
	switch n {
	case "jpg", "jpeg", "jpe", "pjpeg":
		return FormatJPEG
	case "webp":
		return FormatWebP
	default:
		return FormatPNG
	}
}

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatWebP:
		return "webp"
	default:
		return "png"
	}
}

// MimeType returns the media type of encoded output, e.g. "image/png".
func (f Format) MimeType() string {
	return "image/" + f.String()
}

// Extension returns the conventional file extension without a dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return f.String()
}

// ClampQuality forces q into [1,100].
func ClampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}

// IsOpaque reports whether every pixel of img has alpha 255.
func IsOpaque(img *image.NRGBA) bool {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		i := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			if img.Pix[i+3] != 0xff {
				return false
			}
			i += 4
		}
	}
	return true
}

// Encode compresses img into the requested format.
//
// Parameters:
//   - img: The pixel grid to encode. It is never modified.
//   - format: Output container.
//   - quality: 1 (smallest/fastest) to 100 (best); clamped, never rejected.
//
// Returns:
//   - []byte: A self-contained, independently decodable buffer.
//   - error: ErrEncode if the grid is empty or the writer fails.
//
// # Format Behaviour
//
// PNG maps quality onto deflate effort and row filter tiers and is always
// lossless. JPEG maps quality onto the standard quantization scale and drops
// alpha. WebP reduces colour precision for quality below 96, then writes
// lossless. For PNG and WebP a fully opaque grid is written as 3-channel
// colour, which is invisible once decoded.
func Encode(img *image.NRGBA, format Format, quality int) ([]byte, error) {
	if img.Rect.Dx() <= 0 || img.Rect.Dy() <= 0 {
		return nil, errors.Wrapf(ErrEncode, "cannot encode %dx%d image", img.Rect.Dx(), img.Rect.Dy())
	}

	q := ClampQuality(quality)

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJPEG:
		err = encodeJPEG(&buf, img, q)
	case FormatWebP:
		err = encodeWebP(&buf, img, q)
	default:
		err = writePNG(&buf, img, IsOpaque(img), pngPresetFor(q))
	}
	if err != nil {
		return nil, errors.Wrapf(ErrEncode, "failed to encode %s: %v", format, err)
	}
	return buf.Bytes(), nil
}

// encodeJPEG drops alpha without premultiplying, so translucent pixels keep
// their stored colour rather than darkening towards black.
func encodeJPEG(w io.Writer, img *image.NRGBA, quality int) error {
	return imaging.Encode(w, opaqueCopy(img), imaging.JPEG, imaging.JPEGQuality(quality))
}

func opaqueCopy(img *image.NRGBA) *image.RGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		si := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		di := y * dst.Stride
		for x := 0; x < w; x++ {
			dst.Pix[di+0] = img.Pix[si+0]
			dst.Pix[di+1] = img.Pix[si+1]
			dst.Pix[di+2] = img.Pix[si+2]
			dst.Pix[di+3] = 0xff
			si += 4
			di += 4
		}
	}
	return dst
}
