package imaging

import (
	"image"
	"io"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// webpBits returns the per-channel colour depth kept at a quality level.
func webpBits(quality int) int {
	switch {
	case quality >= 96:
		return 8
	case quality >= 80:
		return 7
	case quality >= 60:
		return 6
	case quality >= 40:
		return 5
	case quality >= 20:
		return 4
	default:
		return 3
	}
}

// QuantizeChannels returns a copy of img with red, green and blue reduced to
// 2^bits-1 evenly spaced levels. Alpha is copied unchanged. bits of 8 or more
// returns a plain copy.
func QuantizeChannels(img *image.NRGBA, bits int) *image.NRGBA {
	dst := imaging.Clone(img)
	if bits >= 8 {
		return dst
	}
	if bits < 1 {
		bits = 1
	}

	levels := float64(int(1)<<uint(bits) - 1)
	var lut [256]uint8
	for v := range lut {
		bucket := math.Round(float64(v) * levels / 255)
		lut[v] = clampChannel(bucket * 255 / levels)
	}

	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i+0] = lut[dst.Pix[i+0]]
		dst.Pix[i+1] = lut[dst.Pix[i+1]]
		dst.Pix[i+2] = lut[dst.Pix[i+2]]
	}
	return dst
}

// encodeWebP writes a lossless WebP container. Loss at lower quality comes
// only from QuantizeChannels; the container itself is always lossless.
func encodeWebP(w io.Writer, img *image.NRGBA, quality int) error {
	src := img
	if bits := webpBits(quality); bits < 8 {
		src = QuantizeChannels(img, bits)
	}

	var data []byte
	var err error
	if IsOpaque(src) {
		data, err = webp.EncodeLosslessRGB(src)
	} else {
		// Exact mode keeps the colour of fully transparent pixels.
		data, err = webp.EncodeExactLosslessRGBA(straightRGBA(src))
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// straightRGBA views the non-premultiplied bytes of img as an *image.RGBA.
// libwebp reads RGBA input as straight alpha, and handing it an *image.RGBA
// skips the encoder's premultiplying conversion, which would round the
// colour of every translucent pixel. The view shares img's pixels.
func straightRGBA(img *image.NRGBA) *image.RGBA {
	return &image.RGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
}
