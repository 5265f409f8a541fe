package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"io"

	"github.com/klauspost/compress/zlib"
)

// pngFilter is a PNG row filter type. pngFilterAdaptive is not a wire value:
// it picks the cheapest of the five real filters for every row.
type pngFilter uint8

const (
	pngFilterNone    pngFilter = 0
	pngFilterSub     pngFilter = 1
	pngFilterUp      pngFilter = 2
	pngFilterAverage pngFilter = 3
	pngFilterPaeth   pngFilter = 4

	pngFilterAdaptive pngFilter = 0xff
)

const (
	pngColorRGB  = 2
	pngColorRGBA = 6

	// maxIDATSize bounds a single IDAT chunk; decoders concatenate them.
	maxIDATSize = 1 << 20
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// pngPreset is the effort/filter pair chosen for a quality tier.
type pngPreset struct {
	level  int
	filter pngFilter
}

// pngPresetFor maps quality onto deflate level and row filter. Every tier is
// lossless; higher tiers spend more time for smaller output.
func pngPresetFor(quality int) pngPreset {
	switch {
	case quality >= 90:
		return pngPreset{level: zlib.BestCompression, filter: pngFilterAdaptive}
	case quality >= 70:
		return pngPreset{level: zlib.BestCompression, filter: pngFilterPaeth}
	case quality >= 50:
		return pngPreset{level: zlib.DefaultCompression, filter: pngFilterPaeth}
	case quality >= 30:
		return pngPreset{level: zlib.BestSpeed, filter: pngFilterSub}
	default:
		return pngPreset{level: zlib.BestSpeed, filter: pngFilterNone}
	}
}

// writePNG writes img as an 8-bit, non-interlaced PNG. With opaque set the
// alpha channel is omitted (colour type 2).
func writePNG(w io.Writer, img *image.NRGBA, opaque bool, p pngPreset) error {
	width, height := img.Rect.Dx(), img.Rect.Dy()

	bpp, colorType := 4, byte(pngColorRGBA)
	if opaque {
		bpp, colorType = 3, pngColorRGB
	}

	if _, err := w.Write(pngSignature); err != nil {
		return err
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = 8 // bit depth
	ihdr[9] = colorType
	// compression, filter method and interlace are all 0
	if err := writeChunk(w, "IHDR", ihdr); err != nil {
		return err
	}

	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, p.level)
	if err != nil {
		return err
	}

	rowLen := width * bpp
	prev := make([]byte, rowLen)
	cur := make([]byte, rowLen)
	out := make([]byte, 1+rowLen)
	var scratch [][]byte
	if p.filter == pngFilterAdaptive {
		scratch = make([][]byte, 5)
		for i := range scratch {
			scratch[i] = make([]byte, rowLen)
		}
	}

	for y := 0; y < height; y++ {
		packRow(cur, img, y, bpp)

		if p.filter == pngFilterAdaptive {
			best := pngFilterNone
			bestScore := -1
			for f := pngFilterNone; f <= pngFilterPaeth; f++ {
				filterRow(scratch[f], cur, prev, bpp, f)
				if s := rowScore(scratch[f]); bestScore < 0 || s < bestScore {
					best, bestScore = f, s
				}
			}
			out[0] = byte(best)
			copy(out[1:], scratch[best])
		} else {
			out[0] = byte(p.filter)
			filterRow(out[1:], cur, prev, bpp, p.filter)
		}

		if _, err := zw.Write(out); err != nil {
			return err
		}
		prev, cur = cur, prev
	}
	if err := zw.Close(); err != nil {
		return err
	}

	data := idat.Bytes()
	for len(data) > 0 {
		n := minInt(len(data), maxIDATSize)
		if err := writeChunk(w, "IDAT", data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}

	return writeChunk(w, "IEND", nil)
}

func writeChunk(w io.Writer, typ string, data []byte) error {
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(len(data)))
	copy(header[4:8], typ)

	crc := crc32.NewIEEE()
	crc.Write(header[4:8])
	crc.Write(data)

	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())

	for _, b := range [][]byte{header[:], data, footer[:]} {
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// packRow copies row y of img into dst as RGB or RGBA bytes.
func packRow(dst []byte, img *image.NRGBA, y, bpp int) {
	si := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
	if bpp == 4 {
		copy(dst, img.Pix[si:si+len(dst)])
		return
	}
	for di := 0; di < len(dst); di += 3 {
		dst[di+0] = img.Pix[si+0]
		dst[di+1] = img.Pix[si+1]
		dst[di+2] = img.Pix[si+2]
		si += 4
	}
}

// filterRow writes the filtered form of cur into dst. prev is the unfiltered
// previous row, all zeros for the first row.
func filterRow(dst, cur, prev []byte, bpp int, f pngFilter) {
	switch f {
	case pngFilterSub:
		for i := range cur {
			var a byte
			if i >= bpp {
				a = cur[i-bpp]
			}
			dst[i] = cur[i] - a
		}
	case pngFilterUp:
		for i := range cur {
			dst[i] = cur[i] - prev[i]
		}
	case pngFilterAverage:
		for i := range cur {
			var a int
			if i >= bpp {
				a = int(cur[i-bpp])
			}
			dst[i] = cur[i] - byte((a+int(prev[i]))/2)
		}
	case pngFilterPaeth:
		for i := range cur {
			var a, c byte
			if i >= bpp {
				a = cur[i-bpp]
				c = prev[i-bpp]
			}
			dst[i] = cur[i] - paeth(a, prev[i], c)
		}
	default:
		copy(dst, cur)
	}
}

// paeth returns whichever of left (a), up (b) or upper-left (c) is closest
// to a+b-c, preferring a, then b, on ties.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := absInt(p - int(a))
	pb := absInt(p - int(b))
	pc := absInt(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

// rowScore is the minimum-sum-of-absolute-differences heuristic: filtered
// bytes are read as signed, smaller totals deflate better.
func rowScore(row []byte) int {
	s := 0
	for _, b := range row {
		s += absInt(int(int8(b)))
	}
	return s
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
