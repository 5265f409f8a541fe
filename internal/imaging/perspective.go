package imaging

import (
	"image"

	"github.com/pkg/errors"
)

// Point is a real-valued position in source pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quad is a four-corner region ordered top-left, top-right, bottom-right,
// bottom-left. It need not be axis-aligned; a degenerate quad (collinear or
// zero area) is accepted and simply produces a smeared result.
type Quad [4]Point

// QuadFromPoints builds a Quad from a flat list x0,y0,x1,y1,x2,y2,x3,y3.
// Any other length fails with ErrInvalidParameters.
func QuadFromPoints(points []float64) (Quad, error) {
	if len(points) != 8 {
		return Quad{}, errors.Wrapf(ErrInvalidParameters,
			"points must contain 8 numbers (x0,y0,x1,y1,x2,y2,x3,y3), got %d", len(points))
	}
	var q Quad
	for i := range q {
		q[i] = Point{X: points[2*i], Y: points[2*i+1]}
	}
	return q, nil
}

// at maps normalized output coordinates (u,v) in [0,1]² into source space by
// bilinear blending of the corners. This is a bilinear patch, not a
// projective homography: straight lines through the interior of a skewed
// quad are not guaranteed to stay straight.
func (q Quad) at(u, v float64) (float64, float64) {
	w0 := (1 - u) * (1 - v)
	w1 := u * (1 - v)
	w2 := u * v
	w3 := (1 - u) * v
	x := w0*q[0].X + w1*q[1].X + w2*q[2].X + w3*q[3].X
	y := w0*q[0].Y + w1*q[1].Y + w2*q[2].Y + w3*q[3].Y
	return x, y
}

// PerspectiveWarp straightens the quadrilateral q of img into a rectangular
// outWidth × outHeight grid.
//
// Destination pixel (px,py) takes normalized coordinates
// u = px/(outWidth-1) and v = py/(outHeight-1), with 0 used along a dimension
// of size 1. The mapped source position is sampled with SampleBilinear, so
// corners outside the source clamp to its edges instead of failing.
//
// Returns ErrInvalidParameters if either output dimension is not positive.
func PerspectiveWarp(img *image.NRGBA, q Quad, outWidth, outHeight int) (*image.NRGBA, error) {
	if outWidth <= 0 || outHeight <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameters, "output size %dx%d must be positive", outWidth, outHeight)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, outWidth, outHeight))
	for py := 0; py < outHeight; py++ {
		v := normalized(py, outHeight)
		row := py * dst.Stride
		for px := 0; px < outWidth; px++ {
			u := normalized(px, outWidth)
			sx, sy := q.at(u, v)
			c := SampleBilinear(img, sx, sy)
			i := row + px*4
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = c.A
		}
	}
	return dst, nil
}

func normalized(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
