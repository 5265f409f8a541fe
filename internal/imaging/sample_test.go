package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestSampleBilinear_IntegralCoordinates(t *testing.T) {
	img := createGradientImage(9, 7, true)

	for y := 0; y < 7; y++ {
		for x := 0; x < 9; x++ {
			got := SampleBilinear(img, float64(x), float64(y))
			want := img.NRGBAAt(x, y)
			if got != want {
				t.Fatalf("(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestSampleBilinear_Interpolates(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0})
	img.SetNRGBA(1, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})

	tests := []struct {
		name string
		x, y float64
		want color.NRGBA
	}{
		{"horizontal midpoint", 0.5, 0, color.NRGBA{128, 0, 0, 128}},
		{"vertical midpoint", 0, 0.5, color.NRGBA{0, 128, 0, 128}},
		{"centre", 0.5, 0.5, color.NRGBA{128, 128, 64, 191}},
		{"quarter", 0.25, 0, color.NRGBA{64, 0, 0, 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleBilinear(img, tt.x, tt.y)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSampleBilinear_ClampsToEdges(t *testing.T) {
	img := createGradientImage(5, 4, false)

	tests := []struct {
		name   string
		x, y   float64
		px, py int
	}{
		{"left of image", -10, 2, 0, 2},
		{"above image", 3, -0.5, 3, 0},
		{"right of image", 100, 1, 4, 1},
		{"below image", 2, 50, 2, 3},
		{"far corner", 1e9, 1e9, 4, 3},
		{"last pixel exactly", 4, 3, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleBilinear(img, tt.x, tt.y)
			want := img.NRGBAAt(tt.px, tt.py)
			if got != want {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestSampleBilinear_SinglePixel(t *testing.T) {
	c := color.NRGBA{10, 20, 30, 40}
	img := createInMemoryImage(1, 1, c)

	for _, p := range [][2]float64{{0, 0}, {0.7, 0.3}, {-3, 8}} {
		if got := SampleBilinear(img, p[0], p[1]); got != c {
			t.Errorf("(%g,%g): got %v, want %v", p[0], p[1], got, c)
		}
	}
}

func TestSampleBilinear_EmptyGrid(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if got := SampleBilinear(img, 0, 0); got != (color.NRGBA{}) {
		t.Errorf("got %v, want zero colour", got)
	}
}

func TestSampleBilinear_DoesNotAllocate(t *testing.T) {
	img := createGradientImage(16, 16, true)
	allocs := testing.AllocsPerRun(100, func() {
		_ = SampleBilinear(img, 3.3, 7.7)
	})
	if allocs != 0 {
		t.Errorf("allocations per call: got %v, want 0", allocs)
	}
}
