package imaging

import (
	"errors"
	"image/color"
	"testing"
)

var allFilters = []Filter{FilterLanczos3, FilterNearest, FilterTriangle, FilterCatmullRom, FilterGaussian}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name string
		want Filter
	}{
		{"nearest", FilterNearest},
		{"NEAREST", FilterNearest},
		{" triangle ", FilterTriangle},
		{"catmullrom", FilterCatmullRom},
		{"CatmullRom", FilterCatmullRom},
		{"catmull", FilterCatmullRom},
		{"gaussian", FilterGaussian},
		{"lanczos3", FilterLanczos3},
		{"", FilterLanczos3},
		{"bicubic", FilterLanczos3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFilter(tt.name); got != tt.want {
				t.Errorf("ParseFilter(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFilter_StringRoundTrip(t *testing.T) {
	for _, f := range allFilters {
		if got := ParseFilter(f.String()); got != f {
			t.Errorf("ParseFilter(%q) = %v, want %v", f.String(), got, f)
		}
	}
}

func TestResize_Dimensions(t *testing.T) {
	img := createGradientImage(40, 30, true)

	sizes := [][2]int{{7, 5}, {1, 1}, {200, 3}, {40, 30}, {80, 60}}

	for _, f := range allFilters {
		for _, s := range sizes {
			out, err := Resize(img, s[0], s[1], f)
			if err != nil {
				t.Fatalf("%v %dx%d: Resize failed: %v", f, s[0], s[1], err)
			}
			if out.Bounds().Dx() != s[0] || out.Bounds().Dy() != s[1] {
				t.Errorf("%v: got %dx%d, want %dx%d", f, out.Bounds().Dx(), out.Bounds().Dy(), s[0], s[1])
			}
		}
	}
}

func TestResize_UniformStaysUniform(t *testing.T) {
	c := color.NRGBA{90, 160, 30, 255}
	img := createInMemoryImage(33, 17, c)

	for _, f := range allFilters {
		t.Run(f.String(), func(t *testing.T) {
			out, err := Resize(img, 12, 40, f)
			if err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			for y := 0; y < 40; y++ {
				for x := 0; x < 12; x++ {
					if got := out.NRGBAAt(x, y); !channelsWithin(got, c, 1) {
						t.Fatalf("pixel (%d,%d): got %v, want ~%v", x, y, got, c)
					}
				}
			}
		})
	}
}

func TestResize_NearestCopiesPixels(t *testing.T) {
	img := createPatternImage(4, 4)

	out, err := Resize(img, 8, 8, FilterNearest)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	// Each source pixel becomes a 2x2 block
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got, want := out.NRGBAAt(x, y), img.NRGBAAt(x/2, y/2); got != want {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestResize_DoesNotModifySource(t *testing.T) {
	img := createGradientImage(10, 10, true)
	before := append([]uint8(nil), img.Pix...)

	if _, err := Resize(img, 3, 3, FilterLanczos3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatal("Resize modified its input")
		}
	}
}

func TestResize_InvalidSize(t *testing.T) {
	img := createGradientImage(10, 10, false)

	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -3, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resize(img, tt.w, tt.h, FilterNearest)
			if !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}
