package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// quadrants returns a 2x2 image: white, red / green, blue
func quadrants() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func writeImage(t *testing.T, name string, img image.Image, encode func(f *os.File, img image.Image) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode %s: %v", name, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close %s: %v", name, err)
	}
	return path
}

func checkColor(t *testing.T, name string, got, expected core.Color) {
	t.Helper()
	const tolerance = 0.01
	if abs(got.R-expected.R) > tolerance ||
		abs(got.G-expected.G) > tolerance ||
		abs(got.B-expected.B) > tolerance {
		t.Errorf("%s: expected %v, got %v", name, expected, got)
	}
}

func TestLoadImage_Formats(t *testing.T) {
	encoders := map[string]func(f *os.File, img image.Image) error{
		"test.png":  func(f *os.File, img image.Image) error { return png.Encode(f, img) },
		"test.bmp":  func(f *os.File, img image.Image) error { return bmp.Encode(f, img) },
		"test.tiff": func(f *os.File, img image.Image) error { return tiff.Encode(f, img, nil) },
	}

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			path := writeImage(t, name, quadrants(), encode)

			imageData, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if imageData.Width != 2 || imageData.Height != 2 {
				t.Fatalf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
			}
			if len(imageData.Pixels) != 4 {
				t.Fatalf("Expected 4 pixels, got %d", len(imageData.Pixels))
			}

			// Row-major, top row first
			checkColor(t, "Top-left (white)", imageData.Pixels[0], core.White)
			checkColor(t, "Top-right (red)", imageData.Pixels[1], core.NewColor(1, 0, 0))
			checkColor(t, "Bottom-left (green)", imageData.Pixels[2], core.NewColor(0, 1, 0))
			checkColor(t, "Bottom-right (blue)", imageData.Pixels[3], core.NewColor(0, 0, 1))
		})
	}
}

func TestLoadImage_NotFound(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nonexistent.png"))
	if !errors.Is(err, ErrImageIO) {
		t.Errorf("Expected ErrImageIO, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected the underlying not-exist error to be preserved, got %v", err)
	}
}

func TestLoadImage_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("definitely not an image"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := LoadImage(path)
	if !errors.Is(err, ErrImageIO) {
		t.Errorf("Expected ErrImageIO, got %v", err)
	}
	var argErr *texture.ArgumentError
	if errors.As(err, &argErr) {
		t.Errorf("I/O failure should not be reported as an argument error")
	}
}

func TestLoadImage_IgnoresAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 128, B: 0, A: 128})
	src.SetNRGBA(1, 0, color.NRGBA{R: 51, G: 102, B: 204, A: 0})
	path := writeImage(t, "translucent.png", src, func(f *os.File, img image.Image) error { return png.Encode(f, img) })

	imageData, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	checkColor(t, "half transparent", imageData.Pixels[0], core.NewColor(1, 128.0/255, 0))
	checkColor(t, "fully transparent", imageData.Pixels[1], core.NewColor(0.2, 0.4, 0.8))
}

func TestLoadImageTexture(t *testing.T) {
	path := writeImage(t, "quad.png", quadrants(), func(f *os.File, img image.Image) error { return png.Encode(f, img) })

	tex, err := LoadImageTexture(path, ImageOptions{})
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("Expected 2x2 texture, got %dx%d", tex.Width, tex.Height)
	}
	if tex.Transform != texture.IdentityUV() {
		t.Errorf("Expected identity transform, got %+v", tex.Transform)
	}

	// v=1 is the top row of the image
	it := core.Intersection{UV: core.NewVec2(0, 1)}
	checkColor(t, "top-left texel", tex.Evaluate(it), core.White)
}

func TestLoadImageTexture_Downsample(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	fill := color.RGBA{R: 51, G: 102, B: 204, A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			src.Set(x, y, fill)
		}
	}
	path := writeImage(t, "wide.png", src, func(f *os.File, img image.Image) error { return png.Encode(f, img) })

	tests := []struct {
		maxRes       int
		wantW, wantH int
	}{
		{0, 16, 8},
		{32, 16, 8},
		{4, 4, 2},
		{1, 1, 1},
	}
	for _, tt := range tests {
		tex, err := LoadImageTexture(path, ImageOptions{MaxResolution: tt.maxRes})
		if err != nil {
			t.Fatalf("LoadImageTexture(max %d) failed: %v", tt.maxRes, err)
		}
		if tex.Width != tt.wantW || tex.Height != tt.wantH {
			t.Errorf("max %d: got %dx%d, expected %dx%d", tt.maxRes, tex.Width, tex.Height, tt.wantW, tt.wantH)
		}
		// A flat image stays flat under resampling
		checkColor(t, "resampled texel", tex.Pixel(0, 0), core.NewColor(0.2, 0.4, 0.8))
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
