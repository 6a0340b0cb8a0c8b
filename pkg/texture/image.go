package texture

import (
	"math"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// Image provides color from a 2D pixel buffer with bilinear filtering and
// wraparound addressing. The buffer is copied at construction and never
// modified afterwards.
type Image struct {
	Width     int
	Height    int
	Transform UVTransform
	pixels    []core.Color // Row-major: pixels[y*Width + x], row 0 at the top
}

// NewImage creates an image texture with identity UV mapping
func NewImage(width, height int, pixels []core.Color) (*Image, error) {
	return NewTransformedImage(width, height, pixels, IdentityUV())
}

// NewTransformedImage creates an image texture whose lookups are rotated and scaled
func NewTransformedImage(width, height int, pixels []core.Color, transform UVTransform) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidParam(KindImage, "resolution", "must be positive, got %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return nil, invalidParam(KindImage, "pixels", "expected %d pixels for %dx%d, got %d", width*height, width, height, len(pixels))
	}
	if err := transform.validate(KindImage); err != nil {
		return nil, err
	}
	copied := make([]core.Color, len(pixels))
	copy(copied, pixels)
	return &Image{Width: width, Height: height, Transform: transform, pixels: copied}, nil
}

// Kind implements Texture
func (t *Image) Kind() Kind { return KindImage }

// Pixel returns the pixel at (x, y), wrapping out of range coordinates
func (t *Image) Pixel(x, y int) core.Color {
	return t.pixels[wrap(y, t.Height)*t.Width+wrap(x, t.Width)]
}

// Pixels returns a copy of the pixel buffer
func (t *Image) Pixels() []core.Color {
	out := make([]core.Color, len(t.pixels))
	copy(out, t.pixels)
	return out
}

// Evaluate samples the texture at the transformed UV coordinates.
// Pixel centers sit on integer pixel coordinates: a sample landing exactly
// on one returns that pixel, anything else is a bilinear blend of the four
// surrounding pixels.
func (t *Image) Evaluate(it core.Intersection) core.Color {
	uv := t.Transform.Apply(it.UV)

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	px := uv.X * float64(t.Width)
	py := (1.0 - uv.Y) * float64(t.Height)

	x0f, y0f := math.Floor(px), math.Floor(py)
	fx, fy := px-x0f, py-y0f
	x0, y0 := int(x0f), int(y0f)

	if fx == 0 && fy == 0 {
		return t.Pixel(x0, y0)
	}

	top := t.Pixel(x0, y0).Lerp(t.Pixel(x0+1, y0), fx)
	bottom := t.Pixel(x0, y0+1).Lerp(t.Pixel(x0+1, y0+1), fx)
	return top.Lerp(bottom, fy)
}

func (t *Image) isTexture() {}

// wrap maps i into [0, n) with modulo semantics for negative values
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
