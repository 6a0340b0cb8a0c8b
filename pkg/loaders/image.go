// Package loaders decodes image files into texture data
package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// ErrImageIO is wrapped by every failure to read or decode an image file
var ErrImageIO = errors.New("loaders: image I/O failed")

// ImageData contains loaded image data as a dense color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major, row 0 at the top
}

// ImageOptions controls how a file becomes a texture
type ImageOptions struct {
	// MaxResolution caps the longer side in pixels; larger images are
	// downsampled with a Catmull-Rom filter. Zero keeps the full size.
	MaxResolution int
	// Transform is applied to texture coordinates before lookup. The zero
	// value is replaced by the identity.
	Transform texture.UVTransform
}

// LoadImage loads a PNG, JPEG, GIF, BMP, TIFF or WebP image
func LoadImage(filename string) (*ImageData, error) {
	img, err := decodeFile(filename)
	if err != nil {
		return nil, err
	}
	return imageData(img), nil
}

// LoadImageTexture loads an image file as a texture
func LoadImageTexture(filename string, opts ImageOptions) (*texture.Image, error) {
	img, err := decodeFile(filename)
	if err != nil {
		return nil, err
	}

	if opts.MaxResolution > 0 {
		img = downsample(img, opts.MaxResolution)
	}
	data := imageData(img)

	tr := opts.Transform
	if tr == (texture.UVTransform{}) {
		tr = texture.IdentityUV()
	}
	return texture.NewTransformedImage(data.Width, data.Height, data.Pixels, tr)
}

func decodeFile(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image file: %w", ErrImageIO, err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image %s: %w", ErrImageIO, filename, err)
	}

	b := img.Bounds()
	core.Logger().Debug("decoded image", "file", filename, "format", format, "width", b.Dx(), "height", b.Dy())
	return img, nil
}

// downsample scales img so its longer side is at most maxRes
func downsample(img image.Image, maxRes int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxRes && h <= maxRes {
		return img
	}

	var dw, dh int
	if w >= h {
		dw, dh = maxRes, max(1, h*maxRes/w)
	} else {
		dw, dh = max(1, w*maxRes/h), maxRes
	}

	dst := image.NewNRGBA64(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	core.Logger().Debug("downsampled image", "from", fmt.Sprintf("%dx%d", w, h), "to", fmt.Sprintf("%dx%d", dw, dh))
	return dst
}

func imageData(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Straight alpha, so translucent pixels keep their color
			c := color.NRGBA64Model.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA64)
			pixels[y*width+x] = core.NewColor(
				float64(c.R)/65535.0,
				float64(c.G)/65535.0,
				float64(c.B)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
