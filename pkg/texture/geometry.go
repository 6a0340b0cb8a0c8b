package texture

import (
	"github.com/df07/go-progressive-shading/pkg/core"
)

// DotProduct shades by the cosine between the viewing direction and the shading normal
type DotProduct struct{}

// NewDotProduct creates a facing-ratio texture
func NewDotProduct() *DotProduct { return &DotProduct{} }

// Kind implements Texture
func (d *DotProduct) Kind() Kind { return KindDotProduct }

// Evaluate returns gray |wo · n|
func (d *DotProduct) Evaluate(it core.Intersection) core.Color {
	return core.Gray(it.Wo().AbsDot(it.ShadingNormal.Normalize()))
}

func (d *DotProduct) isTexture() {}

// SurfaceNormal visualizes the shading normal, mapping each axis from [-1,1] to [0,1]
type SurfaceNormal struct{}

// NewSurfaceNormal creates a normal visualization texture
func NewSurfaceNormal() *SurfaceNormal { return &SurfaceNormal{} }

// Kind implements Texture
func (s *SurfaceNormal) Kind() Kind { return KindSurfaceNormal }

// Evaluate returns (n + 1) / 2
func (s *SurfaceNormal) Evaluate(it core.Intersection) core.Color {
	n := it.ShadingNormal.Normalize()
	return core.NewColor((n.X+1)*0.5, (n.Y+1)*0.5, (n.Z+1)*0.5)
}

func (s *SurfaceNormal) isTexture() {}

// UV shows texture coordinates as colors
// U maps to red channel, V maps to green channel
type UV struct{}

// NewUV creates a UV debug texture
func NewUV() *UV { return &UV{} }

// Kind implements Texture
func (u *UV) Kind() Kind { return KindUV }

// Evaluate returns (frac(u), frac(v), 0)
func (u *UV) Evaluate(it core.Intersection) core.Color {
	return core.NewColor(core.Fract(it.UV.X), core.Fract(it.UV.Y), 0)
}

func (u *UV) isTexture() {}
