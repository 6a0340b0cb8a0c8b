package texture

import (
	"github.com/df07/go-progressive-shading/pkg/core"
)

// Checkerboard alternates between two textures in a grid over UV space
type Checkerboard struct {
	A, B      Texture
	Transform UVTransform
}

// NewCheckerboard creates a checkerboard. angle is in degrees; a scale of
// (n, n) produces n/2 checks of each texture per unit of UV.
func NewCheckerboard(a, b Texture, angle, scaleU, scaleV float64) (*Checkerboard, error) {
	if err := requireChildren(KindCheckerboard, []string{"a", "b"}, a, b); err != nil {
		return nil, err
	}
	tr := UVTransform{Angle: angle, ScaleU: scaleU, ScaleV: scaleV}
	if err := tr.validate(KindCheckerboard); err != nil {
		return nil, err
	}
	return &Checkerboard{A: a, B: b, Transform: tr}, nil
}

// Kind implements Texture
func (c *Checkerboard) Kind() Kind { return KindCheckerboard }

// Evaluate picks A when exactly one of the transformed coordinates lies in
// the upper half of its cell, B otherwise. A zero scale therefore yields B.
func (c *Checkerboard) Evaluate(it core.Intersection) core.Color {
	if checkerParity(c.Transform.Apply(it.UV)) {
		return c.A.Evaluate(it)
	}
	return c.B.Evaluate(it)
}

func (c *Checkerboard) isTexture() {}

func checkerParity(uv core.Vec2) bool {
	return (core.Fract(uv.X) > 0.5) != (core.Fract(uv.Y) > 0.5)
}
