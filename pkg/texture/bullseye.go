package texture

import (
	"github.com/df07/go-progressive-shading/pkg/core"
)

// Bullseye draws concentric rings around an object-space origin
type Bullseye struct {
	A, B   Texture
	Origin core.Vec3
	Scale  float64
}

// NewBullseye creates a bullseye; scale is the number of ring pairs per unit
// distance and must not be negative
func NewBullseye(a, b Texture, origin core.Vec3, scale float64) (*Bullseye, error) {
	if err := requireChildren(KindBullseye, []string{"a", "b"}, a, b); err != nil {
		return nil, err
	}
	if !origin.IsFinite() {
		return nil, invalidParam(KindBullseye, "origin", "must be finite, got %v", origin)
	}
	if !core.IsFinite(scale) || scale < 0 {
		return nil, invalidParam(KindBullseye, "scale", "must be finite and non-negative, got %v", scale)
	}
	return &Bullseye{A: a, B: b, Origin: origin, Scale: scale}, nil
}

// Kind implements Texture
func (b *Bullseye) Kind() Kind { return KindBullseye }

// Evaluate picks A in the inner half of each ring and B in the outer half
func (b *Bullseye) Evaluate(it core.Intersection) core.Color {
	d := it.ObjectPoint.Subtract(b.Origin).Length() * b.Scale
	if core.Fract(d) < 0.5 {
		return b.A.Evaluate(it)
	}
	return b.B.Evaluate(it)
}

func (b *Bullseye) isTexture() {}
