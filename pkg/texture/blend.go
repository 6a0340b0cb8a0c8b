package texture

import (
	"github.com/df07/go-progressive-shading/pkg/core"
)

// Blend interpolates two textures channel by channel. A weight of 0 yields A,
// a weight of 1 yields B.
type Blend struct {
	A, B    Texture
	Weights core.Color
}

// NewBlend creates a blend with independent per-channel weights
func NewBlend(a, b Texture, weights core.Color) (*Blend, error) {
	if err := requireChildren(KindBlend, []string{"a", "b"}, a, b); err != nil {
		return nil, err
	}
	if !weights.IsFinite() {
		return nil, invalidParam(KindBlend, "weights", "must be finite, got %v", weights)
	}
	return &Blend{A: a, B: b, Weights: weights}, nil
}

// NewUniformBlend creates a blend using the same weight t for every channel
func NewUniformBlend(a, b Texture, t float64) (*Blend, error) {
	return NewBlend(a, b, core.Gray(t))
}

// Kind implements Texture
func (b *Blend) Kind() Kind { return KindBlend }

// Evaluate evaluates A, then B, and blends the results
func (b *Blend) Evaluate(it core.Intersection) core.Color {
	ca := b.A.Evaluate(it)
	cb := b.B.Evaluate(it)
	return ca.Blend(cb, b.Weights)
}

func (b *Blend) isTexture() {}
