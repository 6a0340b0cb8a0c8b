package material

import (
	"math"

	"github.com/df07/go-progressive-shading/pkg/bxdf"
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// Mix blends two materials. The amount texture's channel average, clamped
// to [0,1], is the weight of B; A gets the rest.
type Mix struct {
	A, B   Material
	Amount texture.Texture
}

// NewMix creates a mix of two materials controlled by a texture
func NewMix(a, b Material, amount texture.Texture) (*Mix, error) {
	if IsNil(a) {
		return nil, &ArgumentError{Kind: KindMix, Param: "a", Err: ErrNilMaterial}
	}
	if IsNil(b) {
		return nil, &ArgumentError{Kind: KindMix, Param: "b", Err: ErrNilMaterial}
	}
	args := textureArgs{{"amount", amount}}
	if err := args.check(KindMix); err != nil {
		return nil, err
	}
	return &Mix{A: a, B: b, Amount: amount}, nil
}

// NewUniformMix mixes two materials with a constant ratio
// (0.0 = all A, 1.0 = all B)
func NewUniformMix(a, b Material, ratio float64) (*Mix, error) {
	return NewMix(a, b, texture.NewGray(ratio))
}

// Kind implements Material
func (m *Mix) Kind() Kind { return KindMix }

// ComputeBSDF implements Material
func (m *Mix) ComputeBSDF(it core.Intersection, mode bxdf.TransportMode, allowMultipleLobes bool) (*bxdf.BSDF, bool) {
	return computeBSDF(m, it, mode, allowMultipleLobes)
}

// Emittance blends the emittance of both children
func (m *Mix) Emittance(it core.Intersection) core.Color {
	t := m.amount(it)
	ea := m.A.Emittance(it)
	eb := m.B.Emittance(it)
	return ea.Lerp(eb, t)
}

func (m *Mix) amount(it core.Intersection) float64 {
	t := scalar(m.Amount, it)
	if math.IsNaN(t) {
		return 0
	}
	return math.Max(0, math.Min(1, t))
}

// lobes concatenates the children's lobes, scaling A's weights by 1-t and
// B's by t. Children with zero weight contribute nothing. The eta of the
// heavier child is used.
func (m *Mix) lobes(it core.Intersection, mode bxdf.TransportMode) ([]bxdf.Lobe, float64) {
	t := m.amount(it)

	var out []bxdf.Lobe
	eta := 1.0
	if t < 1 {
		lobes, etaA := m.A.lobes(it, mode)
		for _, l := range lobes {
			out = append(out, bxdf.Lobe{BxDF: l.BxDF, Weight: l.Weight * (1 - t)})
		}
		if t <= 0.5 {
			eta = etaA
		}
	}
	if t > 0 {
		lobes, etaB := m.B.lobes(it, mode)
		for _, l := range lobes {
			out = append(out, bxdf.Lobe{BxDF: l.BxDF, Weight: l.Weight * t})
		}
		if t > 0.5 {
			eta = etaB
		}
	}
	return out, eta
}
