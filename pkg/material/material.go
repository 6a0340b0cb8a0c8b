// Package material turns textures into scattering functions. A material
// holds one texture per physical parameter; at each intersection it
// evaluates them and assembles the resulting lobes into a bxdf.BSDF.
package material

import (
	"fmt"

	"github.com/df07/go-progressive-shading/pkg/bxdf"
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// Kind identifies a material variant.
type Kind int

const (
	KindMatte Kind = iota + 1
	KindMetal
	KindMirror
	KindGlass
	KindPlastic
	KindLight
	KindMix
)

func (k Kind) String() string {
	switch k {
	case KindMatte:
		return "matte"
	case KindMetal:
		return "metal"
	case KindMirror:
		return "mirror"
	case KindGlass:
		return "glass"
	case KindPlastic:
		return "plastic"
	case KindLight:
		return "light"
	case KindMix:
		return "mix"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Material describes how a surface scatters and emits light. Materials are
// immutable after construction and safe for concurrent use.
type Material interface {
	Kind() Kind

	// ComputeBSDF evaluates the material's textures at it and builds the
	// BSDF. It returns false when the material does not scatter light.
	// When allowMultipleLobes is false only the dominant lobe is kept.
	ComputeBSDF(it core.Intersection, mode bxdf.TransportMode, allowMultipleLobes bool) (*bxdf.BSDF, bool)

	// Emittance returns the light emitted at it
	Emittance(it core.Intersection) core.Color

	// lobes returns the weighted lobes and relative eta at it
	lobes(it core.Intersection, mode bxdf.TransportMode) ([]bxdf.Lobe, float64)
}

// computeBSDF is the ComputeBSDF implementation shared by every material
func computeBSDF(m Material, it core.Intersection, mode bxdf.TransportMode, allowMultipleLobes bool) (*bxdf.BSDF, bool) {
	lobes, eta := m.lobes(it, mode)
	if len(lobes) == 0 {
		return nil, false
	}
	if !allowMultipleLobes && len(lobes) > 1 {
		lobes = []bxdf.Lobe{DominantLobe(lobes)}
	}
	bsdf, err := bxdf.NewBSDF(it, eta, lobes...)
	if err != nil {
		return nil, false
	}
	return bsdf, true
}

// DominantLobe returns the lobe with the largest weight times average
// reflectance. The first one wins ties.
func DominantLobe(lobes []bxdf.Lobe) bxdf.Lobe {
	best := lobes[0]
	bestScore := best.Weight * best.BxDF.Reflectance().Average()
	for _, l := range lobes[1:] {
		if score := l.Weight * l.BxDF.Reflectance().Average(); score > bestScore {
			best, bestScore = l, score
		}
	}
	return best
}

// reflectance evaluates a color texture and clamps it to [0,1] so the
// resulting lobe cannot create energy
func reflectance(t texture.Texture, it core.Intersection) core.Color {
	return t.Evaluate(it).Clamp(0, 1)
}

// scalar evaluates a texture as a single number (the channel average)
func scalar(t texture.Texture, it core.Intersection) float64 {
	return t.Evaluate(it).Average()
}

// Textures returns the texture fields of m in declaration order.
// For Mix this is only the amount texture; child materials are not included.
func Textures(m Material) []texture.Texture {
	switch n := m.(type) {
	case *Matte:
		return []texture.Texture{n.Diffuse, n.Emission}
	case *Metal:
		return []texture.Texture{n.Reflection, n.Roughness, n.Emission}
	case *Mirror:
		return []texture.Texture{n.Reflection, n.Emission}
	case *Glass:
		return []texture.Texture{n.Reflection, n.Transmission, n.Emission}
	case *Plastic:
		return []texture.Texture{n.Diffuse, n.Specular, n.Roughness, n.Emission}
	case *Light:
		return []texture.Texture{n.Emission}
	case *Mix:
		return []texture.Texture{n.Amount}
	}
	return nil
}
