package material

import (
	"github.com/df07/go-progressive-shading/pkg/bxdf"
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// Light is a pure emitter. It does not scatter, so ComputeBSDF always
// reports false.
type Light struct {
	Emission texture.Texture
}

// NewLight creates an emitter with uniform radiance
func NewLight(emission core.Color) *Light {
	return &Light{Emission: texture.NewConstant(emission)}
}

// NewTexturedLight creates an emitter whose radiance varies over the surface
func NewTexturedLight(emission texture.Texture) (*Light, error) {
	args := textureArgs{{"emission", emission}}
	if err := args.check(KindLight); err != nil {
		return nil, err
	}
	return &Light{Emission: emission}, nil
}

// Kind implements Material
func (l *Light) Kind() Kind { return KindLight }

// ComputeBSDF implements Material
func (l *Light) ComputeBSDF(it core.Intersection, mode bxdf.TransportMode, allowMultipleLobes bool) (*bxdf.BSDF, bool) {
	return nil, false
}

// Emittance implements Material
func (l *Light) Emittance(it core.Intersection) core.Color {
	return l.Emission.Evaluate(it)
}

func (l *Light) lobes(it core.Intersection, mode bxdf.TransportMode) ([]bxdf.Lobe, float64) {
	return nil, 1
}
