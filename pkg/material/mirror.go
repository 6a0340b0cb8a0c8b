package material

import (
	"github.com/df07/go-progressive-shading/pkg/bxdf"
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// MirrorConfig configures a perfect mirror
type MirrorConfig struct {
	Reflection texture.Texture
	Emission   texture.Texture
}

// DefaultMirrorConfig returns a lossless mirror
func DefaultMirrorConfig() MirrorConfig {
	return MirrorConfig{
		Reflection: texture.NewConstant(core.White),
		Emission:   texture.NewConstant(core.Black),
	}
}

// Mirror reflects light only in the mirror direction
type Mirror struct {
	Reflection texture.Texture
	Emission   texture.Texture
}

// NewMirror creates a mirror with a solid tint
func NewMirror(reflection core.Color) *Mirror {
	return &Mirror{
		Reflection: texture.NewConstant(reflection),
		Emission:   texture.NewConstant(core.Black),
	}
}

// NewMirrorFromConfig creates a mirror, rejecting nil textures
func NewMirrorFromConfig(cfg MirrorConfig) (*Mirror, error) {
	args := textureArgs{{"reflection", cfg.Reflection}, {"emission", cfg.Emission}}
	if err := args.check(KindMirror); err != nil {
		return nil, err
	}
	return &Mirror{Reflection: cfg.Reflection, Emission: cfg.Emission}, nil
}

// Kind implements Material
func (m *Mirror) Kind() Kind { return KindMirror }

// ComputeBSDF implements Material
func (m *Mirror) ComputeBSDF(it core.Intersection, mode bxdf.TransportMode, allowMultipleLobes bool) (*bxdf.BSDF, bool) {
	return computeBSDF(m, it, mode, allowMultipleLobes)
}

// Emittance implements Material
func (m *Mirror) Emittance(it core.Intersection) core.Color {
	return m.Emission.Evaluate(it)
}

func (m *Mirror) lobes(it core.Intersection, mode bxdf.TransportMode) ([]bxdf.Lobe, float64) {
	r := reflectance(m.Reflection, it)
	return []bxdf.Lobe{{BxDF: bxdf.NewSpecularReflection(r), Weight: 1}}, 1
}
