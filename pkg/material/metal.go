package material

import (
	"github.com/df07/go-progressive-shading/pkg/bxdf"
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// MetalConfig configures a glossy conductor
type MetalConfig struct {
	Reflection texture.Texture // specular color at normal incidence
	Roughness  texture.Texture // channel average is used, clamped to [0.001, 1]
	Emission   texture.Texture
}

// DefaultMetalConfig returns a bright, slightly rough metal
func DefaultMetalConfig() MetalConfig {
	return MetalConfig{
		Reflection: texture.NewGray(0.9),
		Roughness:  texture.NewGray(0.1),
		Emission:   texture.NewConstant(core.Black),
	}
}

// Metal is a glossy reflector using the Ashikhmin-Shirley lobe
type Metal struct {
	Reflection texture.Texture
	Roughness  texture.Texture
	Emission   texture.Texture
}

// NewMetal creates a metal with a solid color and uniform roughness
func NewMetal(reflection core.Color, roughness float64) *Metal {
	return &Metal{
		Reflection: texture.NewConstant(reflection),
		Roughness:  texture.NewGray(roughness),
		Emission:   texture.NewConstant(core.Black),
	}
}

// NewMetalFromConfig creates a metal material, rejecting nil textures
func NewMetalFromConfig(cfg MetalConfig) (*Metal, error) {
	args := textureArgs{{"reflection", cfg.Reflection}, {"roughness", cfg.Roughness}, {"emission", cfg.Emission}}
	if err := args.check(KindMetal); err != nil {
		return nil, err
	}
	return &Metal{Reflection: cfg.Reflection, Roughness: cfg.Roughness, Emission: cfg.Emission}, nil
}

// Kind implements Material
func (m *Metal) Kind() Kind { return KindMetal }

// ComputeBSDF implements Material
func (m *Metal) ComputeBSDF(it core.Intersection, mode bxdf.TransportMode, allowMultipleLobes bool) (*bxdf.BSDF, bool) {
	return computeBSDF(m, it, mode, allowMultipleLobes)
}

// Emittance implements Material
func (m *Metal) Emittance(it core.Intersection) core.Color {
	return m.Emission.Evaluate(it)
}

func (m *Metal) lobes(it core.Intersection, mode bxdf.TransportMode) ([]bxdf.Lobe, float64) {
	r := reflectance(m.Reflection, it)
	glossy := bxdf.NewAshikhminShirley(r, scalar(m.Roughness, it))
	return []bxdf.Lobe{{BxDF: glossy, Weight: 1}}, 1
}
