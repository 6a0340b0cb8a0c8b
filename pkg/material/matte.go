package material

import (
	"math"

	"github.com/df07/go-progressive-shading/pkg/bxdf"
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// MatteConfig configures a diffuse material
type MatteConfig struct {
	Diffuse   texture.Texture // reflectance
	Emission  texture.Texture
	Roughness float64 // Oren-Nayar angle in degrees; 0 gives an ideal Lambertian surface
}

// DefaultMatteConfig returns a 50% gray, non-emissive Lambertian surface
func DefaultMatteConfig() MatteConfig {
	return MatteConfig{
		Diffuse:  texture.NewGray(0.5),
		Emission: texture.NewConstant(core.Black),
	}
}

// Matte is a diffuse surface
type Matte struct {
	Diffuse   texture.Texture
	Emission  texture.Texture
	Roughness float64
}

// NewMatte creates a Lambertian material with a solid color
func NewMatte(diffuse core.Color) *Matte {
	return &Matte{
		Diffuse:  texture.NewConstant(diffuse),
		Emission: texture.NewConstant(core.Black),
	}
}

// NewMatteFromConfig creates a matte material, rejecting nil textures
func NewMatteFromConfig(cfg MatteConfig) (*Matte, error) {
	args := textureArgs{{"diffuse", cfg.Diffuse}, {"emission", cfg.Emission}}
	if err := args.check(KindMatte); err != nil {
		return nil, err
	}
	if !core.IsFinite(cfg.Roughness) || cfg.Roughness < 0 || cfg.Roughness > 90 {
		return nil, invalidParam(KindMatte, "roughness", "must be an angle in [0, 90] degrees, got %v", cfg.Roughness)
	}
	return &Matte{Diffuse: cfg.Diffuse, Emission: cfg.Emission, Roughness: cfg.Roughness}, nil
}

// Kind implements Material
func (m *Matte) Kind() Kind { return KindMatte }

// ComputeBSDF implements Material
func (m *Matte) ComputeBSDF(it core.Intersection, mode bxdf.TransportMode, allowMultipleLobes bool) (*bxdf.BSDF, bool) {
	return computeBSDF(m, it, mode, allowMultipleLobes)
}

// Emittance implements Material
func (m *Matte) Emittance(it core.Intersection) core.Color {
	return m.Emission.Evaluate(it)
}

func (m *Matte) lobes(it core.Intersection, mode bxdf.TransportMode) ([]bxdf.Lobe, float64) {
	r := reflectance(m.Diffuse, it)
	if m.Roughness > 0 {
		return []bxdf.Lobe{{BxDF: bxdf.NewOrenNayar(r, math.Min(m.Roughness, 90)), Weight: 1}}, 1
	}
	return []bxdf.Lobe{{BxDF: bxdf.NewLambertian(r), Weight: 1}}, 1
}
