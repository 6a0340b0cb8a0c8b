package material

import (
	"github.com/df07/go-progressive-shading/pkg/bxdf"
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// PlasticConfig configures a diffuse base under a glossy coat
type PlasticConfig struct {
	Diffuse   texture.Texture
	Specular  texture.Texture
	Roughness texture.Texture // channel average, clamped to [0.001, 1]
	Emission  texture.Texture
}

// DefaultPlasticConfig returns gray plastic with a dielectric-strength coat
func DefaultPlasticConfig() PlasticConfig {
	return PlasticConfig{
		Diffuse:   texture.NewGray(0.5),
		Specular:  texture.NewGray(0.04),
		Roughness: texture.NewGray(0.2),
		Emission:  texture.NewConstant(core.Black),
	}
}

// Plastic combines a Lambertian lobe with an Ashikhmin-Shirley lobe
type Plastic struct {
	Diffuse   texture.Texture
	Specular  texture.Texture
	Roughness texture.Texture
	Emission  texture.Texture
}

// NewPlastic creates plastic with a solid diffuse color and default coat
func NewPlastic(diffuse core.Color) *Plastic {
	cfg := DefaultPlasticConfig()
	return &Plastic{
		Diffuse:   texture.NewConstant(diffuse),
		Specular:  cfg.Specular,
		Roughness: cfg.Roughness,
		Emission:  cfg.Emission,
	}
}

// NewPlasticFromConfig creates plastic, rejecting nil textures
func NewPlasticFromConfig(cfg PlasticConfig) (*Plastic, error) {
	args := textureArgs{
		{"diffuse", cfg.Diffuse},
		{"specular", cfg.Specular},
		{"roughness", cfg.Roughness},
		{"emission", cfg.Emission},
	}
	if err := args.check(KindPlastic); err != nil {
		return nil, err
	}
	return &Plastic{Diffuse: cfg.Diffuse, Specular: cfg.Specular, Roughness: cfg.Roughness, Emission: cfg.Emission}, nil
}

// Kind implements Material
func (p *Plastic) Kind() Kind { return KindPlastic }

// ComputeBSDF implements Material
func (p *Plastic) ComputeBSDF(it core.Intersection, mode bxdf.TransportMode, allowMultipleLobes bool) (*bxdf.BSDF, bool) {
	return computeBSDF(p, it, mode, allowMultipleLobes)
}

// Emittance implements Material
func (p *Plastic) Emittance(it core.Intersection) core.Color {
	return p.Emission.Evaluate(it)
}

func (p *Plastic) lobes(it core.Intersection, mode bxdf.TransportMode) ([]bxdf.Lobe, float64) {
	kd := reflectance(p.Diffuse, it)
	ks := reflectance(p.Specular, it)
	rough := scalar(p.Roughness, it)
	return []bxdf.Lobe{
		{BxDF: bxdf.NewLambertian(kd), Weight: 1},
		{BxDF: bxdf.NewAshikhminShirley(ks, rough), Weight: 1},
	}, 1
}
