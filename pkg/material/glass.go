package material

import (
	"github.com/df07/go-progressive-shading/pkg/bxdf"
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// DefaultEta is the index of refraction of common glass
const DefaultEta = 1.5

// GlassConfig configures a smooth dielectric
type GlassConfig struct {
	Reflection   texture.Texture
	Transmission texture.Texture
	Emission     texture.Texture
	Eta          float64 // index of refraction inside the surface; outside is 1
}

// DefaultGlassConfig returns clear glass with eta 1.5
func DefaultGlassConfig() GlassConfig {
	return GlassConfig{
		Reflection:   texture.NewConstant(core.White),
		Transmission: texture.NewConstant(core.White),
		Emission:     texture.NewConstant(core.Black),
		Eta:          DefaultEta,
	}
}

// Glass reflects and refracts according to the Fresnel equations
type Glass struct {
	Reflection   texture.Texture
	Transmission texture.Texture
	Emission     texture.Texture
	Eta          float64
}

// NewGlass creates clear glass with the given index of refraction
func NewGlass(eta float64) *Glass {
	cfg := DefaultGlassConfig()
	return &Glass{
		Reflection:   cfg.Reflection,
		Transmission: cfg.Transmission,
		Emission:     cfg.Emission,
		Eta:          eta,
	}
}

// NewGlassFromConfig creates a glass material, rejecting nil textures and
// non-positive indices of refraction
func NewGlassFromConfig(cfg GlassConfig) (*Glass, error) {
	args := textureArgs{{"reflection", cfg.Reflection}, {"transmission", cfg.Transmission}, {"emission", cfg.Emission}}
	if err := args.check(KindGlass); err != nil {
		return nil, err
	}
	if !core.IsFinite(cfg.Eta) || cfg.Eta <= 0 {
		return nil, invalidParam(KindGlass, "eta", "must be a finite positive number, got %v", cfg.Eta)
	}
	return &Glass{
		Reflection:   cfg.Reflection,
		Transmission: cfg.Transmission,
		Emission:     cfg.Emission,
		Eta:          cfg.Eta,
	}, nil
}

// Kind implements Material
func (g *Glass) Kind() Kind { return KindGlass }

// ComputeBSDF implements Material
func (g *Glass) ComputeBSDF(it core.Intersection, mode bxdf.TransportMode, allowMultipleLobes bool) (*bxdf.BSDF, bool) {
	return computeBSDF(g, it, mode, allowMultipleLobes)
}

// Emittance implements Material
func (g *Glass) Emittance(it core.Intersection) core.Color {
	return g.Emission.Evaluate(it)
}

func (g *Glass) lobes(it core.Intersection, mode bxdf.TransportMode) ([]bxdf.Lobe, float64) {
	r := reflectance(g.Reflection, it)
	t := reflectance(g.Transmission, it)
	return []bxdf.Lobe{{BxDF: bxdf.NewSpecularTransmission(r, t, 1, g.Eta), Weight: 1}}, g.Eta
}
