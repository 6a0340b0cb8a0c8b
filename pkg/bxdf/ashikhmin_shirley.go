package bxdf

import (
	"math"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// Roughness bounds for the glossy lobe
const (
	MinRoughness = 0.001
	MaxRoughness = 1.0
)

// AshikhminShirley is an anisotropy-free Ashikhmin-Shirley glossy lobe: a
// normalized Blinn microfacet distribution combined with Schlick's Fresnel
// approximation. Low roughness approaches a mirror, high roughness spreads
// towards diffuse.
type AshikhminShirley struct {
	R         core.Color // reflectance at normal incidence
	Roughness float64
}

// NewAshikhminShirley creates a glossy lobe; roughness is clamped to [MinRoughness, MaxRoughness]
func NewAshikhminShirley(r core.Color, roughness float64) *AshikhminShirley {
	if math.IsNaN(roughness) {
		roughness = MaxRoughness
	}
	return &AshikhminShirley{R: r, Roughness: math.Max(MinRoughness, math.Min(MaxRoughness, roughness))}
}

// Kind implements BxDF
func (a *AshikhminShirley) Kind() Kind { return KindAshikhminShirley }

// Exponent returns the Blinn exponent 1/roughness²
func (a *AshikhminShirley) Exponent() float64 {
	r := math.Max(MinRoughness, a.Roughness)
	return 1 / (r * r)
}

// distribution returns D(h) = (n+1)/(2π) cos^n θh
func (a *AshikhminShirley) distribution(h core.Vec3) float64 {
	n := a.Exponent()
	return (n + 1) / (2 * math.Pi) * math.Pow(core.AbsCosTheta(h), n)
}

// Evaluate implements BxDF
func (a *AshikhminShirley) Evaluate(wo, wi core.Vec3) core.Color {
	if !core.SameHemisphere(wo, wi) {
		return core.Black
	}
	cosO, cosI := core.AbsCosTheta(wo), core.AbsCosTheta(wi)
	h := wo.Add(wi)
	if cosO == 0 || cosI == 0 || h.IsZero() {
		return core.Black
	}
	h = h.Normalize()
	woh := wo.AbsDot(h)
	if woh == 0 {
		return core.Black
	}

	f := SchlickFresnel(a.R, wi.AbsDot(h))
	return f.Scale(a.distribution(h) / (4 * woh * math.Max(cosO, cosI)))
}

// Sample draws a half vector from the Blinn distribution and reflects wo about it
func (a *AshikhminShirley) Sample(wo core.Vec3, u core.Vec2, mode TransportMode) (Sample, bool) {
	if wo.Z == 0 {
		return Sample{}, false
	}
	n := a.Exponent()
	cosH := math.Pow(u.X, 1/(n+1))
	sinH := math.Sqrt(math.Max(0, 1-cosH*cosH))
	phi := 2 * math.Pi * u.Y
	h := core.NewVec3(sinH*math.Cos(phi), sinH*math.Sin(phi), cosH)
	if !core.SameHemisphere(wo, h) {
		h = h.Negate()
	}

	woh := wo.Dot(h)
	wi := wo.Negate().Add(h.Multiply(2 * woh))
	if !core.SameHemisphere(wo, wi) {
		return Sample{}, false
	}

	pdf := a.distribution(h) / (4 * math.Abs(woh))
	if pdf == 0 || math.IsInf(pdf, 0) {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: a.Evaluate(wo, wi), PDF: pdf}, true
}

// PDF implements BxDF
func (a *AshikhminShirley) PDF(wo, wi core.Vec3) float64 {
	if !core.SameHemisphere(wo, wi) {
		return 0
	}
	h := wo.Add(wi)
	if h.IsZero() {
		return 0
	}
	h = h.Normalize()
	woh := wo.AbsDot(h)
	if woh == 0 {
		return 0
	}
	return a.distribution(h) / (4 * woh)
}

// IsDelta implements BxDF
func (a *AshikhminShirley) IsDelta() bool { return false }

// Reflectance implements BxDF
func (a *AshikhminShirley) Reflectance() core.Color { return a.R }

func (a *AshikhminShirley) isBxDF() {}
