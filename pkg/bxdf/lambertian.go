package bxdf

import (
	"math"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// Lambertian scatters light equally in all directions of the hemisphere
type Lambertian struct {
	R core.Color
}

// NewLambertian creates an ideal diffuse lobe
func NewLambertian(r core.Color) *Lambertian {
	return &Lambertian{R: r}
}

// Kind implements BxDF
func (l *Lambertian) Kind() Kind { return KindLambertian }

// Evaluate returns R/π when wo and wi share a hemisphere
func (l *Lambertian) Evaluate(wo, wi core.Vec3) core.Color {
	if !core.SameHemisphere(wo, wi) {
		return core.Black
	}
	return l.R.Scale(1.0 / math.Pi)
}

// Sample draws a cosine-weighted direction on the side of wo
func (l *Lambertian) Sample(wo core.Vec3, u core.Vec2, mode TransportMode) (Sample, bool) {
	return sampleCosine(l, wo, u)
}

// PDF returns |cos θi|/π in the hemisphere of wo
func (l *Lambertian) PDF(wo, wi core.Vec3) float64 {
	return cosinePDF(wo, wi)
}

// IsDelta implements BxDF
func (l *Lambertian) IsDelta() bool { return false }

// Reflectance implements BxDF
func (l *Lambertian) Reflectance() core.Color { return l.R }

func (l *Lambertian) isBxDF() {}

// sampleCosine is shared by the diffuse lobes
func sampleCosine(b BxDF, wo core.Vec3, u core.Vec2) (Sample, bool) {
	wi := core.SampleLocalCosineHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := cosinePDF(wo, wi)
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: b.Evaluate(wo, wi), PDF: pdf}, true
}

func cosinePDF(wo, wi core.Vec3) float64 {
	if !core.SameHemisphere(wo, wi) {
		return 0
	}
	return core.AbsCosTheta(wi) / math.Pi
}
