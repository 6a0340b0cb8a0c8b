package bxdf

import (
	"math"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// DefaultOrenNayarAngle is the roughness angle used when none is given, in degrees
const DefaultOrenNayarAngle = 20.0

// OrenNayar is a rough diffuse lobe modelling V-shaped microfacets whose
// slopes have a Gaussian distribution with standard deviation Angle
type OrenNayar struct {
	R     core.Color
	Angle float64 // degrees, in [0, 90]
	a, b  float64
}

// NewOrenNayar creates a rough diffuse lobe. The angle is clamped to [0, 90] degrees.
func NewOrenNayar(r core.Color, angleDegrees float64) *OrenNayar {
	angle := math.Max(0, math.Min(90, angleDegrees))
	if math.IsNaN(angleDegrees) {
		angle = 0
	}
	sigma := angle * math.Pi / 180
	sigma2 := sigma * sigma
	return &OrenNayar{
		R:     r,
		Angle: angle,
		a:     1 - sigma2/(2*(sigma2+0.33)),
		b:     0.45 * sigma2 / (sigma2 + 0.09),
	}
}

// Kind implements BxDF
func (o *OrenNayar) Kind() Kind { return KindOrenNayar }

// Evaluate implements BxDF
func (o *OrenNayar) Evaluate(wo, wi core.Vec3) core.Color {
	if !core.SameHemisphere(wo, wi) {
		return core.Black
	}

	sinThetaI := core.SinTheta(wi)
	sinThetaO := core.SinTheta(wo)

	// Cosine term of the azimuthal difference
	maxCos := 0.0
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		dCos := core.CosPhi(wi)*core.CosPhi(wo) + core.SinPhi(wi)*core.SinPhi(wo)
		maxCos = math.Max(0, dCos)
	}

	// α is the larger of the two polar angles, β the smaller
	var sinAlpha, tanBeta float64
	if core.AbsCosTheta(wi) > core.AbsCosTheta(wo) {
		sinAlpha = sinThetaO
		tanBeta = sinThetaI / core.AbsCosTheta(wi)
	} else {
		sinAlpha = sinThetaI
		tanBeta = sinThetaO / core.AbsCosTheta(wo)
	}

	return o.R.Scale((o.a + o.b*maxCos*sinAlpha*tanBeta) / math.Pi)
}

// Sample implements BxDF with cosine-weighted sampling
func (o *OrenNayar) Sample(wo core.Vec3, u core.Vec2, mode TransportMode) (Sample, bool) {
	return sampleCosine(o, wo, u)
}

// PDF implements BxDF
func (o *OrenNayar) PDF(wo, wi core.Vec3) float64 {
	return cosinePDF(wo, wi)
}

// IsDelta implements BxDF
func (o *OrenNayar) IsDelta() bool { return false }

// Reflectance implements BxDF
func (o *OrenNayar) Reflectance() core.Color { return o.R }

func (o *OrenNayar) isBxDF() {}
