package bxdf

import (
	"math"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// FrDielectric returns the unpolarized Fresnel reflectance at a smooth
// boundary between media with indices etaI (the side cosThetaI is measured
// on) and etaT. A negative cosThetaI means the direction is on the etaT side,
// in which case the indices are swapped. Total internal reflection yields 1.
func FrDielectric(cosThetaI, etaI, etaT float64) float64 {
	if etaI == etaT {
		return 0
	}
	cosThetaI = math.Max(-1, math.Min(1, cosThetaI))
	if cosThetaI < 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = -cosThetaI
	}

	// Snell's law
	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParl := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerp := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	return (rParl*rParl + rPerp*rPerp) / 2
}

// SchlickFresnel approximates Fresnel reflectance from the reflectance at normal incidence r0
func SchlickFresnel(r0 core.Color, cosTheta float64) core.Color {
	m := math.Pow(1-math.Max(0, math.Min(1, cosTheta)), 5)
	return r0.Add(core.White.Sub(r0).Scale(m))
}

// refract bends wi (pointing away from the surface, on the side of n)
// through the boundary. eta is the ratio etaI/etaT. Returns false on total
// internal reflection.
func refract(wi, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := n.Dot(wi)
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := eta * eta * sin2ThetaI
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	return wi.Negate().Multiply(eta).Add(n.Multiply(eta*cosThetaI - cosThetaT)), true
}
