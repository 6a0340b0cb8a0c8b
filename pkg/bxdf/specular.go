package bxdf

import (
	"github.com/df07/go-progressive-shading/pkg/core"
)

// SpecularReflection is a perfect mirror
type SpecularReflection struct {
	R core.Color
}

// NewSpecularReflection creates a mirror lobe
func NewSpecularReflection(r core.Color) *SpecularReflection {
	return &SpecularReflection{R: r}
}

// Kind implements BxDF
func (s *SpecularReflection) Kind() Kind { return KindSpecularReflection }

// Evaluate is zero for every direction pair
func (s *SpecularReflection) Evaluate(wo, wi core.Vec3) core.Color { return core.Black }

// Sample returns the mirror direction with F = R/|cos θi|
func (s *SpecularReflection) Sample(wo core.Vec3, u core.Vec2, mode TransportMode) (Sample, bool) {
	wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
	cos := core.AbsCosTheta(wi)
	if cos == 0 {
		return Sample{}, false
	}
	return Sample{Wi: wi, F: s.R.Scale(1 / cos), PDF: 1, Delta: true}, true
}

// PDF is zero for every direction pair
func (s *SpecularReflection) PDF(wo, wi core.Vec3) float64 { return 0 }

// IsDelta implements BxDF
func (s *SpecularReflection) IsDelta() bool { return true }

// Reflectance implements BxDF
func (s *SpecularReflection) Reflectance() core.Color { return s.R }

func (s *SpecularReflection) isBxDF() {}

// SpecularTransmission is a smooth dielectric boundary. It reflects with
// the Fresnel probability and refracts otherwise, so a single lobe covers
// both paths. EtaA is the index on the side the normal points to, EtaB the
// index on the other side.
type SpecularTransmission struct {
	R, T       core.Color
	EtaA, EtaB float64
}

// NewSpecularTransmission creates a dielectric lobe
func NewSpecularTransmission(r, t core.Color, etaA, etaB float64) *SpecularTransmission {
	return &SpecularTransmission{R: r, T: t, EtaA: etaA, EtaB: etaB}
}

// Kind implements BxDF
func (s *SpecularTransmission) Kind() Kind { return KindSpecularTransmission }

// Evaluate is zero for every direction pair
func (s *SpecularTransmission) Evaluate(wo, wi core.Vec3) core.Color { return core.Black }

// Sample chooses reflection with probability Fr and refraction with 1-Fr
func (s *SpecularTransmission) Sample(wo core.Vec3, u core.Vec2, mode TransportMode) (Sample, bool) {
	if wo.Z == 0 {
		return Sample{}, false
	}
	fr := FrDielectric(core.CosTheta(wo), s.EtaA, s.EtaB)

	if u.X < fr {
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		return Sample{
			Wi:    wi,
			F:     s.R.Scale(fr / core.AbsCosTheta(wi)),
			PDF:   fr,
			Delta: true,
		}, true
	}

	// Figure out which side we are on
	entering := core.CosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	n := core.NewVec3(0, 0, 1)
	if !entering {
		etaI, etaT = etaT, etaI
		n = n.Negate()
	}

	wi, ok := refract(wo, n, etaI/etaT)
	if !ok || core.AbsCosTheta(wi) == 0 {
		return Sample{}, false
	}

	ft := s.T.Scale(1 - fr)
	if mode == Radiance {
		ft = ft.Scale((etaI * etaI) / (etaT * etaT))
	}
	return Sample{
		Wi:           wi,
		F:            ft.Scale(1 / core.AbsCosTheta(wi)),
		PDF:          1 - fr,
		Delta:        true,
		Transmission: true,
	}, true
}

// PDF is zero for every direction pair
func (s *SpecularTransmission) PDF(wo, wi core.Vec3) float64 { return 0 }

// IsDelta implements BxDF
func (s *SpecularTransmission) IsDelta() bool { return true }

// Reflectance returns the mean of the reflection and transmission colors
func (s *SpecularTransmission) Reflectance() core.Color {
	return s.R.Add(s.T).Scale(0.5)
}

func (s *SpecularTransmission) isBxDF() {}
