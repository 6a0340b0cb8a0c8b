// Package bxdf implements the scattering lobes a material assembles into a
// BSDF. Every lobe works in the local shading frame where +Z is the shading
// normal, wo points towards the viewer and wi towards the light.
package bxdf

import (
	"fmt"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// Kind identifies a lobe variant.
type Kind int

const (
	KindLambertian Kind = iota + 1
	KindOrenNayar
	KindAshikhminShirley
	KindSpecularReflection
	KindSpecularTransmission
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindOrenNayar:
		return "oren-nayar"
	case KindAshikhminShirley:
		return "ashikhmin-shirley"
	case KindSpecularReflection:
		return "specular-reflection"
	case KindSpecularTransmission:
		return "specular-transmission"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// TransportMode indicates whether light (Radiance) or importance is being
// carried along a path. Only refraction is affected: radiance is scaled by
// the squared ratio of refractive indices, importance is not.
type TransportMode int

const (
	Radiance TransportMode = iota
	Importance
)

func (m TransportMode) String() string {
	if m == Importance {
		return "importance"
	}
	return "radiance"
}

// Sample is the result of sampling a lobe
type Sample struct {
	Wi           core.Vec3  // Sampled incident direction
	F            core.Color // Lobe value for (wo, Wi)
	PDF          float64    // Density of Wi, or the discrete probability for delta lobes
	Delta        bool       // Wi was chosen from a delta distribution
	Transmission bool       // Wi lies on the opposite side of the surface from wo
}

// BxDF is a single scattering lobe. Implementations are immutable and safe
// for concurrent use.
type BxDF interface {
	Kind() Kind

	// Evaluate returns the lobe value for the direction pair. Delta lobes return black.
	Evaluate(wo, wi core.Vec3) core.Color

	// Sample draws an incident direction for wo from two uniform numbers in [0,1).
	// It returns false when no valid direction exists.
	Sample(wo core.Vec3, u core.Vec2, mode TransportMode) (Sample, bool)

	// PDF returns the solid angle density of sampling wi. Delta lobes return 0.
	PDF(wo, wi core.Vec3) float64

	IsDelta() bool

	// Reflectance returns the lobe's color parameter, used to rank lobes
	Reflectance() core.Color

	isBxDF()
}

// Evaluate evaluates b for world-space directions expressed in frame
func Evaluate(b BxDF, woWorld, wiWorld core.Vec3, frame core.Frame) core.Color {
	return b.Evaluate(frame.ToLocal(woWorld), frame.ToLocal(wiWorld))
}

// IsTransmissive reports whether b can scatter light through the surface
func IsTransmissive(b BxDF) bool {
	return b.Kind() == KindSpecularTransmission
}
