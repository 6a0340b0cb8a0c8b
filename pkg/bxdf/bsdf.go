package bxdf

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// ErrInvalidBSDF is returned when a BSDF is assembled from unusable lobes
var ErrInvalidBSDF = errors.New("bxdf: invalid bsdf")

// Lobe is a BxDF with its weight in the BSDF
type Lobe struct {
	BxDF   BxDF
	Weight float64
}

// BSDF is a weighted bundle of lobes sharing one shading frame. Weights are
// not required to sum to one. A BSDF is immutable once built.
type BSDF struct {
	frame core.Frame
	ng    core.Vec3
	eta   float64
	lobes []Lobe
	total float64
}

// NewBSDF assembles lobes at an intersection. eta is the relative index of
// refraction across the surface, 1 for opaque materials.
func NewBSDF(it core.Intersection, eta float64, lobes ...Lobe) (*BSDF, error) {
	if len(lobes) == 0 {
		return nil, fmt.Errorf("%w: no lobes", ErrInvalidBSDF)
	}
	total := 0.0
	for i, l := range lobes {
		if l.BxDF == nil {
			return nil, fmt.Errorf("%w: lobe %d is nil", ErrInvalidBSDF, i)
		}
		if !core.IsFinite(l.Weight) || l.Weight < 0 {
			return nil, fmt.Errorf("%w: lobe %d has weight %v", ErrInvalidBSDF, i, l.Weight)
		}
		total += l.Weight
	}

	frame := it.Frame()
	ng := it.GeometricNormal.Normalize()
	if ng.IsZero() {
		ng = frame.N
	}

	copied := make([]Lobe, len(lobes))
	copy(copied, lobes)
	return &BSDF{frame: frame, ng: ng, eta: eta, lobes: copied, total: total}, nil
}

// Lobes returns a copy of the lobe list in construction order
func (b *BSDF) Lobes() []Lobe {
	out := make([]Lobe, len(b.lobes))
	copy(out, b.lobes)
	return out
}

// NumLobes returns the number of lobes
func (b *BSDF) NumLobes() int { return len(b.lobes) }

// Frame returns the shading frame
func (b *BSDF) Frame() core.Frame { return b.frame }

// Eta returns the relative index of refraction
func (b *BSDF) Eta() float64 { return b.eta }

// IsSpecular reports whether every lobe is a delta distribution
func (b *BSDF) IsSpecular() bool {
	for _, l := range b.lobes {
		if !l.BxDF.IsDelta() {
			return false
		}
	}
	return true
}

// Evaluate sums the weighted smooth lobes for world-space directions.
// Smooth lobes only reflect, so directions on opposite sides of the
// geometric surface give black.
func (b *BSDF) Evaluate(woWorld, wiWorld core.Vec3) core.Color {
	wo, wi := b.frame.ToLocal(woWorld), b.frame.ToLocal(wiWorld)
	if wo.Z == 0 {
		return core.Black
	}
	if woWorld.Dot(b.ng)*wiWorld.Dot(b.ng) <= 0 {
		return core.Black
	}

	f := core.Black
	for _, l := range b.lobes {
		if l.BxDF.IsDelta() || IsTransmissive(l.BxDF) {
			continue
		}
		f = f.Add(l.BxDF.Evaluate(wo, wi).Scale(l.Weight))
	}
	return f
}

// PDF returns the density of Sample producing wiWorld, the weight-normalized
// mixture of the smooth lobe densities
func (b *BSDF) PDF(woWorld, wiWorld core.Vec3) float64 {
	if b.total == 0 {
		return 0
	}
	wo, wi := b.frame.ToLocal(woWorld), b.frame.ToLocal(wiWorld)
	if wo.Z == 0 {
		return 0
	}
	pdf := 0.0
	for _, l := range b.lobes {
		if l.BxDF.IsDelta() {
			continue
		}
		pdf += l.Weight * l.BxDF.PDF(wo, wi)
	}
	return pdf / b.total
}

// Sample picks a lobe with probability proportional to its weight using u1,
// then samples it with u2. The returned direction is in world space.
// Delta lobes return their own weighted value; smooth lobes return the
// value and density of the whole smooth mixture.
func (b *BSDF) Sample(woWorld core.Vec3, u1 float64, u2 core.Vec2, mode TransportMode) (Sample, bool) {
	if b.total == 0 {
		return Sample{}, false
	}
	wo := b.frame.ToLocal(woWorld)
	if wo.Z == 0 {
		return Sample{}, false
	}

	chosen := b.choose(u1)
	l := b.lobes[chosen]
	s, ok := l.BxDF.Sample(wo, u2, mode)
	if !ok || s.PDF == 0 {
		return Sample{}, false
	}
	wiWorld := b.frame.FromLocal(s.Wi)

	if s.Delta {
		s.Wi = wiWorld
		s.F = s.F.Scale(l.Weight)
		s.PDF *= l.Weight / b.total
		return s, true
	}

	f := b.Evaluate(woWorld, wiWorld)
	pdf := b.PDF(woWorld, wiWorld)
	if pdf == 0 || math.IsInf(pdf, 0) {
		return Sample{}, false
	}
	return Sample{Wi: wiWorld, F: f, PDF: pdf}, true
}

// choose maps u in [0,1) to a lobe index by cumulative weight
func (b *BSDF) choose(u float64) int {
	target := u * b.total
	acc := 0.0
	last := 0
	for i, l := range b.lobes {
		if l.Weight == 0 {
			continue
		}
		acc += l.Weight
		last = i
		if target < acc {
			return i
		}
	}
	return last
}

func (b *BSDF) String() string {
	s := "BSDF["
	for i, l := range b.lobes {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s×%.3g", l.BxDF.Kind(), l.Weight)
	}
	return s + "]"
}
