package texture

import (
	"math"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/noise"
)

// Marble produces vein-like bands cycling through three textures. The band
// coordinate is the object-space x axis warped by turbulence.
type Marble struct {
	A, B, C Texture
	Scale   float64 // turbulence amplitude added to the band coordinate
	Stripes float64 // stripes per unit length
	Octaves int
}

// NewMarble creates a marble texture
func NewMarble(a, b, c Texture, scale, stripes float64, octaves int) (*Marble, error) {
	if err := requireChildren(KindMarble, []string{"a", "b", "c"}, a, b, c); err != nil {
		return nil, err
	}
	if !core.IsFinite(scale) {
		return nil, invalidParam(KindMarble, "scale", "must be finite, got %v", scale)
	}
	if !core.IsFinite(stripes) {
		return nil, invalidParam(KindMarble, "stripes", "must be finite, got %v", stripes)
	}
	if octaves < 1 || octaves > noise.MaxOctaves {
		return nil, invalidParam(KindMarble, "octaves", "must be in [1, %d], got %d", noise.MaxOctaves, octaves)
	}
	return &Marble{A: a, B: b, C: c, Scale: scale, Stripes: stripes, Octaves: octaves}, nil
}

// Kind implements Texture
func (m *Marble) Kind() Kind { return KindMarble }

// Evaluate blends A→B in the lower half of the band value and B→C in the upper half
func (m *Marble) Evaluate(it core.Intersection) core.Color {
	band := m.band(it.ObjectPoint)
	if band < 1 {
		ca := m.A.Evaluate(it)
		cb := m.B.Evaluate(it)
		return ca.Lerp(cb, band)
	}
	cb := m.B.Evaluate(it)
	cc := m.C.Evaluate(it)
	return cb.Lerp(cc, band-1)
}

// band returns 2|sin(x + scale·turbulence)| in [0, 2]
func (m *Marble) band(p core.Vec3) float64 {
	q := p.Multiply(math.Pi * m.Stripes)
	x := q.X + m.Scale*noise.Turbulence(q.X, q.Y, q.Z, m.Octaves)
	return 2 * math.Abs(math.Sin(x))
}

func (m *Marble) isTexture() {}
