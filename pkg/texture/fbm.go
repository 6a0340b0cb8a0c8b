package texture

import (
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/noise"
)

// SimplexFBM modulates a constant color by fractional Brownian motion noise
// sampled at the object-space point
type SimplexFBM struct {
	Color     core.Color
	Frequency float64
	Gain      float64 // amplitude multiplier between octaves
	Octaves   int
}

// NewSimplexFBM creates a noise texture
func NewSimplexFBM(color core.Color, frequency, gain float64, octaves int) (*SimplexFBM, error) {
	if !color.IsFinite() {
		return nil, invalidParam(KindSimplexFBM, "color", "must be finite, got %v", color)
	}
	if !core.IsFinite(frequency) {
		return nil, invalidParam(KindSimplexFBM, "frequency", "must be finite, got %v", frequency)
	}
	if !core.IsFinite(gain) || gain < 0 {
		return nil, invalidParam(KindSimplexFBM, "gain", "must be a finite non-negative number, got %v", gain)
	}
	if octaves < 1 || octaves > noise.MaxOctaves {
		return nil, invalidParam(KindSimplexFBM, "octaves", "must be in [1, %d], got %d", noise.MaxOctaves, octaves)
	}
	return &SimplexFBM{Color: color, Frequency: frequency, Gain: gain, Octaves: octaves}, nil
}

// Kind implements Texture
func (f *SimplexFBM) Kind() Kind { return KindSimplexFBM }

// Evaluate scales Color by the noise value remapped to [0, 1]
func (f *SimplexFBM) Evaluate(it core.Intersection) core.Color {
	p := it.ObjectPoint.Multiply(f.Frequency)
	n := noise.FBM(p.X, p.Y, p.Z, f.Gain, f.Octaves)
	return f.Color.Scale(n*0.5 + 0.5)
}

func (f *SimplexFBM) isTexture() {}
