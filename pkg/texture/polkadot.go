package texture

import (
	"github.com/df07/go-progressive-shading/pkg/core"
)

// PolkaDot places one circular dot of A in the middle of every UV cell, over a background of B
type PolkaDot struct {
	A, B           Texture
	Angle          float64 // degrees
	CellResolution float64 // cells per unit of UV
	DotRadius      float64 // in cell units, 0.5 touches the cell edges
}

// NewPolkaDot creates a polka dot texture
func NewPolkaDot(a, b Texture, angle, cellResolution, dotRadius float64) (*PolkaDot, error) {
	if err := requireChildren(KindPolkaDot, []string{"a", "b"}, a, b); err != nil {
		return nil, err
	}
	if !core.IsFinite(angle) {
		return nil, invalidParam(KindPolkaDot, "angle", "must be finite, got %v", angle)
	}
	if !core.IsFinite(cellResolution) || cellResolution < 0 {
		return nil, invalidParam(KindPolkaDot, "cellResolution", "must be a finite non-negative number, got %v", cellResolution)
	}
	if !core.IsFinite(dotRadius) || dotRadius < 0 {
		return nil, invalidParam(KindPolkaDot, "dotRadius", "must be a finite non-negative number, got %v", dotRadius)
	}
	return &PolkaDot{A: a, B: b, Angle: angle, CellResolution: cellResolution, DotRadius: dotRadius}, nil
}

// Kind implements Texture
func (p *PolkaDot) Kind() Kind { return KindPolkaDot }

// Evaluate returns A inside the dot of the cell containing the transformed UV
func (p *PolkaDot) Evaluate(it core.Intersection) core.Color {
	tr := UVTransform{Angle: p.Angle, ScaleU: p.CellResolution, ScaleV: p.CellResolution}
	uv := tr.Apply(it.UV)
	du := core.Fract(uv.X) - 0.5
	dv := core.Fract(uv.Y) - 0.5
	if du*du+dv*dv < p.DotRadius*p.DotRadius {
		return p.A.Evaluate(it)
	}
	return p.B.Evaluate(it)
}

func (p *PolkaDot) isTexture() {}
