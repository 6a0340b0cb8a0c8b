package texture

import (
	"github.com/df07/go-progressive-shading/pkg/core"
)

// Constant provides uniform color
type Constant struct {
	Color core.Color
}

// NewConstant creates a new solid color source
func NewConstant(color core.Color) *Constant {
	return &Constant{Color: color}
}

// NewGray creates a constant texture with the same value in every channel
func NewGray(v float64) *Constant {
	return &Constant{Color: core.Gray(v)}
}

// Kind implements Texture
func (c *Constant) Kind() Kind { return KindConstant }

// Evaluate returns the solid color regardless of the intersection
func (c *Constant) Evaluate(it core.Intersection) core.Color {
	return c.Color
}

func (c *Constant) isTexture() {}
