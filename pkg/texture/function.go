package texture

import (
	"github.com/df07/go-progressive-shading/pkg/core"
)

// Function wraps a host-supplied closure. The closure must be pure and safe
// for concurrent use. Function textures cannot be packed for the GPU.
type Function struct {
	Name string
	Fn   func(it core.Intersection) core.Color
}

// NewFunction creates a closure texture
func NewFunction(name string, fn func(it core.Intersection) core.Color) (*Function, error) {
	if fn == nil {
		return nil, invalidParam(KindFunction, "fn", "must not be nil")
	}
	return &Function{Name: name, Fn: fn}, nil
}

// Kind implements Texture
func (f *Function) Kind() Kind { return KindFunction }

// Evaluate calls the closure
func (f *Function) Evaluate(it core.Intersection) core.Color {
	return f.Fn(it)
}

func (f *Function) isTexture() {}
