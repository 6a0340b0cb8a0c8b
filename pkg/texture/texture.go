// Package texture implements the closed set of texture nodes that map a
// surface intersection to a color. Composite textures hold child textures and
// evaluate them on demand; every node is immutable once constructed and safe
// to evaluate from any number of goroutines.
package texture

import (
	"fmt"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// Kind identifies a texture variant.
type Kind int

const (
	KindConstant Kind = iota + 1
	KindBlend
	KindCheckerboard
	KindBullseye
	KindPolkaDot
	KindMarble
	KindSimplexFBM
	KindImage
	KindDotProduct
	KindSurfaceNormal
	KindUV
	KindFunction
	KindRegion
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindBlend:
		return "blend"
	case KindCheckerboard:
		return "checkerboard"
	case KindBullseye:
		return "bullseye"
	case KindPolkaDot:
		return "polka-dot"
	case KindMarble:
		return "marble"
	case KindSimplexFBM:
		return "simplex-fbm"
	case KindImage:
		return "image"
	case KindDotProduct:
		return "dot-product"
	case KindSurfaceNormal:
		return "surface-normal"
	case KindUV:
		return "uv"
	case KindFunction:
		return "function"
	case KindRegion:
		return "region"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Texture maps an intersection to a color. Evaluate is total, deterministic
// and free of side effects. The interface is sealed; the variants in this
// package are the only implementations.
type Texture interface {
	Kind() Kind
	Evaluate(it core.Intersection) core.Color
	isTexture()
}

// Children returns the direct child textures of t in declared field order.
// Leaf textures return nil.
func Children(t Texture) []Texture {
	switch n := t.(type) {
	case *Blend:
		return []Texture{n.A, n.B}
	case *Checkerboard:
		return []Texture{n.A, n.B}
	case *Bullseye:
		return []Texture{n.A, n.B}
	case *PolkaDot:
		return []Texture{n.A, n.B}
	case *Marble:
		return []Texture{n.A, n.B, n.C}
	case *Region:
		return []Texture{n.Inside, n.Outside}
	}
	return nil
}

// Must panics if err is non-nil and returns t otherwise. It is meant for
// package-level scene definitions whose arguments are known to be valid.
func Must[T Texture](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}
