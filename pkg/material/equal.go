package material

import (
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// Equal reports whether two material graphs are structurally identical,
// comparing textures with texture.Equal and scalars with core.ApproxEqual
func Equal(a, b Material) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *Matte:
		y := b.(*Matte)
		if !core.ApproxEqual(x.Roughness, y.Roughness) {
			return false
		}
	case *Glass:
		y := b.(*Glass)
		if !core.ApproxEqual(x.Eta, y.Eta) {
			return false
		}
	case *Mix:
		y := b.(*Mix)
		if !Equal(x.A, y.A) || !Equal(x.B, y.B) {
			return false
		}
	}

	ta, tb := Textures(a), Textures(b)
	for i := range ta {
		if !texture.Equal(ta[i], tb[i]) {
			return false
		}
	}
	return true
}
