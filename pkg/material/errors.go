package material

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/df07/go-progressive-shading/pkg/texture"
)

// ErrNilMaterial is returned when a composite material is given a nil child
var ErrNilMaterial = errors.New("material: nil child material")

// ErrInvalidParameter is returned for scalar parameters outside their domain
var ErrInvalidParameter = errors.New("material: invalid parameter")

// ArgumentError describes a rejected constructor argument
type ArgumentError struct {
	Kind  Kind
	Param string
	Err   error // texture.ErrNilTexture, ErrNilMaterial or ErrInvalidParameter
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Param, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

type namedTexture struct {
	name string
	tex  texture.Texture
}

// textureArgs pairs parameter names with the textures passed for them
type textureArgs []namedTexture

func (a textureArgs) check(kind Kind) error {
	for _, arg := range a {
		if texture.IsNil(arg.tex) {
			return &ArgumentError{Kind: kind, Param: arg.name, Err: texture.ErrNilTexture}
		}
	}
	return nil
}

func invalidParam(kind Kind, param string, format string, args ...any) error {
	return &ArgumentError{
		Kind:  kind,
		Param: param,
		Err:   fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...)),
	}
}

// IsNil reports whether m is nil or an interface wrapping a nil pointer
func IsNil(m Material) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
