package texture

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNilTexture is returned when a composite texture is given a nil child.
	ErrNilTexture = errors.New("texture: nil child texture")

	// ErrInvalidParameter is returned for scalar parameters outside their domain.
	ErrInvalidParameter = errors.New("texture: invalid parameter")
)

// ArgumentError describes a rejected constructor argument.
type ArgumentError struct {
	Kind  Kind   // texture being constructed
	Param string // offending parameter
	Err   error  // ErrNilTexture or ErrInvalidParameter, possibly wrapped
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Param, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func nilChild(kind Kind, param string) error {
	return &ArgumentError{Kind: kind, Param: param, Err: ErrNilTexture}
}

func invalidParam(kind Kind, param string, format string, args ...any) error {
	return &ArgumentError{
		Kind:  kind,
		Param: param,
		Err:   fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...)),
	}
}

// requireChildren checks named children in order and reports the first nil one.
func requireChildren(kind Kind, names []string, children ...Texture) error {
	for i, c := range children {
		if IsNil(c) {
			return nilChild(kind, names[i])
		}
	}
	return nil
}

// IsNil reports whether t is nil or an interface wrapping a nil pointer.
func IsNil(t Texture) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
