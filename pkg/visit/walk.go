// Package visit walks texture and material graphs. A walk dispatches on the
// concrete node type, visits children in declared field order and
// separates failures of the tree (MalformedError) from failures of the
// visitor code (TraversalError).
package visit

import (
	"fmt"

	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// Node is a texture.Texture or a material.Material
type Node any

// Visitor receives every node of a walk twice. Enter returning false skips
// the node's children; Leave is still called for it. Leave returning false
// ends the whole walk.
type Visitor interface {
	Enter(n Node) bool
	Leave(n Node) bool
}

// Funcs adapts plain functions to a Visitor. A nil function returns true.
type Funcs struct {
	EnterFn func(n Node) bool
	LeaveFn func(n Node) bool
}

// Enter implements Visitor
func (f Funcs) Enter(n Node) bool {
	if f.EnterFn == nil {
		return true
	}
	return f.EnterFn(n)
}

// Leave implements Visitor
func (f Funcs) Leave(n Node) bool {
	if f.LeaveFn == nil {
		return true
	}
	return f.LeaveFn(n)
}

// MalformedError reports a structural defect of the graph itself: a nil
// child or a node type the walker does not know.
type MalformedError struct {
	Path   string // slash separated field path from the root
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("visit: malformed graph at %s: %s", e.Path, e.Reason)
}

// TraversalError wraps a panic raised by visitor code
type TraversalError struct {
	Node  Node  // node being entered or left when the panic occurred
	Cause error // the recovered value, as an error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("visit: visitor failed at %s: %v", NodeName(e.Node), e.Cause)
}

func (e *TraversalError) Unwrap() error {
	return e.Cause
}

// Walk visits root and its descendants depth first. Shared subtrees are
// visited once per reference. Walk returns nil when the walk completes or
// is stopped by Leave.
func Walk(root Node, v Visitor) error {
	w := walker{v: v}
	_, err := w.walk(root, "root")
	return err
}

type walker struct {
	v Visitor
}

type child struct {
	name string
	node Node
}

// walk returns false when the visitor asked to stop
func (w *walker) walk(n Node, path string) (bool, error) {
	children, err := childrenOf(n, path)
	if err != nil {
		return false, err
	}

	descend, err := w.call(n, w.v.Enter)
	if err != nil {
		return false, err
	}
	if descend {
		for _, c := range children {
			cont, err := w.walk(c.node, path+"/"+c.name)
			if err != nil || !cont {
				return cont, err
			}
		}
	}
	return w.call(n, w.v.Leave)
}

// call runs a visitor callback, converting a panic into a TraversalError
func (w *walker) call(n Node, fn func(Node) bool) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, isErr := r.(error)
			if !isErr {
				cause = fmt.Errorf("panic: %v", r)
			}
			ok, err = false, &TraversalError{Node: n, Cause: cause}
		}
	}()
	return fn(n), nil
}

// childrenOf lists the children of n in field order, checking for nils
func childrenOf(n Node, path string) ([]child, error) {
	var children []child

	switch x := n.(type) {
	case texture.Texture:
		if texture.IsNil(x) {
			return nil, &MalformedError{Path: path, Reason: "nil texture"}
		}
		names := textureChildNames(x)
		for i, c := range texture.Children(x) {
			children = append(children, child{name: names[i], node: c})
		}
	case material.Material:
		if material.IsNil(x) {
			return nil, &MalformedError{Path: path, Reason: "nil material"}
		}
		if mix, ok := x.(*material.Mix); ok {
			children = append(children, child{name: "a", node: mix.A}, child{name: "b", node: mix.B})
		}
		names := materialTextureNames(x)
		for i, c := range material.Textures(x) {
			children = append(children, child{name: names[i], node: c})
		}
	case nil:
		return nil, &MalformedError{Path: path, Reason: "nil node"}
	default:
		return nil, &MalformedError{Path: path, Reason: fmt.Sprintf("unknown node type %T", n)}
	}

	for _, c := range children {
		if isNilNode(c.node) {
			return nil, &MalformedError{Path: path + "/" + c.name, Reason: "nil child"}
		}
	}
	return children, nil
}

func isNilNode(n Node) bool {
	switch x := n.(type) {
	case texture.Texture:
		return texture.IsNil(x)
	case material.Material:
		return material.IsNil(x)
	}
	return n == nil
}

func textureChildNames(t texture.Texture) []string {
	switch t.(type) {
	case *texture.Marble:
		return []string{"a", "b", "c"}
	case *texture.Region:
		return []string{"inside", "outside"}
	}
	return []string{"a", "b"}
}

func materialTextureNames(m material.Material) []string {
	switch m.(type) {
	case *material.Matte:
		return []string{"diffuse", "emission"}
	case *material.Metal:
		return []string{"reflection", "roughness", "emission"}
	case *material.Mirror:
		return []string{"reflection", "emission"}
	case *material.Glass:
		return []string{"reflection", "transmission", "emission"}
	case *material.Plastic:
		return []string{"diffuse", "specular", "roughness", "emission"}
	case *material.Light:
		return []string{"emission"}
	case *material.Mix:
		return []string{"amount"}
	}
	return nil
}

// NodeName returns a short human-readable label for n
func NodeName(n Node) string {
	switch x := n.(type) {
	case texture.Texture:
		if texture.IsNil(x) {
			return "<nil texture>"
		}
		return "texture:" + x.Kind().String()
	case material.Material:
		if material.IsNil(x) {
			return "<nil material>"
		}
		return "material:" + x.Kind().String()
	}
	return fmt.Sprintf("%T", n)
}
