package visit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// ValidationSeverity indicates whether a finding makes the graph unusable
// or is merely suspicious.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // graph cannot be rendered or packed
	SeverityWarning                           // renders, but probably not as intended
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Path     string // node labels from the root, e.g. "mix/matte/checkerboard"
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Path, e.Message)
}

// HasErrors reports whether any finding has error severity
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks every node under root and returns all findings. An empty
// slice means the graph is well formed. Validate never modifies the graph.
func Validate(root Node) []ValidationError {
	v := &validator{}
	err := Walk(root, v)

	var malformed *MalformedError
	var traversal *TraversalError
	switch {
	case errors.As(err, &malformed):
		v.findings = append(v.findings, ValidationError{
			Path:     malformed.Path,
			Message:  malformed.Reason,
			Severity: SeverityError,
		})
	case errors.As(err, &traversal):
		v.findings = append(v.findings, ValidationError{
			Path:     NodeName(traversal.Node),
			Message:  traversal.Cause.Error(),
			Severity: SeverityError,
		})
	}
	return v.findings
}

type validator struct {
	stack    []string
	findings []ValidationError
}

func (v *validator) Enter(n Node) bool {
	v.stack = append(v.stack, label(n))
	v.check(n)
	return true
}

func (v *validator) Leave(n Node) bool {
	v.stack = v.stack[:len(v.stack)-1]
	return true
}

func (v *validator) add(severity ValidationSeverity, format string, args ...any) {
	v.findings = append(v.findings, ValidationError{
		Path:     strings.Join(v.stack, "/"),
		Message:  fmt.Sprintf(format, args...),
		Severity: severity,
	})
}

func label(n Node) string {
	switch x := n.(type) {
	case texture.Texture:
		return x.Kind().String()
	case material.Material:
		return x.Kind().String()
	}
	return fmt.Sprintf("%T", n)
}

func (v *validator) check(n Node) {
	switch x := n.(type) {
	case *texture.Constant:
		if !x.Color.IsFinite() {
			v.add(SeverityError, "color %v is not finite", x.Color)
		} else if x.Color.R < 0 || x.Color.G < 0 || x.Color.B < 0 {
			v.add(SeverityWarning, "color %v has negative channels", x.Color)
		}
	case *texture.Blend:
		w := x.Weights
		if w.R < 0 || w.G < 0 || w.B < 0 || w.R > 1 || w.G > 1 || w.B > 1 {
			v.add(SeverityWarning, "blend weights %v outside [0, 1] extrapolate", w)
		}
	case *texture.Checkerboard:
		if x.Transform.ScaleU == 0 || x.Transform.ScaleV == 0 {
			v.add(SeverityWarning, "zero scale collapses the checkerboard to a single cell")
		}
	case *texture.PolkaDot:
		if x.DotRadius > 0.5 {
			v.add(SeverityWarning, "dot radius %v exceeds half a cell; dots overlap", x.DotRadius)
		}
		if x.CellResolution == 0 {
			v.add(SeverityWarning, "zero cell resolution produces a single dot")
		}
	case *texture.SimplexFBM:
		if x.Gain > 1 {
			v.add(SeverityWarning, "gain %v amplifies high octaves", x.Gain)
		}
	case *texture.Function:
		v.add(SeverityWarning, "function texture %q cannot be packed for the GPU", x.Name)
	case *texture.Region:
		v.add(SeverityWarning, "region texture cannot be packed for the GPU")

	case *material.Matte:
		if !core.IsFinite(x.Roughness) || x.Roughness < 0 || x.Roughness > 90 {
			v.add(SeverityError, "roughness %v is not an angle in [0, 90]", x.Roughness)
		}
		v.checkReflectance("diffuse", x.Diffuse)
	case *material.Metal:
		v.checkReflectance("reflection", x.Reflection)
		if c, ok := x.Roughness.(*texture.Constant); ok {
			if r := c.Color.Average(); r <= 0 || r > 1 {
				v.add(SeverityWarning, "roughness %v is outside (0, 1] and will be clamped", r)
			}
		}
	case *material.Mirror:
		v.checkReflectance("reflection", x.Reflection)
	case *material.Glass:
		if !core.IsFinite(x.Eta) || x.Eta <= 0 {
			v.add(SeverityError, "eta %v must be a finite positive number", x.Eta)
		} else if x.Eta < 1 {
			v.add(SeverityWarning, "eta %v is below 1, denser outside than inside", x.Eta)
		}
		v.checkReflectance("reflection", x.Reflection)
		v.checkReflectance("transmission", x.Transmission)
	case *material.Plastic:
		v.checkReflectance("diffuse", x.Diffuse)
		v.checkReflectance("specular", x.Specular)
	case *material.Mix:
		if c, ok := x.Amount.(*texture.Constant); ok {
			if a := c.Color.Average(); a < 0 || a > 1 {
				v.add(SeverityWarning, "mix amount %v is outside [0, 1] and will be clamped", a)
			}
		}
	}
}

// checkReflectance flags constant reflectances that would create energy
// before the material clamps them
func (v *validator) checkReflectance(param string, t texture.Texture) {
	c, ok := t.(*texture.Constant)
	if !ok {
		return
	}
	if c.Color.MaxComponent() > 1 {
		v.add(SeverityWarning, "%s %v exceeds 1 and will be clamped", param, c.Color)
	}
}
