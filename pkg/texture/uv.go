package texture

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// UVTransform rotates texture coordinates about the origin, then scales them.
type UVTransform struct {
	Angle  float64 // counter-clockwise, in degrees
	ScaleU float64
	ScaleV float64
}

// IdentityUV leaves coordinates unchanged
func IdentityUV() UVTransform {
	return UVTransform{Angle: 0, ScaleU: 1, ScaleV: 1}
}

// Apply transforms uv
func (t UVTransform) Apply(uv core.Vec2) core.Vec2 {
	p := v2.Vec{X: uv.X, Y: uv.Y}
	if t.Angle != 0 {
		p = sdf.Rotate2d(t.Angle * math.Pi / 180).MulPosition(p)
	}
	return core.NewVec2(p.X*t.ScaleU, p.Y*t.ScaleV)
}

func (t UVTransform) equals(other UVTransform) bool {
	return floatEquals(t.Angle, other.Angle) &&
		floatEquals(t.ScaleU, other.ScaleU) &&
		floatEquals(t.ScaleV, other.ScaleV)
}

func (t UVTransform) validate(kind Kind) error {
	if !core.IsFinite(t.Angle) {
		return invalidParam(kind, "angle", "must be finite, got %v", t.Angle)
	}
	if !core.IsFinite(t.ScaleU) || !core.IsFinite(t.ScaleV) {
		return invalidParam(kind, "scale", "must be finite, got (%v, %v)", t.ScaleU, t.ScaleV)
	}
	return nil
}

func floatEquals(a, b float64) bool {
	return core.ApproxEqual(a, b)
}
