package core

import "math"

// Intersection describes where a ray met a surface. It is produced by the
// geometry layer and consumed read-only by textures and materials.
type Intersection struct {
	ObjectPoint     Vec3 // Hit point in the shape's object space
	WorldPoint      Vec3 // Hit point in world space
	ShadingNormal   Vec3 // Interpolated normal used for shading
	GeometricNormal Vec3 // True surface normal of the primitive
	UV              Vec2 // Texture coordinates, wrapping outside [0,1)
	Ray             Ray  // The incoming ray
	ShapeID         int  // Identity of the owning primitive
}

// Wo returns the unit direction pointing back towards the ray origin
func (it Intersection) Wo() Vec3 {
	return it.Ray.Direction.Negate().Normalize()
}

// FrontFace reports whether the ray arrived on the side the geometric normal points to
func (it Intersection) FrontFace() bool {
	return it.Ray.Direction.Dot(it.GeometricNormal) < 0
}

// Frame returns the orthonormal shading frame around the shading normal
func (it Intersection) Frame() Frame {
	n := it.ShadingNormal
	if n.IsZero() {
		n = it.GeometricNormal
	}
	return NewFrame(n)
}

// Frame is an orthonormal basis where N is the local +Z axis
type Frame struct {
	S, T, N Vec3
}

// NewFrame builds a frame around the normal n
func NewFrame(n Vec3) Frame {
	n = n.Normalize()
	if n.IsZero() {
		n = NewVec3(0, 0, 1)
	}

	// Find a vector perpendicular to normal
	var helper Vec3
	if math.Abs(n.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}
	s := helper.Cross(n).Normalize()
	t := n.Cross(s)
	return Frame{S: s, T: t, N: n}
}

// ToLocal expresses a world-space direction in frame coordinates
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(f.S), v.Dot(f.T), v.Dot(f.N)}
}

// FromLocal converts frame coordinates back to world space
func (f Frame) FromLocal(v Vec3) Vec3 {
	return f.S.Multiply(v.X).Add(f.T.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}

// Local-frame trigonometry. Directions are unit vectors where Z is the normal.

// CosTheta returns cos of the angle between w and the normal
func CosTheta(w Vec3) float64 { return w.Z }

// AbsCosTheta returns |cos θ|
func AbsCosTheta(w Vec3) float64 { return math.Abs(w.Z) }

// Sin2Theta returns sin² θ
func Sin2Theta(w Vec3) float64 { return math.Max(0, 1-w.Z*w.Z) }

// SinTheta returns sin θ
func SinTheta(w Vec3) float64 { return math.Sqrt(Sin2Theta(w)) }

// TanTheta returns tan θ
func TanTheta(w Vec3) float64 { return SinTheta(w) / CosTheta(w) }

// CosPhi returns cos φ, 1 when w is aligned with the normal
func CosPhi(w Vec3) float64 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 1
	}
	return math.Max(-1, math.Min(1, w.X/sinTheta))
}

// SinPhi returns sin φ, 0 when w is aligned with the normal
func SinPhi(w Vec3) float64 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 0
	}
	return math.Max(-1, math.Min(1, w.Y/sinTheta))
}

// SameHemisphere reports whether both local directions are on the same side of the surface
func SameHemisphere(a, b Vec3) bool {
	return a.Z*b.Z > 0
}
