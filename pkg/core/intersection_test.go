package core

import (
	"math"
	"testing"
)

func TestFrame_Orthonormal(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0, -1, 0),
		NewVec3(1, 2, 3).Normalize(),
		NewVec3(-0.3, 0.1, -0.9).Normalize(),
	}

	const tolerance = 1e-9
	for _, n := range normals {
		f := NewFrame(n)
		if math.Abs(f.S.Length()-1) > tolerance || math.Abs(f.T.Length()-1) > tolerance {
			t.Errorf("frame axes for %v are not unit length: %v", n, f)
		}
		if math.Abs(f.S.Dot(f.T)) > tolerance || math.Abs(f.S.Dot(f.N)) > tolerance || math.Abs(f.T.Dot(f.N)) > tolerance {
			t.Errorf("frame axes for %v are not orthogonal: %v", n, f)
		}
		if !f.N.Equals(n) {
			t.Errorf("frame normal %v does not match input %v", f.N, n)
		}
	}
}

func TestFrame_RoundTrip(t *testing.T) {
	f := NewFrame(NewVec3(0.2, 0.9, -0.4).Normalize())
	v := NewVec3(0.3, -0.5, 0.8)
	back := f.FromLocal(f.ToLocal(v))
	if !back.Equals(v) {
		t.Errorf("expected %v after round trip, got %v", v, back)
	}
	if local := f.ToLocal(f.N); !local.Equals(NewVec3(0, 0, 1)) {
		t.Errorf("normal should map to +Z, got %v", local)
	}
}

func TestIntersection_WoAndFrontFace(t *testing.T) {
	it := Intersection{
		GeometricNormal: NewVec3(0, 0, 1),
		ShadingNormal:   NewVec3(0, 0, 1),
		Ray:             NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -2)),
	}
	if !it.Wo().Equals(NewVec3(0, 0, 1)) {
		t.Errorf("expected Wo (0,0,1), got %v", it.Wo())
	}
	if !it.FrontFace() {
		t.Error("ray travelling against the normal should hit the front face")
	}

	it.Ray.Direction = NewVec3(0, 0, 1)
	if it.FrontFace() {
		t.Error("ray travelling along the normal should hit the back face")
	}
}

func TestIntersection_FrameFallsBackToGeometricNormal(t *testing.T) {
	it := Intersection{GeometricNormal: NewVec3(0, 1, 0)}
	if !it.Frame().N.Equals(NewVec3(0, 1, 0)) {
		t.Errorf("expected geometric normal fallback, got %v", it.Frame().N)
	}
}
