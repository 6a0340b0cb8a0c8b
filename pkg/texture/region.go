package texture

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// Region selects between two textures by the sign of a solid's signed
// distance field at the object-space point. Points on or inside the solid
// get Inside. Regions are host-only and cannot be packed for the GPU.
type Region struct {
	Shape   sdf.SDF3
	Inside  Texture
	Outside Texture
}

// NewRegion creates a region texture from any sdfx solid
func NewRegion(shape sdf.SDF3, inside, outside Texture) (*Region, error) {
	if shape == nil {
		return nil, invalidParam(KindRegion, "shape", "must not be nil")
	}
	if err := requireChildren(KindRegion, []string{"inside", "outside"}, inside, outside); err != nil {
		return nil, err
	}
	return &Region{Shape: shape, Inside: inside, Outside: outside}, nil
}

// NewSphereRegion masks a sphere of the given radius around center
func NewSphereRegion(center core.Vec3, radius float64, inside, outside Texture) (*Region, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, invalidParam(KindRegion, "radius", "%v", err)
	}
	return NewRegion(translate(s, center), inside, outside)
}

// NewBoxRegion masks an axis-aligned box of the given size centered on center
func NewBoxRegion(center, size core.Vec3, inside, outside Texture) (*Region, error) {
	s, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, 0)
	if err != nil {
		return nil, invalidParam(KindRegion, "size", "%v", err)
	}
	return NewRegion(translate(s, center), inside, outside)
}

func translate(s sdf.SDF3, center core.Vec3) sdf.SDF3 {
	if center.IsZero() {
		return s
	}
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: center.X, Y: center.Y, Z: center.Z}))
}

// Kind implements Texture
func (r *Region) Kind() Kind { return KindRegion }

// Evaluate returns Inside where the signed distance is <= 0
func (r *Region) Evaluate(it core.Intersection) core.Color {
	p := it.ObjectPoint
	if r.Shape.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z}) <= 0 {
		return r.Inside.Evaluate(it)
	}
	return r.Outside.Evaluate(it)
}

func (r *Region) isTexture() {}

func (r *Region) String() string {
	bb := r.Shape.BoundingBox()
	return fmt.Sprintf("region[%v..%v]", bb.Min, bb.Max)
}
