package preview

import (
	"math"

	"github.com/df07/go-progressive-shading/pkg/bxdf"
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/material"
)

// rayEpsilon offsets continuation rays from the surface they leave
const rayEpsilon = 1e-4

// Scene is a single sphere lit by a sky gradient and a directional sun.
// It is read-only during rendering and shared by every worker.
type Scene struct {
	Material     material.Material
	Center       core.Vec3
	Radius       float64
	SkyTop       core.Color
	SkyBottom    core.Color
	SunDirection core.Vec3 // unit vector pointing towards the sun
	SunColor     core.Color
	MaxDepth     int
}

// sky returns the background radiance seen along direction
func (s *Scene) sky(direction core.Vec3) core.Color {
	t := 0.5 * (direction.Normalize().Y + 1.0) // Map Y from [-1,1] to [0,1]
	return s.SkyBottom.Lerp(s.SkyTop, t)
}

// hit intersects ray with the sphere and fills the shading record
func (s *Scene) hit(ray core.Ray, tMin, tMax float64) (core.Intersection, bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return core.Intersection{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return core.Intersection{}, false
		}
	}

	point := ray.At(root)
	local := point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	normal := local.Normalize()

	return core.Intersection{
		ObjectPoint:     local,
		WorldPoint:      point,
		ShadingNormal:   normal,
		GeometricNormal: normal,
		UV:              sphereUV(normal),
		Ray:             ray,
		ShapeID:         1,
	}, true
}

// sphereUV maps a unit normal to longitude/latitude coordinates with v = 0
// at the south pole
func sphereUV(n core.Vec3) core.Vec2 {
	phi := math.Atan2(-n.Z, n.X) + math.Pi
	theta := math.Acos(math.Max(-1, math.Min(1, -n.Y)))
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// Radiance estimates the light arriving along ray with a unidirectional path
// tracer. The sun is sampled explicitly at every scattering vertex; the sky is
// reached by BSDF sampling. A convex sphere cannot shadow itself, so the sun
// is visible whenever it lies above the geometric surface.
func (s *Scene) Radiance(ray core.Ray, sampler core.Sampler) core.Color {
	throughput := core.White
	radiance := core.Black

	for depth := 0; depth < s.MaxDepth; depth++ {
		it, ok := s.hit(ray, rayEpsilon, math.Inf(1))
		if !ok {
			radiance = radiance.Add(throughput.Multiply(s.sky(ray.Direction)))
			break
		}

		radiance = radiance.Add(throughput.Multiply(s.Material.Emittance(it)))

		bsdf, ok := s.Material.ComputeBSDF(it, bxdf.Radiance, true)
		if !ok {
			break
		}
		wo := it.Wo()
		n := bsdf.Frame().N

		if !s.SunColor.IsBlack() && s.SunDirection.Dot(it.GeometricNormal) > 0 {
			f := bsdf.Evaluate(wo, s.SunDirection)
			if !f.IsBlack() {
				radiance = radiance.Add(throughput.Multiply(f).Multiply(s.SunColor).Scale(s.SunDirection.AbsDot(n)))
			}
		}

		sample, ok := bsdf.Sample(wo, sampler.Get1D(), sampler.Get2D(), bxdf.Radiance)
		if !ok || sample.PDF <= 0 {
			break
		}
		throughput = throughput.Multiply(sample.F).Scale(sample.Wi.AbsDot(n) / sample.PDF)
		if throughput.IsBlack() {
			break
		}
		ray = core.NewRay(it.WorldPoint, sample.Wi)
	}

	return radiance
}
