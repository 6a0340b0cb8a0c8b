package gpu

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/noise"
)

// hit is the float32 view of an intersection a shader invocation receives
type hit struct {
	object mgl32.Vec3
	normal mgl32.Vec3
	wo     mgl32.Vec3
	uv     mgl32.Vec2
}

func newHit(it core.Intersection) hit {
	return hit{
		object: vec3(it.ObjectPoint),
		normal: normalize(vec3(it.ShadingNormal)),
		wo:     normalize(vec3(it.Wo())),
		uv:     mgl32.Vec2{float32(it.UV.X), float32(it.UV.Y)},
	}
}

// EvaluateTexture evaluates the texture record at index using only the
// packed buffer, in float32 arithmetic. Records are processed in ascending
// index order with every child result stored before its parent reads it,
// the same schedule the WGSL evaluator uses. Noise kinds call into the
// shared noise field.
func EvaluateTexture(buf *Buffer, index uint32, it core.Intersection) (core.Color, error) {
	root, err := buf.Record(index)
	if err != nil {
		return core.Black, err
	}
	if !root.Kind.IsTexture() {
		return core.Black, fmt.Errorf("%w: record %d is a %s, not a texture", ErrCorruptBuffer, index, root.Kind)
	}

	// Mark the subtree below index. Children always precede parents, so a
	// single descending pass reaches every descendant.
	needed := make([]bool, index+1)
	needed[index] = true
	records := make([]Record, index+1)
	for i := int(index); i >= 0; i-- {
		if !needed[i] {
			continue
		}
		r, err := buf.Record(uint32(i))
		if err != nil {
			return core.Black, err
		}
		if !r.Kind.IsTexture() {
			return core.Black, fmt.Errorf("%w: texture record refers to %s record %d", ErrCorruptBuffer, r.Kind, i)
		}
		if want := childCount(r.Kind); len(r.Children) != want {
			return core.Black, fmt.Errorf("%w: %s record %d has %d children, expected %d", ErrCorruptBuffer, r.Kind, i, len(r.Children), want)
		}
		for _, c := range r.Children {
			if c >= uint32(i) {
				return core.Black, fmt.Errorf("%w: record %d refers forward to %d", ErrCorruptBuffer, i, c)
			}
			needed[c] = true
		}
		records[i] = r
	}

	h := newHit(it)
	results := make([]mgl32.Vec3, index+1)
	for i := range records {
		if !needed[i] {
			continue
		}
		c, err := evalRecord(buf, records[i], results, h)
		if err != nil {
			return core.Black, fmt.Errorf("gpu: record %d: %w", i, err)
		}
		results[i] = c
	}

	out := results[index]
	return core.NewColor(float64(out[0]), float64(out[1]), float64(out[2])), nil
}

func evalRecord(buf *Buffer, r Record, results []mgl32.Vec3, h hit) (mgl32.Vec3, error) {
	child := func(i int) mgl32.Vec3 { return results[r.Child(i)] }
	f := r.Float

	switch r.Kind {
	case KindConstant:
		return mgl32.Vec3{f(ParamConstantR), f(ParamConstantG), f(ParamConstantB)}, nil

	case KindBlend:
		w := mgl32.Vec3{f(ParamBlendWeightR), f(ParamBlendWeightG), f(ParamBlendWeightB)}
		a, b := child(0), child(1)
		return a.Add(mulComponents(b.Sub(a), w)), nil

	case KindCheckerboard:
		uv := transformUV(h.uv, f(ParamCheckerAngle), f(ParamCheckerScaleU), f(ParamCheckerScaleV))
		if (fract(uv[0]) > 0.5) != (fract(uv[1]) > 0.5) {
			return child(0), nil
		}
		return child(1), nil

	case KindBullseye:
		origin := mgl32.Vec3{f(ParamBullseyeOriginX), f(ParamBullseyeOriginY), f(ParamBullseyeOriginZ)}
		if fract(h.object.Sub(origin).Len()*f(ParamBullseyeScale)) < 0.5 {
			return child(0), nil
		}
		return child(1), nil

	case KindPolkaDot:
		res := f(ParamPolkaResolution)
		uv := transformUV(h.uv, f(ParamPolkaAngle), res, res)
		d := mgl32.Vec2{fract(uv[0]) - 0.5, fract(uv[1]) - 0.5}
		radius := f(ParamPolkaRadius)
		if d.LenSqr() < radius*radius {
			return child(0), nil
		}
		return child(1), nil

	case KindMarble:
		q := h.object.Mul(math.Pi * f(ParamMarbleStripes))
		turb := noise.Turbulence(float64(q[0]), float64(q[1]), float64(q[2]), int(r.Uint(ParamMarbleOctaves)))
		x := float64(q[0]) + float64(f(ParamMarbleScale))*turb
		band := float32(2 * math.Abs(math.Sin(x)))
		if band < 1 {
			return lerp(child(0), child(1), band), nil
		}
		return lerp(child(1), child(2), band-1), nil

	case KindSimplexFBM:
		p := h.object.Mul(f(ParamFBMFrequency))
		n := noise.FBM(float64(p[0]), float64(p[1]), float64(p[2]), float64(f(ParamFBMGain)), int(r.Uint(ParamFBMOctaves)))
		c := mgl32.Vec3{f(ParamFBMR), f(ParamFBMG), f(ParamFBMB)}
		return c.Mul(float32(n*0.5 + 0.5)), nil

	case KindImage:
		return sampleImage(buf, r, h.uv)

	case KindDotProduct:
		d := float32(math.Abs(float64(h.wo.Dot(h.normal))))
		return mgl32.Vec3{d, d, d}, nil

	case KindSurfaceNormal:
		n := h.normal
		return mgl32.Vec3{(n[0] + 1) * 0.5, (n[1] + 1) * 0.5, (n[2] + 1) * 0.5}, nil

	case KindUV:
		return mgl32.Vec3{fract(h.uv[0]), fract(h.uv[1]), 0}, nil
	}
	return mgl32.Vec3{}, fmt.Errorf("%w: cannot evaluate kind %d", ErrCorruptBuffer, uint32(r.Kind))
}

func sampleImage(buf *Buffer, r Record, uv mgl32.Vec2) (mgl32.Vec3, error) {
	offset, w, h, err := imageSpan(r, len(buf.Pixels))
	if err != nil {
		return mgl32.Vec3{}, err
	}
	texel := func(x, y int) mgl32.Vec3 {
		return unpack(buf.Pixels[offset+wrap(y, h)*w+wrap(x, w)])
	}

	st := transformUV(uv, r.Float(ParamImageAngle), r.Float(ParamImageScaleU), r.Float(ParamImageScaleV))
	px := st[0] * float32(w)
	py := (1 - st[1]) * float32(h)
	x0f, y0f := floor(px), floor(py)
	fx, fy := px-x0f, py-y0f
	x0, y0 := int(x0f), int(y0f)

	top := lerp(texel(x0, y0), texel(x0+1, y0), fx)
	bottom := lerp(texel(x0, y0+1), texel(x0+1, y0+1), fx)
	return lerp(top, bottom, fy), nil
}

func transformUV(uv mgl32.Vec2, angle, scaleU, scaleV float32) mgl32.Vec2 {
	if angle != 0 {
		uv = mgl32.Rotate2D(mgl32.DegToRad(angle)).Mul2x1(uv)
	}
	return mgl32.Vec2{uv[0] * scaleU, uv[1] * scaleV}
}

func vec3(v core.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.LenSqr() == 0 {
		return v
	}
	return v.Normalize()
}

func unpack(argb uint32) mgl32.Vec3 {
	c := core.UnpackColor(argb)
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

func mulComponents(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

func fract(x float32) float32 {
	return x - floor(x)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
