package gpu

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/texture"
	"github.com/df07/go-progressive-shading/pkg/visit"
)

// ErrNotPackable is returned for nodes that only exist on the host, such as
// Function and Region textures
var ErrNotPackable = errors.New("gpu: node cannot be packed")

// Packer accumulates records for any number of roots. Nodes are
// deduplicated by identity, so a subtree shared between roots or within
// one root is packed once. A Packer is not safe for concurrent use.
type Packer struct {
	nodes  []uint32
	pixels []uint32
	roots  []uint32
	index  map[visit.Node]uint32
}

// NewPacker creates an empty packer
func NewPacker() *Packer {
	return &Packer{index: make(map[visit.Node]uint32)}
}

// PackTexture packs t and its descendants and returns the index of t's record
func (p *Packer) PackTexture(t texture.Texture) (uint32, error) {
	return p.pack(t)
}

// PackMaterial packs m, its textures and nested materials and returns the
// index of m's record
func (p *Packer) PackMaterial(m material.Material) (uint32, error) {
	return p.pack(m)
}

// Buffer returns a copy of everything packed so far
func (p *Packer) Buffer() *Buffer {
	return &Buffer{
		Nodes:  append([]uint32(nil), p.nodes...),
		Pixels: append([]uint32(nil), p.pixels...),
		Roots:  append([]uint32(nil), p.roots...),
	}
}

// pack emits records in post-order. On failure the packer is rolled back
// to its state before the call.
func (p *Packer) pack(root visit.Node) (uint32, error) {
	nodeMark, pixelMark := len(p.nodes), len(p.pixels)
	var added []visit.Node
	var packErr error

	err := visit.Walk(root, visit.Funcs{
		EnterFn: func(n visit.Node) bool {
			if _, done := p.index[n]; done {
				return false
			}
			if err := checkPackable(n); err != nil {
				packErr = err
				return false
			}
			return true
		},
		LeaveFn: func(n visit.Node) bool {
			if packErr != nil {
				return false
			}
			if _, done := p.index[n]; done {
				return true
			}
			p.index[n] = p.emit(n)
			added = append(added, n)
			return true
		},
	})
	if err == nil {
		err = packErr
	}
	if err != nil {
		p.nodes = p.nodes[:nodeMark]
		p.pixels = p.pixels[:pixelMark]
		for _, n := range added {
			delete(p.index, n)
		}
		return NoChild, err
	}

	idx := p.index[root]
	p.roots = append(p.roots, idx)
	core.Logger().Debug("packed graph",
		"root", visit.NodeName(root),
		"index", idx,
		"newRecords", len(added),
		"records", len(p.nodes)/BlockWords,
		"pixels", len(p.pixels))
	return idx, nil
}

func checkPackable(n visit.Node) error {
	switch n.(type) {
	case *texture.Function, *texture.Region:
		return fmt.Errorf("%w: %s", ErrNotPackable, visit.NodeName(n))
	}
	return nil
}

type block [BlockWords]uint32

func (b *block) setFloat(i int, v float64) {
	b[OffsetParams+i] = math.Float32bits(float32(v))
}

func (b *block) setUint(i int, v uint32) {
	b[OffsetParams+i] = v
}

func (b *block) setColor(i int, c core.Color) {
	b.setFloat(i, c.R)
	b.setFloat(i+1, c.G)
	b.setFloat(i+2, c.B)
}

func (b *block) setVec3(i int, v core.Vec3) {
	b.setColor(i, core.ColorFromVec3(v))
}

// emit appends the record for n. Every child of n is already packed.
func (p *Packer) emit(n visit.Node) uint32 {
	var b block
	var children []visit.Node

	switch x := n.(type) {
	case *texture.Constant:
		b[OffsetKind] = uint32(KindConstant)
		b.setColor(ParamConstantR, x.Color)
	case *texture.Blend:
		b[OffsetKind] = uint32(KindBlend)
		b.setColor(ParamBlendWeightR, x.Weights)
	case *texture.Checkerboard:
		b[OffsetKind] = uint32(KindCheckerboard)
		b.setFloat(ParamCheckerAngle, x.Transform.Angle)
		b.setFloat(ParamCheckerScaleU, x.Transform.ScaleU)
		b.setFloat(ParamCheckerScaleV, x.Transform.ScaleV)
	case *texture.Bullseye:
		b[OffsetKind] = uint32(KindBullseye)
		b.setVec3(ParamBullseyeOriginX, x.Origin)
		b.setFloat(ParamBullseyeScale, x.Scale)
	case *texture.PolkaDot:
		b[OffsetKind] = uint32(KindPolkaDot)
		b.setFloat(ParamPolkaAngle, x.Angle)
		b.setFloat(ParamPolkaResolution, x.CellResolution)
		b.setFloat(ParamPolkaRadius, x.DotRadius)
	case *texture.Marble:
		b[OffsetKind] = uint32(KindMarble)
		b.setFloat(ParamMarbleScale, x.Scale)
		b.setFloat(ParamMarbleStripes, x.Stripes)
		b.setUint(ParamMarbleOctaves, uint32(x.Octaves))
	case *texture.SimplexFBM:
		b[OffsetKind] = uint32(KindSimplexFBM)
		b.setColor(ParamFBMR, x.Color)
		b.setFloat(ParamFBMFrequency, x.Frequency)
		b.setFloat(ParamFBMGain, x.Gain)
		b.setUint(ParamFBMOctaves, uint32(x.Octaves))
	case *texture.Image:
		b[OffsetKind] = uint32(KindImage)
		b.setUint(ParamImagePixels, uint32(len(p.pixels)))
		b.setUint(ParamImageWidth, uint32(x.Width))
		b.setUint(ParamImageHeight, uint32(x.Height))
		b.setFloat(ParamImageAngle, x.Transform.Angle)
		b.setFloat(ParamImageScaleU, x.Transform.ScaleU)
		b.setFloat(ParamImageScaleV, x.Transform.ScaleV)
		for _, c := range x.Pixels() {
			p.pixels = append(p.pixels, c.Pack())
		}
	case *texture.DotProduct:
		b[OffsetKind] = uint32(KindDotProduct)
	case *texture.SurfaceNormal:
		b[OffsetKind] = uint32(KindSurfaceNormal)
	case *texture.UV:
		b[OffsetKind] = uint32(KindUV)

	case *material.Matte:
		b[OffsetKind] = uint32(KindMatte)
		b.setFloat(ParamMatteRoughness, x.Roughness)
	case *material.Metal:
		b[OffsetKind] = uint32(KindMetal)
	case *material.Mirror:
		b[OffsetKind] = uint32(KindMirror)
	case *material.Glass:
		b[OffsetKind] = uint32(KindGlass)
		b.setFloat(ParamGlassEta, x.Eta)
	case *material.Plastic:
		b[OffsetKind] = uint32(KindPlastic)
	case *material.Light:
		b[OffsetKind] = uint32(KindLight)
	case *material.Mix:
		b[OffsetKind] = uint32(KindMix)
		children = append(children, x.A, x.B)
	}

	switch x := n.(type) {
	case texture.Texture:
		for _, c := range texture.Children(x) {
			children = append(children, c)
		}
	case material.Material:
		for _, c := range material.Textures(x) {
			children = append(children, c)
		}
	}

	b[OffsetChildCount] = uint32(len(children))
	for i := 0; i < MaxChildren; i++ {
		b[OffsetChild0+i] = NoChild
		if i < len(children) {
			b[OffsetChild0+i] = p.index[children[i]]
		}
	}

	idx := uint32(len(p.nodes) / BlockWords)
	p.nodes = append(p.nodes, b[:]...)
	return idx
}
