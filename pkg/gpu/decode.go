package gpu

import (
	"fmt"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/texture"
	"github.com/df07/go-progressive-shading/pkg/visit"
)

// Decode rebuilds the graph rooted at record index. Records referenced more
// than once decode to a single shared node. Parameters come back at float32
// precision and image pixels at 8 bits per channel.
func (b *Buffer) Decode(index uint32) (visit.Node, error) {
	d := decoder{buf: b, done: make(map[uint32]visit.Node)}
	return d.node(index)
}

// DecodeTexture is Decode for a texture record
func (b *Buffer) DecodeTexture(index uint32) (texture.Texture, error) {
	n, err := b.Decode(index)
	if err != nil {
		return nil, err
	}
	t, ok := n.(texture.Texture)
	if !ok {
		return nil, fmt.Errorf("%w: record %d is not a texture", ErrCorruptBuffer, index)
	}
	return t, nil
}

// DecodeMaterial is Decode for a material record
func (b *Buffer) DecodeMaterial(index uint32) (material.Material, error) {
	n, err := b.Decode(index)
	if err != nil {
		return nil, err
	}
	m, ok := n.(material.Material)
	if !ok {
		return nil, fmt.Errorf("%w: record %d is not a material", ErrCorruptBuffer, index)
	}
	return m, nil
}

type decoder struct {
	buf  *Buffer
	done map[uint32]visit.Node
}

func (d *decoder) node(index uint32) (visit.Node, error) {
	if n, ok := d.done[index]; ok {
		return n, nil
	}
	r, err := d.buf.Record(index)
	if err != nil {
		return nil, err
	}

	children := make([]visit.Node, len(r.Children))
	for i, c := range r.Children {
		if c >= index {
			return nil, fmt.Errorf("%w: record %d refers forward to %d", ErrCorruptBuffer, index, c)
		}
		if children[i], err = d.node(c); err != nil {
			return nil, err
		}
	}

	n, err := d.build(r, children)
	if err != nil {
		return nil, fmt.Errorf("gpu: decode record %d (%s): %w", index, r.Kind, err)
	}
	d.done[index] = n
	return n, nil
}

func (d *decoder) build(r Record, children []visit.Node) (visit.Node, error) {
	want := childCount(r.Kind)
	if want < 0 {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrCorruptBuffer, uint32(r.Kind))
	}
	if len(children) != want {
		return nil, fmt.Errorf("%w: expected %d children, got %d", ErrCorruptBuffer, want, len(children))
	}

	tex := make([]texture.Texture, len(children))
	for i, c := range children {
		tex[i], _ = c.(texture.Texture)
	}
	f := func(i int) float64 { return float64(r.Float(i)) }
	color := func(i int) core.Color { return core.NewColor(f(i), f(i+1), f(i+2)) }

	switch r.Kind {
	case KindConstant:
		return texture.NewConstant(color(ParamConstantR)), nil
	case KindBlend:
		return texture.NewBlend(tex[0], tex[1], color(ParamBlendWeightR))
	case KindCheckerboard:
		return texture.NewCheckerboard(tex[0], tex[1], f(ParamCheckerAngle), f(ParamCheckerScaleU), f(ParamCheckerScaleV))
	case KindBullseye:
		origin := core.NewVec3(f(ParamBullseyeOriginX), f(ParamBullseyeOriginY), f(ParamBullseyeOriginZ))
		return texture.NewBullseye(tex[0], tex[1], origin, f(ParamBullseyeScale))
	case KindPolkaDot:
		return texture.NewPolkaDot(tex[0], tex[1], f(ParamPolkaAngle), f(ParamPolkaResolution), f(ParamPolkaRadius))
	case KindMarble:
		return texture.NewMarble(tex[0], tex[1], tex[2], f(ParamMarbleScale), f(ParamMarbleStripes), int(r.Uint(ParamMarbleOctaves)))
	case KindSimplexFBM:
		return texture.NewSimplexFBM(color(ParamFBMR), f(ParamFBMFrequency), f(ParamFBMGain), int(r.Uint(ParamFBMOctaves)))
	case KindImage:
		return d.image(r)
	case KindDotProduct:
		return texture.NewDotProduct(), nil
	case KindSurfaceNormal:
		return texture.NewSurfaceNormal(), nil
	case KindUV:
		return texture.NewUV(), nil

	case KindMatte:
		return material.NewMatteFromConfig(material.MatteConfig{
			Diffuse: tex[0], Emission: tex[1], Roughness: f(ParamMatteRoughness),
		})
	case KindMetal:
		return material.NewMetalFromConfig(material.MetalConfig{
			Reflection: tex[0], Roughness: tex[1], Emission: tex[2],
		})
	case KindMirror:
		return material.NewMirrorFromConfig(material.MirrorConfig{
			Reflection: tex[0], Emission: tex[1],
		})
	case KindGlass:
		return material.NewGlassFromConfig(material.GlassConfig{
			Reflection: tex[0], Transmission: tex[1], Emission: tex[2], Eta: f(ParamGlassEta),
		})
	case KindPlastic:
		return material.NewPlasticFromConfig(material.PlasticConfig{
			Diffuse: tex[0], Specular: tex[1], Roughness: tex[2], Emission: tex[3],
		})
	case KindLight:
		return material.NewTexturedLight(tex[0])
	case KindMix:
		a, _ := children[0].(material.Material)
		b, _ := children[1].(material.Material)
		return material.NewMix(a, b, tex[2])
	}
	return nil, fmt.Errorf("%w: unknown kind %d", ErrCorruptBuffer, uint32(r.Kind))
}

func (d *decoder) image(r Record) (visit.Node, error) {
	offset, w, h, err := imageSpan(r, len(d.buf.Pixels))
	if err != nil {
		return nil, err
	}
	pixels := make([]core.Color, w*h)
	for i := range pixels {
		pixels[i] = core.UnpackColor(d.buf.Pixels[offset+i])
	}
	tr := texture.UVTransform{
		Angle:  float64(r.Float(ParamImageAngle)),
		ScaleU: float64(r.Float(ParamImageScaleU)),
		ScaleV: float64(r.Float(ParamImageScaleV)),
	}
	return texture.NewTransformedImage(w, h, pixels, tr)
}

// imageSpan returns the pixel pool offset and size of an image record,
// checking that the whole image lies inside a pool of poolLen pixels
func imageSpan(r Record, poolLen int) (offset, w, h int, err error) {
	off := uint64(r.Uint(ParamImagePixels))
	w64, h64 := uint64(r.Uint(ParamImageWidth)), uint64(r.Uint(ParamImageHeight))
	if w64 == 0 || h64 == 0 {
		return 0, 0, 0, fmt.Errorf("%w: image size %dx%d", ErrCorruptBuffer, w64, h64)
	}
	// uint32 operands, so the product fits in uint64
	if off > uint64(poolLen) || w64*h64 > uint64(poolLen)-off {
		return 0, 0, 0, fmt.Errorf("%w: %dx%d image at pixel %d outside pool of %d", ErrCorruptBuffer, w64, h64, off, poolLen)
	}
	return int(off), int(w64), int(h64), nil
}

// childCount returns the number of children records of kind k carry, or -1
// for an unknown kind
func childCount(k KindID) int {
	switch k {
	case KindConstant, KindSimplexFBM, KindImage, KindDotProduct, KindSurfaceNormal, KindUV:
		return 0
	case KindBlend, KindCheckerboard, KindBullseye, KindPolkaDot:
		return 2
	case KindMarble:
		return 3
	case KindMatte, KindMirror:
		return 2
	case KindMetal, KindGlass, KindMix:
		return 3
	case KindPlastic:
		return 4
	case KindLight:
		return 1
	}
	return -1
}
