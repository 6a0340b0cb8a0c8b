package visit

import (
	"fmt"

	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// Clone deep-copies the graph under root. Subtrees shared within the
// original stay shared in the copy. Function and Region textures hold
// opaque host values and are reused rather than copied.
func Clone(root Node) (Node, error) {
	c := cloner{done: make(map[Node]Node)}
	err := Walk(root, &c)
	if err != nil {
		return nil, err
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.done[root], nil
}

// CloneTexture is Clone for a texture root
func CloneTexture(t texture.Texture) (texture.Texture, error) {
	n, err := Clone(t)
	if err != nil {
		return nil, err
	}
	return n.(texture.Texture), nil
}

// CloneMaterial is Clone for a material root
func CloneMaterial(m material.Material) (material.Material, error) {
	n, err := Clone(m)
	if err != nil {
		return nil, err
	}
	return n.(material.Material), nil
}

// cloner rebuilds nodes in post-order so every child copy exists before its parent
type cloner struct {
	done map[Node]Node
	err  error
}

func (c *cloner) Enter(n Node) bool {
	_, seen := c.done[n]
	return !seen
}

func (c *cloner) Leave(n Node) bool {
	if _, seen := c.done[n]; seen {
		return true
	}
	copied, err := c.copyNode(n)
	if err != nil {
		c.err = err
		return false
	}
	c.done[n] = copied
	return true
}

func (c *cloner) tex(t texture.Texture) texture.Texture {
	return c.done[t].(texture.Texture)
}

func (c *cloner) mat(m material.Material) material.Material {
	return c.done[m].(material.Material)
}

func (c *cloner) copyNode(n Node) (Node, error) {
	switch x := n.(type) {
	case *texture.Constant:
		return texture.NewConstant(x.Color), nil
	case *texture.Blend:
		return texture.NewBlend(c.tex(x.A), c.tex(x.B), x.Weights)
	case *texture.Checkerboard:
		return texture.NewCheckerboard(c.tex(x.A), c.tex(x.B), x.Transform.Angle, x.Transform.ScaleU, x.Transform.ScaleV)
	case *texture.Bullseye:
		return texture.NewBullseye(c.tex(x.A), c.tex(x.B), x.Origin, x.Scale)
	case *texture.PolkaDot:
		return texture.NewPolkaDot(c.tex(x.A), c.tex(x.B), x.Angle, x.CellResolution, x.DotRadius)
	case *texture.Marble:
		return texture.NewMarble(c.tex(x.A), c.tex(x.B), c.tex(x.C), x.Scale, x.Stripes, x.Octaves)
	case *texture.SimplexFBM:
		return texture.NewSimplexFBM(x.Color, x.Frequency, x.Gain, x.Octaves)
	case *texture.Image:
		return texture.NewTransformedImage(x.Width, x.Height, x.Pixels(), x.Transform)
	case *texture.DotProduct:
		return texture.NewDotProduct(), nil
	case *texture.SurfaceNormal:
		return texture.NewSurfaceNormal(), nil
	case *texture.UV:
		return texture.NewUV(), nil
	case *texture.Function:
		return x, nil
	case *texture.Region:
		return texture.NewRegion(x.Shape, c.tex(x.Inside), c.tex(x.Outside))

	case *material.Matte:
		return material.NewMatteFromConfig(material.MatteConfig{
			Diffuse: c.tex(x.Diffuse), Emission: c.tex(x.Emission), Roughness: x.Roughness,
		})
	case *material.Metal:
		return material.NewMetalFromConfig(material.MetalConfig{
			Reflection: c.tex(x.Reflection), Roughness: c.tex(x.Roughness), Emission: c.tex(x.Emission),
		})
	case *material.Mirror:
		return material.NewMirrorFromConfig(material.MirrorConfig{
			Reflection: c.tex(x.Reflection), Emission: c.tex(x.Emission),
		})
	case *material.Glass:
		return material.NewGlassFromConfig(material.GlassConfig{
			Reflection: c.tex(x.Reflection), Transmission: c.tex(x.Transmission),
			Emission: c.tex(x.Emission), Eta: x.Eta,
		})
	case *material.Plastic:
		return material.NewPlasticFromConfig(material.PlasticConfig{
			Diffuse: c.tex(x.Diffuse), Specular: c.tex(x.Specular),
			Roughness: c.tex(x.Roughness), Emission: c.tex(x.Emission),
		})
	case *material.Light:
		return material.NewTexturedLight(c.tex(x.Emission))
	case *material.Mix:
		return material.NewMix(c.mat(x.A), c.mat(x.B), c.tex(x.Amount))
	}
	return nil, &MalformedError{Path: NodeName(n), Reason: fmt.Sprintf("cannot clone %T", n)}
}
