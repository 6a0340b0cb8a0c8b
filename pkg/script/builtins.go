package script

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/loaders"
	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

// ErrImagesDisabled is returned by (image ...) when the engine has no image directory
var ErrImagesDisabled = errors.New("script: image loading is disabled")

// Custom Sexp types carry Go values between builtins

type sexpColor struct {
	c core.Color
}

func (s *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rgb %g %g %g)", s.c.R, s.c.G, s.c.B)
}
func (s *sexpColor) Type() *zygo.RegisteredType { return nil }

type sexpVec3 struct {
	v core.Vec3
}

func (s *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", s.v.X, s.v.Y, s.v.Z)
}
func (s *sexpVec3) Type() *zygo.RegisteredType { return nil }

type sexpTexture struct {
	tex texture.Texture
}

func (s *sexpTexture) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(texture %s)", s.tex.Kind())
}
func (s *sexpTexture) Type() *zygo.RegisteredType { return nil }

type sexpMaterial struct {
	mat material.Material
}

func (s *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(material %s)", s.mat.Kind())
}
func (s *sexpMaterial) Type() *zygo.RegisteredType { return nil }

// isKW reports whether s is a preprocessed keyword and returns its name
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds a mixed positional and keyword argument list
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		if name, ok := isKW(args[i]); ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i++
			} else {
				result.kw[name] = zygo.SexpNull
			}
			continue
		}
		result.positional = append(result.positional, args[i])
	}
	return result
}

// expect rejects keywords outside allowed and a positional count outside [lo, hi]
func (a kwArgs) expect(lo, hi int, allowed ...string) error {
	if len(a.positional) < lo || len(a.positional) > hi {
		if lo == hi {
			return fmt.Errorf("expected %d positional arguments, got %d", lo, len(a.positional))
		}
		return fmt.Errorf("expected %d to %d positional arguments, got %d", lo, hi, len(a.positional))
	}
	var unknown []string
	for name := range a.kw {
		found := false
		for _, ok := range allowed {
			if name == ok {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, ":"+name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown keyword %s", strings.Join(unknown, ", "))
	}
	return nil
}

func (a kwArgs) floatArg(name string, def float64) (float64, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf(":%s: %w", name, err)
	}
	return f, nil
}

func (a kwArgs) intArg(name string, def int) (int, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	i, ok := v.(*zygo.SexpInt)
	if !ok {
		return 0, fmt.Errorf(":%s: expected integer, got %s", name, v.SexpString(nil))
	}
	return int(i.Val), nil
}

func (a kwArgs) textureArg(name string, def texture.Texture) (texture.Texture, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	t, err := toTexture(v)
	if err != nil {
		return nil, fmt.Errorf(":%s: %w", name, err)
	}
	return t, nil
}

func (a kwArgs) vec3Arg(name string, def core.Vec3) (core.Vec3, error) {
	v, ok := a.kw[name]
	if !ok {
		return def, nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return core.Vec3{}, fmt.Errorf(":%s: %w", name, err)
	}
	return vec, nil
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok && !strings.HasPrefix(str.S, kwPrefix) {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (core.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.v, nil
	}
	return core.Vec3{}, fmt.Errorf("expected vec3, got %s", s.SexpString(nil))
}

// toColor accepts an rgb value or a number used as gray
func toColor(s zygo.Sexp) (core.Color, error) {
	switch v := s.(type) {
	case *sexpColor:
		return v.c, nil
	case *zygo.SexpInt, *zygo.SexpFloat:
		f, _ := toFloat64(v)
		return core.Gray(f), nil
	}
	return core.Color{}, fmt.Errorf("expected color or number, got %s", s.SexpString(nil))
}

// toTexture accepts a texture, an rgb value or a number
func toTexture(s zygo.Sexp) (texture.Texture, error) {
	if t, ok := s.(*sexpTexture); ok {
		return t.tex, nil
	}
	c, err := toColor(s)
	if err != nil {
		return nil, fmt.Errorf("expected texture, color or number, got %s", s.SexpString(nil))
	}
	return texture.NewConstant(c), nil
}

func toMaterial(s zygo.Sexp) (material.Material, error) {
	if m, ok := s.(*sexpMaterial); ok {
		return m.mat, nil
	}
	return nil, fmt.Errorf("expected material, got %s", s.SexpString(nil))
}

// builder owns the library a script populates
type builder struct {
	cfg   Config
	lib   *Library
	cause error // Go error of the last failing builtin
}

type builtinFunc func(a kwArgs) (zygo.Sexp, error)

// add registers fn under the kebab-case name a script uses
func (b *builder) add(env *zygo.Zlisp, name string, fn builtinFunc) {
	env.AddFunction(strings.ReplaceAll(name, "-", "_"), func(env *zygo.Zlisp, _ string, args []zygo.Sexp) (zygo.Sexp, error) {
		result, err := fn(parseArgs(args))
		if err != nil {
			b.cause = err
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		return result, nil
	})
}

func textureResult(t texture.Texture, err error) (zygo.Sexp, error) {
	if err != nil {
		return zygo.SexpNull, err
	}
	return &sexpTexture{tex: t}, nil
}

func materialResult(m material.Material, err error) (zygo.Sexp, error) {
	if err != nil {
		return zygo.SexpNull, err
	}
	return &sexpMaterial{mat: m}, nil
}

// positionalTextures converts every positional argument to a texture
func positionalTextures(a kwArgs) ([]texture.Texture, error) {
	out := make([]texture.Texture, len(a.positional))
	for i, p := range a.positional {
		t, err := toTexture(p)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = t
	}
	return out, nil
}

// register installs every builtin into env
func (b *builder) register(env *zygo.Zlisp) {
	b.registerValues(env)
	b.registerTextures(env)
	b.registerMaterials(env)
	b.registerDefinitions(env)
}

func (b *builder) registerValues(env *zygo.Zlisp) {
	// (rgb 0.8 0.2 0.1)
	b.add(env, "rgb", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(3, 3); err != nil {
			return zygo.SexpNull, err
		}
		var ch [3]float64
		for i, p := range a.positional {
			f, err := toFloat64(p)
			if err != nil {
				return zygo.SexpNull, err
			}
			ch[i] = f
		}
		return &sexpColor{c: core.NewColor(ch[0], ch[1], ch[2])}, nil
	})

	// (vec3 0 1 0)
	b.add(env, "vec3", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(3, 3); err != nil {
			return zygo.SexpNull, err
		}
		var v [3]float64
		for i, p := range a.positional {
			f, err := toFloat64(p)
			if err != nil {
				return zygo.SexpNull, err
			}
			v[i] = f
		}
		return &sexpVec3{v: core.NewVec3(v[0], v[1], v[2])}, nil
	})
}

func (b *builder) registerTextures(env *zygo.Zlisp) {
	// (constant (rgb 1 0 0))
	b.add(env, "constant", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(1, 1); err != nil {
			return zygo.SexpNull, err
		}
		c, err := toColor(a.positional[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTexture{tex: texture.NewConstant(c)}, nil
	})

	// (blend a b :amount 0.5) or (blend a b :weights (rgb 0 0.5 1))
	b.add(env, "blend", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(2, 2, "amount", "weights"); err != nil {
			return zygo.SexpNull, err
		}
		tex, err := positionalTextures(a)
		if err != nil {
			return zygo.SexpNull, err
		}
		weights := core.Gray(0.5)
		if v, ok := a.kw["amount"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf(":amount: %w", err)
			}
			weights = core.Gray(f)
		}
		if v, ok := a.kw["weights"]; ok {
			if weights, err = toColor(v); err != nil {
				return zygo.SexpNull, fmt.Errorf(":weights: %w", err)
			}
		}
		return textureResult(texture.NewBlend(tex[0], tex[1], weights))
	})

	// (checkerboard a b :scale 8 :angle 45) with optional :scale-u / :scale-v
	b.add(env, "checkerboard", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(2, 2, "angle", "scale", "scale-u", "scale-v"); err != nil {
			return zygo.SexpNull, err
		}
		tex, err := positionalTextures(a)
		if err != nil {
			return zygo.SexpNull, err
		}
		tr, err := uvTransform(a, texture.IdentityUV())
		if err != nil {
			return zygo.SexpNull, err
		}
		return textureResult(texture.NewCheckerboard(tex[0], tex[1], tr.Angle, tr.ScaleU, tr.ScaleV))
	})

	// (bullseye a b :origin (vec3 0 0 0) :scale 4)
	b.add(env, "bullseye", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(2, 2, "origin", "scale"); err != nil {
			return zygo.SexpNull, err
		}
		tex, err := positionalTextures(a)
		if err != nil {
			return zygo.SexpNull, err
		}
		origin, err := a.vec3Arg("origin", core.Vec3{})
		if err != nil {
			return zygo.SexpNull, err
		}
		scale, err := a.floatArg("scale", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return textureResult(texture.NewBullseye(tex[0], tex[1], origin, scale))
	})

	// (polka-dot a b :resolution 8 :radius 0.3 :angle 0)
	b.add(env, "polka-dot", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(2, 2, "angle", "resolution", "radius"); err != nil {
			return zygo.SexpNull, err
		}
		tex, err := positionalTextures(a)
		if err != nil {
			return zygo.SexpNull, err
		}
		angle, err := a.floatArg("angle", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		res, err := a.floatArg("resolution", 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		radius, err := a.floatArg("radius", 0.25)
		if err != nil {
			return zygo.SexpNull, err
		}
		return textureResult(texture.NewPolkaDot(tex[0], tex[1], angle, res, radius))
	})

	// (marble a b c :scale 5 :stripes 2 :octaves 6)
	b.add(env, "marble", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(3, 3, "scale", "stripes", "octaves"); err != nil {
			return zygo.SexpNull, err
		}
		tex, err := positionalTextures(a)
		if err != nil {
			return zygo.SexpNull, err
		}
		scale, err := a.floatArg("scale", 5)
		if err != nil {
			return zygo.SexpNull, err
		}
		stripes, err := a.floatArg("stripes", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		octaves, err := a.intArg("octaves", 6)
		if err != nil {
			return zygo.SexpNull, err
		}
		return textureResult(texture.NewMarble(tex[0], tex[1], tex[2], scale, stripes, octaves))
	})

	// (fbm (rgb 1 1 1) :frequency 2 :gain 0.5 :octaves 6)
	b.add(env, "fbm", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(0, 1, "frequency", "gain", "octaves"); err != nil {
			return zygo.SexpNull, err
		}
		color := core.White
		if len(a.positional) == 1 {
			c, err := toColor(a.positional[0])
			if err != nil {
				return zygo.SexpNull, err
			}
			color = c
		}
		freq, err := a.floatArg("frequency", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		gain, err := a.floatArg("gain", 0.5)
		if err != nil {
			return zygo.SexpNull, err
		}
		octaves, err := a.intArg("octaves", 6)
		if err != nil {
			return zygo.SexpNull, err
		}
		return textureResult(texture.NewSimplexFBM(color, freq, gain, octaves))
	})

	// (image "wood.png" :scale 2 :angle 0)
	b.add(env, "image", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(1, 1, "angle", "scale", "scale-u", "scale-v"); err != nil {
			return zygo.SexpNull, err
		}
		name, err := toString(a.positional[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		path, err := b.imagePath(name)
		if err != nil {
			return zygo.SexpNull, err
		}
		tr, err := uvTransform(a, texture.IdentityUV())
		if err != nil {
			return zygo.SexpNull, err
		}
		return textureResult(loaders.LoadImageTexture(path, loaders.ImageOptions{
			MaxResolution: b.cfg.MaxImageResolution,
			Transform:     tr,
		}))
	})

	b.add(env, "dot-product", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(0, 0); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTexture{tex: texture.NewDotProduct()}, nil
	})

	b.add(env, "surface-normal", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(0, 0); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTexture{tex: texture.NewSurfaceNormal()}, nil
	})

	b.add(env, "uv", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(0, 0); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTexture{tex: texture.NewUV()}, nil
	})

	// (sphere-region inside outside :center (vec3 0 0 0) :radius 1)
	b.add(env, "sphere-region", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(2, 2, "center", "radius"); err != nil {
			return zygo.SexpNull, err
		}
		tex, err := positionalTextures(a)
		if err != nil {
			return zygo.SexpNull, err
		}
		center, err := a.vec3Arg("center", core.Vec3{})
		if err != nil {
			return zygo.SexpNull, err
		}
		radius, err := a.floatArg("radius", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return textureResult(texture.NewSphereRegion(center, radius, tex[0], tex[1]))
	})

	// (box-region inside outside :center (vec3 0 0 0) :size (vec3 1 1 1))
	b.add(env, "box-region", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(2, 2, "center", "size"); err != nil {
			return zygo.SexpNull, err
		}
		tex, err := positionalTextures(a)
		if err != nil {
			return zygo.SexpNull, err
		}
		center, err := a.vec3Arg("center", core.Vec3{})
		if err != nil {
			return zygo.SexpNull, err
		}
		size, err := a.vec3Arg("size", core.NewVec3(1, 1, 1))
		if err != nil {
			return zygo.SexpNull, err
		}
		return textureResult(texture.NewBoxRegion(center, size, tex[0], tex[1]))
	})
}

func (b *builder) registerMaterials(env *zygo.Zlisp) {
	// (matte :diffuse tex :roughness 20 :emission tex)
	b.add(env, "matte", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(0, 0, "diffuse", "roughness", "emission"); err != nil {
			return zygo.SexpNull, err
		}
		cfg := material.DefaultMatteConfig()
		var err error
		if cfg.Diffuse, err = a.textureArg("diffuse", cfg.Diffuse); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Emission, err = a.textureArg("emission", cfg.Emission); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Roughness, err = a.floatArg("roughness", cfg.Roughness); err != nil {
			return zygo.SexpNull, err
		}
		return materialResult(material.NewMatteFromConfig(cfg))
	})

	// (metal :reflection tex :roughness tex :emission tex)
	b.add(env, "metal", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(0, 0, "reflection", "roughness", "emission"); err != nil {
			return zygo.SexpNull, err
		}
		cfg := material.DefaultMetalConfig()
		var err error
		if cfg.Reflection, err = a.textureArg("reflection", cfg.Reflection); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Roughness, err = a.textureArg("roughness", cfg.Roughness); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Emission, err = a.textureArg("emission", cfg.Emission); err != nil {
			return zygo.SexpNull, err
		}
		return materialResult(material.NewMetalFromConfig(cfg))
	})

	// (mirror :reflection tex :emission tex)
	b.add(env, "mirror", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(0, 0, "reflection", "emission"); err != nil {
			return zygo.SexpNull, err
		}
		cfg := material.DefaultMirrorConfig()
		var err error
		if cfg.Reflection, err = a.textureArg("reflection", cfg.Reflection); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Emission, err = a.textureArg("emission", cfg.Emission); err != nil {
			return zygo.SexpNull, err
		}
		return materialResult(material.NewMirrorFromConfig(cfg))
	})

	// (glass :eta 1.5 :reflection tex :transmission tex :emission tex)
	b.add(env, "glass", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(0, 0, "eta", "reflection", "transmission", "emission"); err != nil {
			return zygo.SexpNull, err
		}
		cfg := material.DefaultGlassConfig()
		var err error
		if cfg.Eta, err = a.floatArg("eta", cfg.Eta); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Reflection, err = a.textureArg("reflection", cfg.Reflection); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Transmission, err = a.textureArg("transmission", cfg.Transmission); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Emission, err = a.textureArg("emission", cfg.Emission); err != nil {
			return zygo.SexpNull, err
		}
		return materialResult(material.NewGlassFromConfig(cfg))
	})

	// (plastic :diffuse tex :specular tex :roughness tex :emission tex)
	b.add(env, "plastic", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(0, 0, "diffuse", "specular", "roughness", "emission"); err != nil {
			return zygo.SexpNull, err
		}
		cfg := material.DefaultPlasticConfig()
		var err error
		if cfg.Diffuse, err = a.textureArg("diffuse", cfg.Diffuse); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Specular, err = a.textureArg("specular", cfg.Specular); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Roughness, err = a.textureArg("roughness", cfg.Roughness); err != nil {
			return zygo.SexpNull, err
		}
		if cfg.Emission, err = a.textureArg("emission", cfg.Emission); err != nil {
			return zygo.SexpNull, err
		}
		return materialResult(material.NewPlasticFromConfig(cfg))
	})

	// (light (rgb 4 4 4)) or (light :emission tex)
	b.add(env, "light", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(0, 1, "emission"); err != nil {
			return zygo.SexpNull, err
		}
		var emission texture.Texture = texture.NewConstant(core.White)
		if len(a.positional) == 1 {
			t, err := toTexture(a.positional[0])
			if err != nil {
				return zygo.SexpNull, err
			}
			emission = t
		}
		emission, err := a.textureArg("emission", emission)
		if err != nil {
			return zygo.SexpNull, err
		}
		return materialResult(material.NewTexturedLight(emission))
	})

	// (mix a b :amount tex)
	b.add(env, "mix", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(2, 2, "amount"); err != nil {
			return zygo.SexpNull, err
		}
		ma, err := toMaterial(a.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("argument 1: %w", err)
		}
		mb, err := toMaterial(a.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("argument 2: %w", err)
		}
		amount, err := a.textureArg("amount", texture.NewGray(0.5))
		if err != nil {
			return zygo.SexpNull, err
		}
		return materialResult(material.NewMix(ma, mb, amount))
	})
}

func (b *builder) registerDefinitions(env *zygo.Zlisp) {
	// (defmaterial "name" (matte ...))
	b.add(env, "defmaterial", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(2, 2); err != nil {
			return zygo.SexpNull, err
		}
		name, err := toString(a.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("name: %w", err)
		}
		m, err := toMaterial(a.positional[1])
		if err != nil {
			return zygo.SexpNull, err
		}
		if _, exists := b.lib.materials[name]; exists {
			return zygo.SexpNull, fmt.Errorf("material %q is already defined", name)
		}
		b.lib.materials[name] = m
		b.lib.materialOrder = append(b.lib.materialOrder, name)
		return a.positional[1], nil
	})

	// (deftexture "name" (checkerboard ...))
	b.add(env, "deftexture", func(a kwArgs) (zygo.Sexp, error) {
		if err := a.expect(2, 2); err != nil {
			return zygo.SexpNull, err
		}
		name, err := toString(a.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("name: %w", err)
		}
		t, err := toTexture(a.positional[1])
		if err != nil {
			return zygo.SexpNull, err
		}
		if _, exists := b.lib.textures[name]; exists {
			return zygo.SexpNull, fmt.Errorf("texture %q is already defined", name)
		}
		b.lib.textures[name] = t
		b.lib.textureOrder = append(b.lib.textureOrder, name)
		return &sexpTexture{tex: t}, nil
	})
}

// uvTransform reads :angle, :scale, :scale-u and :scale-v. :scale sets
// both axes; the per-axis keywords override it.
func uvTransform(a kwArgs, def texture.UVTransform) (texture.UVTransform, error) {
	tr := def
	var err error
	if tr.Angle, err = a.floatArg("angle", tr.Angle); err != nil {
		return tr, err
	}
	scale, err := a.floatArg("scale", 0)
	if err != nil {
		return tr, err
	}
	if _, ok := a.kw["scale"]; ok {
		tr.ScaleU, tr.ScaleV = scale, scale
	}
	if tr.ScaleU, err = a.floatArg("scale-u", tr.ScaleU); err != nil {
		return tr, err
	}
	if tr.ScaleV, err = a.floatArg("scale-v", tr.ScaleV); err != nil {
		return tr, err
	}
	return tr, nil
}

// imagePath resolves name against the configured image directory
func (b *builder) imagePath(name string) (string, error) {
	if b.cfg.ImageDir == "" {
		return "", ErrImagesDisabled
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("image path %q must be relative to the image directory", name)
	}
	return filepath.Join(b.cfg.ImageDir, name), nil
}
