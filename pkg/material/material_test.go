package material

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-progressive-shading/pkg/bxdf"
	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

func randomHit(random *rand.Rand) core.Intersection {
	n := core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, random.Float64()-0.5).Normalize()
	if n.IsZero() {
		n = core.NewVec3(0, 0, 1)
	}
	p := n.Multiply(2)
	return core.Intersection{
		ObjectPoint:     p,
		WorldPoint:      p,
		ShadingNormal:   n,
		GeometricNormal: n,
		UV:              core.NewVec2(random.Float64(), random.Float64()),
		Ray:             core.NewRay(p.Add(n), n.Negate()),
	}
}

func TestMatte_EndToEnd(t *testing.T) {
	matte := NewMatte(core.NewColor(0.5, 0.5, 0.5))
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		it := randomHit(random)
		if e := matte.Emittance(it); !e.Equals(core.Black) {
			t.Fatalf("matte emittance should be black, got %v", e)
		}
		bsdf, ok := matte.ComputeBSDF(it, bxdf.Radiance, true)
		if !ok {
			t.Fatal("matte should always scatter")
		}
		lobes := bsdf.Lobes()
		if len(lobes) != 1 {
			t.Fatalf("expected exactly one lobe, got %d", len(lobes))
		}
		lambert, isLambert := lobes[0].BxDF.(*bxdf.Lambertian)
		if !isLambert {
			t.Fatalf("expected a Lambertian lobe, got %v", lobes[0].BxDF.Kind())
		}
		if !lambert.R.Equals(core.NewColor(0.5, 0.5, 0.5)) {
			t.Errorf("expected reflectance 0.5, got %v", lambert.R)
		}
		if lobes[0].Weight != 1 {
			t.Errorf("expected weight 1, got %v", lobes[0].Weight)
		}
	}
}

func TestMatte_RoughnessSelectsOrenNayar(t *testing.T) {
	cfg := DefaultMatteConfig()
	cfg.Roughness = 20
	matte, err := NewMatteFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	bsdf, ok := matte.ComputeBSDF(randomHit(rand.New(rand.NewSource(1))), bxdf.Radiance, true)
	if !ok {
		t.Fatal("matte should scatter")
	}
	on, isON := bsdf.Lobes()[0].BxDF.(*bxdf.OrenNayar)
	if !isON {
		t.Fatalf("expected Oren-Nayar, got %v", bsdf.Lobes()[0].BxDF.Kind())
	}
	if on.Angle != 20 {
		t.Errorf("expected angle 20, got %v", on.Angle)
	}
}

func TestMirror_EndToEnd(t *testing.T) {
	mirror := NewMirror(core.NewColor(0.9, 0.9, 0.9))
	bsdf, ok := mirror.ComputeBSDF(randomHit(rand.New(rand.NewSource(42))), bxdf.Radiance, true)
	if !ok {
		t.Fatal("mirror should scatter")
	}

	specular, diffuse := 0, 0
	for _, l := range bsdf.Lobes() {
		switch l.BxDF.Kind() {
		case bxdf.KindSpecularReflection:
			specular++
		case bxdf.KindLambertian, bxdf.KindOrenNayar:
			diffuse++
		}
	}
	if specular != 1 || diffuse != 0 {
		t.Errorf("expected one specular and no diffuse lobes, got %d and %d", specular, diffuse)
	}
	if !bsdf.IsSpecular() {
		t.Error("mirror BSDF should be specular")
	}
}

func TestMetal_UsesRoughnessAverage(t *testing.T) {
	cfg := DefaultMetalConfig()
	cfg.Roughness = texture.NewConstant(core.NewColor(0.1, 0.2, 0.3))
	metal, err := NewMetalFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	bsdf, ok := metal.ComputeBSDF(randomHit(rand.New(rand.NewSource(3))), bxdf.Radiance, true)
	if !ok {
		t.Fatal("metal should scatter")
	}
	glossy, isGlossy := bsdf.Lobes()[0].BxDF.(*bxdf.AshikhminShirley)
	if !isGlossy {
		t.Fatalf("expected Ashikhmin-Shirley, got %v", bsdf.Lobes()[0].BxDF.Kind())
	}
	if math.Abs(glossy.Roughness-0.2) > 1e-12 {
		t.Errorf("expected roughness 0.2, got %v", glossy.Roughness)
	}
	if !glossy.R.Equals(core.Gray(0.9)) {
		t.Errorf("expected default reflection 0.9, got %v", glossy.R)
	}
}

func TestGlass_Lobe(t *testing.T) {
	glass, err := NewGlassFromConfig(DefaultGlassConfig())
	if err != nil {
		t.Fatal(err)
	}
	bsdf, ok := glass.ComputeBSDF(randomHit(rand.New(rand.NewSource(5))), bxdf.Radiance, true)
	if !ok {
		t.Fatal("glass should scatter")
	}
	lobes := bsdf.Lobes()
	st, isST := lobes[0].BxDF.(*bxdf.SpecularTransmission)
	if len(lobes) != 1 || !isST {
		t.Fatalf("expected a single SpecularTransmission lobe, got %v", bsdf)
	}
	if st.EtaA != 1 || st.EtaB != DefaultEta || bsdf.Eta() != DefaultEta {
		t.Errorf("expected eta 1 -> %v, got %v -> %v (bsdf %v)", DefaultEta, st.EtaA, st.EtaB, bsdf.Eta())
	}
}

func TestPlastic_DominantLobe(t *testing.T) {
	plastic := NewPlastic(core.Gray(0.5))
	it := randomHit(rand.New(rand.NewSource(9)))

	both, ok := plastic.ComputeBSDF(it, bxdf.Radiance, true)
	if !ok || both.NumLobes() != 2 {
		t.Fatalf("expected two lobes, got %v", both)
	}

	single, ok := plastic.ComputeBSDF(it, bxdf.Radiance, false)
	if !ok || single.NumLobes() != 1 {
		t.Fatalf("expected a single lobe, got %v", single)
	}
	// 0.5 diffuse outweighs the 0.04 coat
	if single.Lobes()[0].BxDF.Kind() != bxdf.KindLambertian {
		t.Errorf("expected the diffuse lobe to dominate, got %v", single.Lobes()[0].BxDF.Kind())
	}

	shiny, err := NewPlasticFromConfig(PlasticConfig{
		Diffuse:   texture.NewGray(0.05),
		Specular:  texture.NewGray(0.9),
		Roughness: texture.NewGray(0.1),
		Emission:  texture.NewConstant(core.Black),
	})
	if err != nil {
		t.Fatal(err)
	}
	single, _ = shiny.ComputeBSDF(it, bxdf.Radiance, false)
	if single.Lobes()[0].BxDF.Kind() != bxdf.KindAshikhminShirley {
		t.Errorf("expected the glossy lobe to dominate, got %v", single.Lobes()[0].BxDF.Kind())
	}
}

func TestLight(t *testing.T) {
	light := NewLight(core.NewColor(4, 4, 3))
	it := randomHit(rand.New(rand.NewSource(11)))

	if _, ok := light.ComputeBSDF(it, bxdf.Radiance, true); ok {
		t.Error("a pure emitter should not produce a BSDF")
	}
	if e := light.Emittance(it); !e.Equals(core.NewColor(4, 4, 3)) {
		t.Errorf("unexpected emittance %v", e)
	}
}

func TestReflectanceIsClamped(t *testing.T) {
	matte := NewMatte(core.NewColor(2, -1, 0.5))
	bsdf, _ := matte.ComputeBSDF(randomHit(rand.New(rand.NewSource(13))), bxdf.Radiance, true)
	r := bsdf.Lobes()[0].BxDF.Reflectance()
	if !r.Equals(core.NewColor(1, 0, 0.5)) {
		t.Errorf("expected clamped reflectance (1, 0, 0.5), got %v", r)
	}
}

func TestConstructors_RejectNilTextures(t *testing.T) {
	var typedNil *texture.Constant

	tests := []struct {
		name  string
		build func() error
		param string
	}{
		{"matte diffuse", func() error {
			cfg := DefaultMatteConfig()
			cfg.Diffuse = nil
			_, err := NewMatteFromConfig(cfg)
			return err
		}, "diffuse"},
		{"metal roughness", func() error {
			cfg := DefaultMetalConfig()
			cfg.Roughness = typedNil
			_, err := NewMetalFromConfig(cfg)
			return err
		}, "roughness"},
		{"mirror emission", func() error {
			_, err := NewMirrorFromConfig(MirrorConfig{Reflection: texture.NewGray(1)})
			return err
		}, "emission"},
		{"glass transmission", func() error {
			cfg := DefaultGlassConfig()
			cfg.Transmission = nil
			_, err := NewGlassFromConfig(cfg)
			return err
		}, "transmission"},
		{"plastic specular", func() error {
			cfg := DefaultPlasticConfig()
			cfg.Specular = nil
			_, err := NewPlasticFromConfig(cfg)
			return err
		}, "specular"},
		{"light emission", func() error {
			_, err := NewTexturedLight(nil)
			return err
		}, "emission"},
		{"mix amount", func() error {
			_, err := NewMix(NewMatte(core.White), NewMirror(core.White), nil)
			return err
		}, "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if !errors.Is(err, texture.ErrNilTexture) {
				t.Fatalf("expected texture.ErrNilTexture, got %v", err)
			}
			var argErr *ArgumentError
			if !errors.As(err, &argErr) || argErr.Param != tt.param {
				t.Errorf("expected *ArgumentError for %q, got %v", tt.param, err)
			}
		})
	}
}

func TestConstructors_RejectInvalidScalars(t *testing.T) {
	cfg := DefaultGlassConfig()
	cfg.Eta = 0
	if _, err := NewGlassFromConfig(cfg); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero eta: expected ErrInvalidParameter, got %v", err)
	}
	cfg.Eta = math.Inf(1)
	if _, err := NewGlassFromConfig(cfg); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("infinite eta: expected ErrInvalidParameter, got %v", err)
	}

	matte := DefaultMatteConfig()
	matte.Roughness = -5
	if _, err := NewMatteFromConfig(matte); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative roughness: expected ErrInvalidParameter, got %v", err)
	}
}

func TestEqual(t *testing.T) {
	a := NewPlastic(core.NewColor(0.2, 0.3, 0.4))
	b := NewPlastic(core.NewColor(0.2, 0.3, 0.4))
	c := NewPlastic(core.NewColor(0.2, 0.3, 0.5))

	if !Equal(a, b) {
		t.Error("identically built materials should be equal")
	}
	if Equal(a, c) {
		t.Error("materials with different colors should differ")
	}
	if Equal(NewMatte(core.White), NewMirror(core.White)) {
		t.Error("different kinds should differ")
	}
	if Equal(NewGlass(1.5), NewGlass(1.33)) {
		t.Error("different eta should differ")
	}
	if !Equal(nil, nil) || Equal(a, nil) {
		t.Error("nil handling is wrong")
	}
}

func TestDefaults(t *testing.T) {
	it := randomHit(rand.New(rand.NewSource(17)))
	tests := []struct {
		name     string
		tex      texture.Texture
		expected core.Color
	}{
		{"matte diffuse", DefaultMatteConfig().Diffuse, core.Gray(0.5)},
		{"metal reflection", DefaultMetalConfig().Reflection, core.Gray(0.9)},
		{"metal roughness", DefaultMetalConfig().Roughness, core.Gray(0.1)},
		{"mirror reflection", DefaultMirrorConfig().Reflection, core.White},
		{"glass transmission", DefaultGlassConfig().Transmission, core.White},
		{"plastic specular", DefaultPlasticConfig().Specular, core.Gray(0.04)},
		{"plastic roughness", DefaultPlasticConfig().Roughness, core.Gray(0.2)},
		{"emission", DefaultMatteConfig().Emission, core.Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tex.Evaluate(it); !got.Equals(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
