package preview

import (
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 24
	cfg.Height = 16
	cfg.SamplesPerPixel = 4
	cfg.TileSize = 8
	return cfg
}

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		wantTiles     int
	}{
		{"exact fit", 64, 64, 32, 4},
		{"partial edge tiles", 70, 33, 32, 6},
		{"single tile", 10, 10, 32, 1},
		{"default size", 64, 32, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 0)
			if len(tiles) != tt.wantTiles {
				t.Fatalf("got %d tiles, want %d", len(tiles), tt.wantTiles)
			}

			covered := make(map[image.Point]int)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("tile %d has ID %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[image.Pt(x, y)]++
					}
				}
			}
			if len(covered) != tt.width*tt.height {
				t.Errorf("tiles cover %d pixels, want %d", len(covered), tt.width*tt.height)
			}
			for p, n := range covered {
				if n != 1 {
					t.Fatalf("pixel %v covered %d times", p, n)
				}
			}
		})
	}
}

func TestTileRandomIsDeterministic(t *testing.T) {
	a := NewTile(3, image.Rect(0, 0, 8, 8), 7)
	b := NewTile(3, image.Rect(0, 0, 8, 8), 7)
	c := NewTile(4, image.Rect(0, 0, 8, 8), 7)
	va, vb, vc := a.Random.Float64(), b.Random.Float64(), c.Random.Float64()
	if va != vb {
		t.Errorf("same ID and seed gave %v and %v", va, vb)
	}
	if va == vc {
		t.Error("different tile IDs should give different sequences")
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if !ps.Color().Equals(core.Black) {
		t.Errorf("empty pixel should be black, got %v", ps.Color())
	}
	ps.AddSample(core.NewColor(1, 0, 0))
	ps.AddSample(core.NewColor(0, 0, 1))
	if ps.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", ps.SampleCount)
	}
	if want := core.NewColor(0.5, 0, 0.5); !ps.Color().Equals(want) {
		t.Errorf("Color() = %v, want %v", ps.Color(), want)
	}
}

func TestAverageLuminance(t *testing.T) {
	// Rec. 709 weights: red 0.2126, green 0.7152, blue 0.0722
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	if got := AverageLuminance(img); math.Abs(got-0.25) > 1e-4 {
		t.Errorf("AverageLuminance = %f, want 0.25", got)
	}

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Set(0, 0, color.RGBA{255, 255, 255, 255})
	if got := AverageLuminance(white); math.Abs(got-1) > 1e-4 {
		t.Errorf("AverageLuminance(white) = %f, want 1", got)
	}
}

func TestSphereHit(t *testing.T) {
	scene := &Scene{Radius: 1}

	it, ok := scene.hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), rayEpsilon, math.Inf(1))
	if !ok {
		t.Fatal("expected a hit")
	}
	if !it.WorldPoint.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("hit point = %v, want (0,0,1)", it.WorldPoint)
	}
	if !it.GeometricNormal.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("normal = %v, want (0,0,1)", it.GeometricNormal)
	}
	if math.Abs(it.UV.X-0.25) > 1e-9 || math.Abs(it.UV.Y-0.5) > 1e-9 {
		t.Errorf("uv = %v, want (0.25, 0.5)", it.UV)
	}

	// From inside the sphere the far side is hit and the normal still points out
	it, ok = scene.hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), rayEpsilon, math.Inf(1))
	if !ok {
		t.Fatal("expected a hit from inside")
	}
	if !it.GeometricNormal.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("inside normal = %v, want (0,1,0)", it.GeometricNormal)
	}

	if _, ok := scene.hit(core.NewRay(core.NewVec3(0, 2, 5), core.NewVec3(0, 0, -1)), rayEpsilon, math.Inf(1)); ok {
		t.Error("ray passing above the sphere should miss")
	}
}

func TestRadianceWhiteFurnace(t *testing.T) {
	// A white Lambertian sphere under a uniform sky reflects exactly the sky
	scene := &Scene{
		Material:  material.NewMatte(core.White),
		Radius:    1,
		SkyTop:    core.Gray(0.5),
		SkyBottom: core.Gray(0.5),
		MaxDepth:  4,
	}
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	camera := NewCamera(1, 1, 3.5, 40)

	for i := 0; i < 200; i++ {
		ray := camera.GetRay(0.5+0.1*(sampler.Get1D()-0.5), 0.5+0.1*(sampler.Get1D()-0.5))
		c := scene.Radiance(ray, sampler)
		if math.Abs(c.R-0.5) > 1e-6 || math.Abs(c.G-0.5) > 1e-6 || math.Abs(c.B-0.5) > 1e-6 {
			t.Fatalf("sample %d: radiance = %v, want 0.5", i, c)
		}
	}
}

func TestRenderLightMaterial(t *testing.T) {
	cfg := smallConfig()
	img, stats, err := Render(material.NewLight(core.Gray(0.25)), cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, cfg.Width, cfg.Height) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if stats.TotalPixels != cfg.Width*cfg.Height {
		t.Errorf("TotalPixels = %d, want %d", stats.TotalPixels, cfg.Width*cfg.Height)
	}
	if stats.MaxSamplesUsed > cfg.SamplesPerPixel {
		t.Errorf("MaxSamplesUsed = %d exceeds budget %d", stats.MaxSamplesUsed, cfg.SamplesPerPixel)
	}

	// Emission 0.25 is 0.5 after gamma 2
	center := img.RGBAAt(cfg.Width/2, cfg.Height/2)
	if center.R != 128 || center.G != 128 || center.B != 128 {
		t.Errorf("center pixel = %v, want gray 128", center)
	}

	// The top-left corner sees sky, which is bluer than it is red
	corner := img.RGBAAt(0, 0)
	if corner.B <= corner.R {
		t.Errorf("corner pixel = %v, want sky blue", corner)
	}
}

func TestRenderDeterministicAcrossWorkers(t *testing.T) {
	checker, err := texture.NewCheckerboard(texture.NewGray(0.9), texture.NewGray(0.1), 0, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	m, err := material.NewMatteFromConfig(material.MatteConfig{
		Diffuse:  checker,
		Emission: texture.NewConstant(core.Black),
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg := smallConfig()
	cfg.NumWorkers = 1
	a, _, err := Render(m, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.NumWorkers = 4
	b, _, err := Render(m, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("images differ at byte %d: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"no samples", func(c *Config) { c.SamplesPerPixel = 0 }},
		{"no depth", func(c *Config) { c.MaxDepth = 0 }},
		{"camera inside sphere", func(c *Config) { c.CameraDistance = 0.5 }},
		{"flat field of view", func(c *Config) { c.FieldOfView = 180 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.mutate(&cfg)
			_, _, err := Render(material.NewMatte(core.White), cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if _, _, err := Render(nil, smallConfig()); !errors.Is(err, material.ErrNilMaterial) {
		t.Errorf("nil material: expected ErrNilMaterial, got %v", err)
	}
}
