package gpu

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/df07/go-progressive-shading/pkg/core"
	"github.com/df07/go-progressive-shading/pkg/material"
	"github.com/df07/go-progressive-shading/pkg/texture"
)

func randomHit(random *rand.Rand) core.Intersection {
	p := core.NewVec3(random.Float64()*4-2, random.Float64()*4-2, random.Float64()*4-2)
	n := core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, random.Float64()-0.5).Normalize()
	return core.Intersection{
		ObjectPoint:     p,
		WorldPoint:      p,
		ShadingNormal:   n,
		GeometricNormal: n,
		UV:              core.NewVec2(random.Float64(), random.Float64()),
		Ray:             core.NewRay(p.Add(n), n.Negate()),
	}
}

func TestEvaluateTexture_MatchesHost(t *testing.T) {
	tests := []struct {
		name string
		tex  texture.Texture
	}{
		{"constant", texture.NewConstant(core.NewColor(0.3, 0.6, 0.9))},
		{"blend", texture.Must(texture.NewBlend(red, texture.NewUV(), core.NewColor(0.2, 0.5, 0.8)))},
		{"checkerboard", texture.Must(texture.NewCheckerboard(red, green, 0, 4, 4))},
		{"rotated checkerboard", texture.Must(texture.NewCheckerboard(red, green, 30, 3, 5))},
		{"bullseye", texture.Must(texture.NewBullseye(red, blue, core.NewVec3(0.5, 0, 0), 2))},
		{"polka dot", texture.Must(texture.NewPolkaDot(green, blue, 15, 5, 0.3))},
		{"marble", texture.Must(texture.NewMarble(red, green, blue, 2, 0.5, 4))},
		{"fbm", texture.Must(texture.NewSimplexFBM(core.NewColor(1, 0.5, 0.25), 1.5, 0.5, 4))},
		{"image", testImage(t)},
		{"dot product", texture.NewDotProduct()},
		{"surface normal", texture.NewSurfaceNormal()},
		{"uv", texture.NewUV()},
		{"nested", texture.Must(texture.NewBlend(
			texture.Must(texture.NewCheckerboard(testImage(t), texture.NewSurfaceNormal(), 0, 2, 2)),
			texture.Must(texture.NewPolkaDot(texture.NewDotProduct(), blue, 0, 3, 0.25)),
			core.Gray(0.5),
		))},
	}

	const tolerance = 1e-4
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPacker()
			// Pack something unrelated first so the root is not record 0
			packTexture(t, p, texture.NewGray(0.1))
			idx := packTexture(t, p, tt.tex)
			buf := p.Buffer()

			random := rand.New(rand.NewSource(42))
			for i := 0; i < 200; i++ {
				it := randomHit(random)
				want := tt.tex.Evaluate(it)
				got, err := EvaluateTexture(buf, idx, it)
				if err != nil {
					t.Fatalf("EvaluateTexture failed: %v", err)
				}
				if math.Abs(got.R-want.R) > tolerance || math.Abs(got.G-want.G) > tolerance || math.Abs(got.B-want.B) > tolerance {
					t.Fatalf("sample %d: packed evaluation %v, host evaluation %v", i, got, want)
				}
			}
		})
	}
}

func TestEvaluateTexture_RejectsMaterialRecords(t *testing.T) {
	p := NewPacker()
	idx, err := p.PackMaterial(material.NewMatte(core.Gray(0.5)))
	if err != nil {
		t.Fatalf("PackMaterial failed: %v", err)
	}
	_, err = EvaluateTexture(p.Buffer(), idx, randomHit(rand.New(rand.NewSource(42))))
	if !errors.Is(err, ErrCorruptBuffer) {
		t.Errorf("EvaluateTexture error = %v, expected ErrCorruptBuffer", err)
	}
}

func TestEvaluateTexture_ForwardReference(t *testing.T) {
	p := NewPacker()
	idx := packTexture(t, p, texture.Must(texture.NewUniformBlend(red, green, 0.5)))
	buf := p.Buffer()
	buf.Nodes[int(idx)*BlockWords+OffsetChild0] = idx

	_, err := EvaluateTexture(buf, idx, randomHit(rand.New(rand.NewSource(42))))
	if !errors.Is(err, ErrCorruptBuffer) {
		t.Errorf("EvaluateTexture error = %v, expected ErrCorruptBuffer", err)
	}
}

func TestEvaluatorSource_MatchesLayout(t *testing.T) {
	src := EvaluatorSource()
	for _, want := range []string{
		"const BLOCK_WORDS: u32 = 16u;",
		"const OFFSET_CHILD0: u32 = 2u;",
		"const OFFSET_PARAMS: u32 = 6u;",
		"const MAX_RECORDS: u32 = 64u;",
		"@compute",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("evaluator source is missing %q", want)
		}
	}
	if BlockWords != 16 || OffsetChild0 != 2 || OffsetParams != 6 || MaxShaderRecords != 64 {
		t.Errorf("layout constants drifted from the shader")
	}
}

func TestCompileEvaluator(t *testing.T) {
	spirv, err := CompileEvaluator()
	if err != nil {
		// naga does not implement every WGSL feature yet
		t.Skipf("Skipping: naga could not compile the evaluator: %v", err)
	}
	if len(spirv) < 4 {
		t.Fatalf("SPIR-V output too short: %d bytes", len(spirv))
	}
	magic := uint32(spirv[0]) |
		uint32(spirv[1])<<8 |
		uint32(spirv[2])<<16 |
		uint32(spirv[3])<<24
	if magic != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", magic)
	}
}

func TestCorruptRecordsReturnErrors(t *testing.T) {
	setWord := func(offset int, value uint32) func(*Buffer, uint32) {
		return func(b *Buffer, idx uint32) { b.Nodes[int(idx)*BlockWords+offset] = value }
	}
	tests := []struct {
		name   string
		tex    texture.Texture
		mutate func(*Buffer, uint32)
	}{
		{"blend without children", texture.Must(texture.NewUniformBlend(red, green, 0.5)), setWord(OffsetChildCount, 0)},
		{"checkerboard with one child", texture.Must(texture.NewCheckerboard(red, green, 0, 2, 2)), setWord(OffsetChildCount, 1)},
		{"marble with one child", texture.Must(texture.NewMarble(red, green, blue, 1, 1, 2)), setWord(OffsetChildCount, 1)},
		{"constant with a child", texture.NewGray(0.5), setWord(OffsetChildCount, 1)},
		{"image with huge size", testImage(t), func(b *Buffer, idx uint32) {
			setWord(OffsetParams+ParamImageWidth, 0xFFFFFFFF)(b, idx)
			setWord(OffsetParams+ParamImageHeight, 0xFFFFFFFF)(b, idx)
		}},
		{"image offset past pool", testImage(t), setWord(OffsetParams+ParamImagePixels, 0xFFFFFFF0)},
		{"image with zero width", testImage(t), setWord(OffsetParams+ParamImageWidth, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPacker()
			idx := packTexture(t, p, tt.tex)
			packed := p.Buffer()
			tt.mutate(packed, idx)

			// Corrupt bytes still parse; the damage is only visible per record
			buf, err := ReadBuffer(packed.Bytes())
			if err != nil {
				t.Fatalf("ReadBuffer failed: %v", err)
			}
			if _, err := EvaluateTexture(buf, idx, randomHit(rand.New(rand.NewSource(42)))); !errors.Is(err, ErrCorruptBuffer) {
				t.Errorf("EvaluateTexture error = %v, expected ErrCorruptBuffer", err)
			}
			if _, err := buf.Decode(idx); !errors.Is(err, ErrCorruptBuffer) {
				t.Errorf("Decode error = %v, expected ErrCorruptBuffer", err)
			}
		})
	}
}
