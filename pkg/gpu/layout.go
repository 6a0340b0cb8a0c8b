// Package gpu flattens texture and material graphs into fixed-size uint32
// records that a shader can evaluate without pointers or virtual dispatch.
//
// Every node occupies one block of BlockWords words:
//
//	word 0      kind ID
//	word 1      number of children in use
//	words 2-5   child record indices, NoChild when unused
//	words 6-15  kind specific parameters
//
// Floats are stored as IEEE-754 bit patterns, counts as plain uint32.
// Children are always emitted before their parent, so a child index is
// smaller than the index of every record that refers to it.
package gpu

// Record layout
const (
	BlockWords       = 16
	OffsetKind       = 0
	OffsetChildCount = 1
	OffsetChild0     = 2
	OffsetChild1     = 3
	OffsetChild2     = 4
	OffsetChild3     = 5
	OffsetParams     = 6

	MaxChildren = OffsetParams - OffsetChild0
	ParamWords  = BlockWords - OffsetParams

	// NoChild marks an unused child slot
	NoChild uint32 = 0xFFFFFFFF
)

// KindID is the tag stored in word 0 of a record
type KindID uint32

// Texture kinds
const (
	KindConstant      KindID = 1
	KindBlend         KindID = 2
	KindCheckerboard  KindID = 3
	KindBullseye      KindID = 4
	KindPolkaDot      KindID = 5
	KindMarble        KindID = 6
	KindSimplexFBM    KindID = 7
	KindImage         KindID = 8
	KindDotProduct    KindID = 9
	KindSurfaceNormal KindID = 10
	KindUV            KindID = 11
)

// Material kinds. Material children are their textures in declaration
// order; Mix children are A, B, Amount.
const (
	KindMatte   KindID = 32
	KindMetal   KindID = 33
	KindMirror  KindID = 34
	KindGlass   KindID = 35
	KindPlastic KindID = 36
	KindLight   KindID = 37
	KindMix     KindID = 38
)

// IsTexture reports whether k tags a texture record
func (k KindID) IsTexture() bool {
	return k >= KindConstant && k <= KindUV
}

// IsMaterial reports whether k tags a material record
func (k KindID) IsMaterial() bool {
	return k >= KindMatte && k <= KindMix
}

func (k KindID) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

var kindNames = map[KindID]string{
	KindConstant:      "constant",
	KindBlend:         "blend",
	KindCheckerboard:  "checkerboard",
	KindBullseye:      "bullseye",
	KindPolkaDot:      "polka-dot",
	KindMarble:        "marble",
	KindSimplexFBM:    "fbm",
	KindImage:         "image",
	KindDotProduct:    "dot-product",
	KindSurfaceNormal: "surface-normal",
	KindUV:            "uv",
	KindMatte:         "matte",
	KindMetal:         "metal",
	KindMirror:        "mirror",
	KindGlass:         "glass",
	KindPlastic:       "plastic",
	KindLight:         "light",
	KindMix:           "mix",
}

// Parameter offsets, relative to OffsetParams. Kinds that are not listed
// carry no parameters.
const (
	// Constant: f32 r, g, b
	ParamConstantR = 0
	ParamConstantG = 1
	ParamConstantB = 2

	// Blend: f32 per-channel weights. Children a, b.
	ParamBlendWeightR = 0
	ParamBlendWeightG = 1
	ParamBlendWeightB = 2

	// Checkerboard: f32 angle in degrees, u and v scale. Children a, b.
	ParamCheckerAngle  = 0
	ParamCheckerScaleU = 1
	ParamCheckerScaleV = 2

	// Bullseye: f32 origin x, y, z and ring scale. Children a, b.
	ParamBullseyeOriginX = 0
	ParamBullseyeOriginY = 1
	ParamBullseyeOriginZ = 2
	ParamBullseyeScale   = 3

	// PolkaDot: f32 angle in degrees, cells per unit, dot radius. Children a, b.
	ParamPolkaAngle      = 0
	ParamPolkaResolution = 1
	ParamPolkaRadius     = 2

	// Marble: f32 turbulence scale, f32 stripes, u32 octaves. Children a, b, c.
	ParamMarbleScale   = 0
	ParamMarbleStripes = 1
	ParamMarbleOctaves = 2

	// SimplexFBM: f32 r, g, b, frequency, gain and u32 octaves
	ParamFBMR         = 0
	ParamFBMG         = 1
	ParamFBMB         = 2
	ParamFBMFrequency = 3
	ParamFBMGain      = 4
	ParamFBMOctaves   = 5

	// Image: u32 pixel pool offset, width, height, f32 angle, u and v scale.
	// Pixels are row-major ARGB words, row 0 at the top.
	ParamImagePixels = 0
	ParamImageWidth  = 1
	ParamImageHeight = 2
	ParamImageAngle  = 3
	ParamImageScaleU = 4
	ParamImageScaleV = 5

	// Matte: f32 Oren-Nayar sigma in degrees. Children diffuse, emission.
	ParamMatteRoughness = 0

	// Glass: f32 index of refraction. Children reflection, transmission, emission.
	ParamGlassEta = 0
)
