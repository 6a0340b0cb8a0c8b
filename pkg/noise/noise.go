// Package noise provides the deterministic, bounded noise primitives used by
// procedural textures. The underlying kernel is OpenSimplex; callers should
// treat it as a black box and rely only on determinism and the documented
// output ranges.
package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Seed is the fixed seed of the shared noise field. Changing it changes every
// procedural texture in previously authored scenes.
const Seed = 1337

// MaxOctaves bounds the octave count so evaluation cost stays predictable.
const MaxOctaves = 16

// field is read-only after construction and therefore safe for concurrent use.
var field = opensimplex.New(Seed)

// Simplex3 returns simplex noise at p, in [-1, 1].
func Simplex3(x, y, z float64) float64 {
	return clamp(field.Eval3(x, y, z), -1, 1)
}

// FBM sums octaves of simplex noise, each at twice the frequency and gain
// times the amplitude of the previous one. The result is normalized by the
// total amplitude and lies in [-1, 1].
func FBM(x, y, z, gain float64, octaves int) float64 {
	octaves = clampOctaves(octaves)
	sum, amplitude, total, frequency := 0.0, 1.0, 0.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += amplitude * Simplex3(x*frequency, y*frequency, z*frequency)
		total += amplitude
		amplitude *= gain
		frequency *= 2
	}
	if total == 0 {
		return 0
	}
	return clamp(sum/total, -1, 1)
}

// Turbulence is FBM over the absolute value of each octave with a fixed gain
// of one half. The result lies in [0, 1].
func Turbulence(x, y, z float64, octaves int) float64 {
	octaves = clampOctaves(octaves)
	sum, amplitude, total, frequency := 0.0, 1.0, 0.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += amplitude * math.Abs(Simplex3(x*frequency, y*frequency, z*frequency))
		total += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return clamp(sum/total, 0, 1)
}

func clampOctaves(octaves int) int {
	if octaves < 1 {
		return 1
	}
	if octaves > MaxOctaves {
		return MaxOctaves
	}
	return octaves
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
