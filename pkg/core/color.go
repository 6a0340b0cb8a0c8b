package core

import (
	"fmt"
	"math"
)

// Color is an RGB triple without alpha. It is an immutable value type;
// every operation returns a new Color.
type Color struct {
	R, G, B float64
}

// Common colors
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Gray returns a color with all three channels set to v
func Gray(v float64) Color {
	return Color{v, v, v}
}

// Add returns the component-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Sub returns the component-wise difference
func (c Color) Sub(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply returns the component-wise product
func (c Color) Multiply(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale multiplies every channel by s
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Lerp blends towards other by a single factor t (0 = c, 1 = other)
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// Blend interpolates each channel independently using the matching channel
// of weights as its factor
func (c Color) Blend(other Color, weights Color) Color {
	return Color{
		R: c.R + (other.R-c.R)*weights.R,
		G: c.G + (other.G-c.G)*weights.G,
		B: c.B + (other.B-c.B)*weights.B,
	}
}

// Average returns the mean of the three channels
func (c Color) Average() float64 {
	return (c.R + c.G + c.B) / 3.0
}

// MaxComponent returns the largest channel value
func (c Color) MaxComponent() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// Luminance returns the perceptual luminance of the color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Clamp returns a color with channels clamped to [lo, hi]
func (c Color) Clamp(lo, hi float64) Color {
	return Color{
		R: max(lo, min(hi, c.R)),
		G: max(lo, min(hi, c.G)),
		B: max(lo, min(hi, c.B)),
	}
}

// IsBlack reports whether every channel is exactly zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// IsFinite reports whether no channel is NaN or infinite
func (c Color) IsFinite() bool {
	return isFinite(c.R) && isFinite(c.G) && isFinite(c.B)
}

// Equals compares two colors channel by channel under ApproxEqual
func (c Color) Equals(other Color) bool {
	return ApproxEqual(c.R, other.R) && ApproxEqual(c.G, other.G) && ApproxEqual(c.B, other.B)
}

// Vec3 reinterprets the color as a vector (R->X, G->Y, B->Z)
func (c Color) Vec3() Vec3 {
	return Vec3{c.R, c.G, c.B}
}

// ColorFromVec3 reinterprets a vector as a color
func ColorFromVec3(v Vec3) Color {
	return Color{v.X, v.Y, v.Z}
}

func (c Color) String() string {
	return fmt.Sprintf("Color(%.4g, %.4g, %.4g)", c.R, c.G, c.B)
}

// Pack quantizes the color into a 32-bit ARGB word. Alpha is always 0xFF,
// channels are clamped to [0, 1] and rounded to 8 bits.
func (c Color) Pack() uint32 {
	return 0xFF<<24 | quantize(c.R)<<16 | quantize(c.G)<<8 | quantize(c.B)
}

// UnpackColor reverses Pack. The alpha byte is ignored.
func UnpackColor(argb uint32) Color {
	return Color{
		R: float64((argb>>16)&0xFF) / 255.0,
		G: float64((argb>>8)&0xFF) / 255.0,
		B: float64(argb&0xFF) / 255.0,
	}
}

func quantize(v float64) uint32 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint32(math.Round(v * 255))
}
