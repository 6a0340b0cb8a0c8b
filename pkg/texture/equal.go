package texture

// Equal reports whether two texture graphs are structurally identical.
// Float parameters compare within core.Epsilon. Function and Region
// textures compare by identity since closures and solids cannot be
// compared structurally.
func Equal(a, b Texture) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case *Constant:
		y := b.(*Constant)
		return x.Color.Equals(y.Color)
	case *Blend:
		y := b.(*Blend)
		return x.Weights.Equals(y.Weights) && Equal(x.A, y.A) && Equal(x.B, y.B)
	case *Checkerboard:
		y := b.(*Checkerboard)
		return x.Transform.equals(y.Transform) && Equal(x.A, y.A) && Equal(x.B, y.B)
	case *Bullseye:
		y := b.(*Bullseye)
		return x.Origin.Equals(y.Origin) && floatEquals(x.Scale, y.Scale) &&
			Equal(x.A, y.A) && Equal(x.B, y.B)
	case *PolkaDot:
		y := b.(*PolkaDot)
		return floatEquals(x.Angle, y.Angle) &&
			floatEquals(x.CellResolution, y.CellResolution) &&
			floatEquals(x.DotRadius, y.DotRadius) &&
			Equal(x.A, y.A) && Equal(x.B, y.B)
	case *Marble:
		y := b.(*Marble)
		return floatEquals(x.Scale, y.Scale) && floatEquals(x.Stripes, y.Stripes) &&
			x.Octaves == y.Octaves &&
			Equal(x.A, y.A) && Equal(x.B, y.B) && Equal(x.C, y.C)
	case *SimplexFBM:
		y := b.(*SimplexFBM)
		return x.Color.Equals(y.Color) && floatEquals(x.Frequency, y.Frequency) &&
			floatEquals(x.Gain, y.Gain) && x.Octaves == y.Octaves
	case *Image:
		y := b.(*Image)
		if x.Width != y.Width || x.Height != y.Height || !x.Transform.equals(y.Transform) {
			return false
		}
		for i := range x.pixels {
			if !x.pixels[i].Equals(y.pixels[i]) {
				return false
			}
		}
		return true
	case *DotProduct, *SurfaceNormal, *UV:
		return true
	}
	// Function, Region: identity only, already checked above
	return false
}
