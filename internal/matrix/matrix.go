// Package matrix implements the 3x3 affine transform used to calibrate
// touch/absolute coordinates, mirroring the matrix_mult_vec convention
// from the evdev pipeline this engine is derived from: row-major,
// operating on column vectors [x, y, 1]^T, with the bottom row fixed at
// [0 0 1].
package matrix

// Matrix is a row-major 3x3 affine transform. Only the first two rows are
// independently settable; the third is implicitly [0 0 1].
type Matrix struct {
	// [ X[0] X[1] X[2] ]   [x]
	// [ Y[0] Y[1] Y[2] ] * [y]
	// [  0    0    1   ]   [1]
	X [3]float64
	Y [3]float64
}

// Identity returns the no-op transform.
func Identity() Matrix {
	return Matrix{X: [3]float64{1, 0, 0}, Y: [3]float64{0, 1, 0}}
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Mult multiplies m by v, returning the transformed point.
func (m Matrix) Mult(x, y float64) (float64, float64) {
	return m.X[0]*x + m.X[1]*y + m.X[2],
		m.Y[0]*x + m.Y[1]*y + m.Y[2]
}

// MultInt is the integer-coordinate convenience form used on raw device
// axes, rounding via truncation towards the transformed value.
func (m Matrix) MultInt(x, y int32) (int32, int32) {
	fx, fy := m.Mult(float64(x), float64(y))
	return int32(fx), int32(fy)
}

// Compose returns the matrix equivalent to applying a first, then b:
// result = b * a.
func Compose(a, b Matrix) Matrix {
	// Treat a and b as full 3x3 matrices with bottom row [0 0 1] and
	// multiply b * a.
	bx0, bx1, bx2 := b.X[0], b.X[1], b.X[2]
	by0, by1, by2 := b.Y[0], b.Y[1], b.Y[2]
	ax0, ax1, ax2 := a.X[0], a.X[1], a.X[2]
	ay0, ay1, ay2 := a.Y[0], a.Y[1], a.Y[2]

	return Matrix{
		X: [3]float64{
			bx0*ax0 + bx1*ay0,
			bx0*ax1 + bx1*ay1,
			bx0*ax2 + bx1*ay2 + bx2,
		},
		Y: [3]float64{
			by0*ax0 + by1*ay0,
			by0*ax1 + by1*ay1,
			by0*ax2 + by1*ay2 + by2,
		},
	}
}

// ScaleToUnit returns the transform mapping [0, width] x [0, height] onto
// [0, 1] x [0, 1].
func ScaleToUnit(width, height float64) Matrix {
	return Matrix{X: [3]float64{1 / width, 0, 0}, Y: [3]float64{0, 1 / height, 0}}
}

// ScaleFromUnit is the inverse of ScaleToUnit.
func ScaleFromUnit(width, height float64) Matrix {
	return Matrix{X: [3]float64{width, 0, 0}, Y: [3]float64{0, height, 0}}
}

// EffectiveMatrix composes a user-supplied calibration matrix (expressed
// in normalized device coordinates) with scale-to-unit and scale-from-unit
// so the result operates directly on raw device coordinates. Identity
// short-circuits to identity without doing the multiplication, so a
// default-calibrated device pays no float-rounding cost.
func EffectiveMatrix(user Matrix, width, height float64) Matrix {
	if user.IsIdentity() {
		return Identity()
	}
	toUnit := ScaleToUnit(width, height)
	fromUnit := ScaleFromUnit(width, height)
	return Compose(Compose(toUnit, user), fromUnit)
}
