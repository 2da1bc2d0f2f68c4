package libinput

import "github.com/kwm81/libinput/internal/matrix"

// SetCalibration installs a user calibration matrix, expressed in
// normalized device coordinates, and recomputes the effective matrix that
// operates directly on device coordinates. The verbatim user matrix is
// retained for CalibrationMatrix's read-back.
func (d *Device) SetCalibration(m matrix.Matrix) {
	d.userMatrix = m
	width := d.AbsX.width()
	height := d.AbsY.width()
	d.effectiveMatrix = matrix.EffectiveMatrix(m, width, height)
}

// CalibrationMatrix returns the calibration matrix exactly as set by
// SetCalibration, verbatim — reading it back never reflects the derived
// effective matrix.
func (d *Device) CalibrationMatrix() matrix.Matrix {
	return d.userMatrix
}

// applyCalibration transforms a raw device coordinate through the
// effective matrix, short-circuiting for identity.
func (d *Device) applyCalibration(x, y int32) (int32, int32) {
	if d.effectiveMatrix.IsIdentity() {
		return x, y
	}
	return d.effectiveMatrix.MultInt(x, y)
}
