package libinput

import (
	"testing"

	"github.com/kwm81/libinput/internal/matrix"
)

func TestCalibrationIdentityPassesThrough(t *testing.T) {
	d := NewDevice(Identity{Name: "test"}, CapPointer|CapTouch, nil, nil)
	d.AbsX = AxisInfo{Min: 0, Max: 1000}
	d.AbsY = AxisInfo{Min: 0, Max: 1000}
	d.SetCalibration(matrix.Identity())

	x, y := d.applyCalibration(500, 250)
	if x != 500 || y != 250 {
		t.Errorf("applyCalibration with identity = (%d, %d); want (500, 250)", x, y)
	}
}

func TestCalibrationReadBackIsVerbatim(t *testing.T) {
	d := NewDevice(Identity{Name: "test"}, CapPointer|CapTouch, nil, nil)
	d.AbsX = AxisInfo{Min: 0, Max: 1000}
	d.AbsY = AxisInfo{Min: 0, Max: 1000}

	user := matrix.Matrix{X: [3]float64{1, 0, 0.1}, Y: [3]float64{0, 1, 0.2}}
	d.SetCalibration(user)

	got := d.CalibrationMatrix()
	if got != user {
		t.Errorf("CalibrationMatrix() = %+v; want the verbatim user matrix %+v", got, user)
	}
}

func TestCalibrationTranslateShiftsCoordinates(t *testing.T) {
	d := NewDevice(Identity{Name: "test"}, CapPointer|CapTouch, nil, nil)
	d.AbsX = AxisInfo{Min: 0, Max: 1000}
	d.AbsY = AxisInfo{Min: 0, Max: 1000}

	// A calibration matrix expressed in unit coordinates that shifts
	// everything by a tenth of the axis width/height in each direction.
	d.SetCalibration(matrix.Matrix{X: [3]float64{1, 0, 0.1}, Y: [3]float64{0, 1, 0.1}})

	x, y := d.applyCalibration(0, 0)
	if x != 100 || y != 100 {
		t.Errorf("applyCalibration(0, 0) with 0.1 shift = (%d, %d); want (100, 100)", x, y)
	}
}

func TestMatrixComposeIdentityIsNoOp(t *testing.T) {
	a := matrix.Identity()
	b := matrix.Matrix{X: [3]float64{2, 0, 5}, Y: [3]float64{0, 3, 7}}

	composed := matrix.Compose(a, b)
	if composed != b {
		t.Errorf("Compose(identity, b) = %+v; want %+v", composed, b)
	}
}

func TestScaleToUnitAndBackIsIdentity(t *testing.T) {
	toUnit := matrix.ScaleToUnit(2000, 1000)
	fromUnit := matrix.ScaleFromUnit(2000, 1000)
	round := matrix.Compose(toUnit, fromUnit)

	x, y := round.Mult(1234, 567)
	if x != 1234 || y != 567 {
		t.Errorf("round-trip scale = (%v, %v); want (1234, 567)", x, y)
	}
}
