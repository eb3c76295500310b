package component

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/boardforge/pcbopt/geom"
)

func TestPinConsistencyAfterMoveAndRotate(tst *testing.T) {
	chk.PrintTitle("PinConsistencyAfterMoveAndRotate")
	c := New("C1", Rect, 20, 10, []Pin{
		{ID: "P1", RX: -5, RY: 0},
		{ID: "P2", RX: 5, RY: 0},
	}, geom.Vec{X: 21, Y: 21}, 0, nil)

	c.Move(geom.Vec{X: 10, Y: 10})
	c.Rotate(90)

	for _, p := range c.Pins {
		want := geom.Translate(geom.Rotate(geom.Vec{X: p.RX, Y: p.RY}, c.RotationDeg), c.Position)
		chk.Scalar(tst, p.ID+".x", 1e-9, p.AX, want.X)
		chk.Scalar(tst, p.ID+".y", 1e-9, p.AY, want.Y)
	}
}

func TestCloneIndependence(tst *testing.T) {
	chk.PrintTitle("CloneIndependence")
	c := New("C1", Rect, 20, 10, []Pin{{ID: "P1", RX: -5, RY: 0}}, geom.Vec{X: 0, Y: 0}, 0, &ThermalProfile{CenterTemp: 100, DissipationLength: 5})
	clone := c.Clone()
	clone.Move(geom.Vec{X: 100, Y: 100})
	clone.Thermal.CenterTemp = 1

	if c.Position.X == 100 {
		tst.Errorf("mutating a clone's position must not affect the source")
	}
	chk.Scalar(tst, "source center temp", 1e-12, c.Thermal.CenterTemp, 100)
}

func TestThermalFieldZeroWithoutProfile(tst *testing.T) {
	chk.PrintTitle("ThermalFieldZeroWithoutProfile")
	c := New("C1", Rect, 10, 10, nil, geom.Vec{X: 5, Y: 5}, 0, nil)
	chk.Scalar(tst, "field", 1e-12, c.ThermalField(0, 0), 0)
}

func TestThermalFieldAtCenter(tst *testing.T) {
	chk.PrintTitle("ThermalFieldAtCenter")
	c := New("C1", Rect, 10, 10, nil, geom.Vec{X: 10, Y: 10}, 0, &ThermalProfile{CenterTemp: 100, DissipationLength: 5})
	chk.Scalar(tst, "field at center", 1e-9, c.ThermalField(10, 10), 100)
}

func TestShapeWorldDiskDiameter(tst *testing.T) {
	chk.PrintTitle("ShapeWorldDiskDiameter")
	c := New("C2", Disk, 15, 15, nil, geom.Vec{X: 20, Y: 20}, 0, nil)
	s := c.ShapeWorld()
	if s.Kind != geom.KindDisk {
		tst.Fatalf("expected disk shape")
	}
	chk.Scalar(tst, "radius", 1e-12, s.Disk.Radius, 7.5)
}

func TestValidateODEAgreesWithClosedForm(tst *testing.T) {
	chk.PrintTitle("ValidateODEAgreesWithClosedForm")
	profile := &ThermalProfile{CenterTemp: 100, DissipationLength: 5}
	if err := profile.ValidateODE(3, 1e-3); err != nil {
		tst.Errorf("expected ODE and closed-form to agree: %v", err)
	}
}

func TestRotateWrapsModulo360(tst *testing.T) {
	chk.PrintTitle("RotateWrapsModulo360")
	c := New("C1", Rect, 10, 10, nil, geom.Vec{X: 0, Y: 0}, 350, nil)
	c.Rotate(20)
	chk.Scalar(tst, "rotation", 1e-9, c.RotationDeg, 10)
	if c.RotationDeg < 0 || c.RotationDeg >= 360 {
		tst.Errorf("rotation must stay in [0,360): got %v", c.RotationDeg)
	}
}
