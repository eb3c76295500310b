// Package component implements the PCB component model: a pin-bearing
// body with a pose (position, rotation) and a shape tag (rectangle or
// disk), carrying an optional thermal source.
//
// A Component's pins are re-derived to world coordinates atomically on
// every Move or Rotate, per the invariant in spec §3: a pin's world
// coordinates always equal the rotate-then-translate of its body-local
// coordinates under the component's current pose.
package component

import (
	"math"

	"github.com/boardforge/pcbopt/geom"
)

// Shape tags the two supported footprint variants.
type Shape int

const (
	// Rect is an axis-aligned (pre-rotation) rectangular footprint of
	// full width SizeX and height SizeY.
	Rect Shape = iota
	// Disk is a circular footprint of diameter max(SizeX, SizeY).
	Disk
)

// Pin is a named connection point rigidly attached to a component body.
// RX/RY are body-local; AX/AY are the derived world coordinates, valid
// only with respect to the owning component's current pose.
type Pin struct {
	ID     string
	RX, RY float64
	AX, AY float64
}

// Clone returns an independent copy of the pin.
func (p Pin) Clone() Pin { return p }

// ThermalProfile parametrizes a component's heat dissipation. A nil
// *ThermalProfile on a Component means the component has no thermal
// source and contributes zero to the board's temperature field.
type ThermalProfile struct {
	CenterTemp        float64
	DissipationLength float64
}

// Component is a placed body on a board: shape, extents, pose, pins,
// and an optional thermal source.
type Component struct {
	ID       string
	Shape    Shape
	SizeX    float64
	SizeY    float64
	Position geom.Vec
	// RotationDeg is held modulo 360; Rotate re-derives it on every call.
	RotationDeg float64
	Pins        []Pin
	Thermal     *ThermalProfile
}

// New constructs a Component from a template's pins, cloning them so
// the new component shares no mutable state with its template, and
// derives initial world pin coordinates from the given pose.
func New(id string, shape Shape, sizeX, sizeY float64, pins []Pin, position geom.Vec, rotationDeg float64, thermal *ThermalProfile) *Component {
	c := &Component{
		ID:          id,
		Shape:       shape,
		SizeX:       sizeX,
		SizeY:       sizeY,
		Position:    position,
		RotationDeg: math.Mod(rotationDeg, 360),
		Pins:        clonePins(pins),
		Thermal:     cloneThermal(thermal),
	}
	c.recomputePins()
	return c
}

func clonePins(pins []Pin) []Pin {
	out := make([]Pin, len(pins))
	for i, p := range pins {
		out[i] = p.Clone()
	}
	return out
}

func cloneThermal(t *ThermalProfile) *ThermalProfile {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

// Clone produces a deeply independent copy: pins and thermal
// parameters are duplicated so neither component shares mutable state.
func (c *Component) Clone() *Component {
	return &Component{
		ID:          c.ID,
		Shape:       c.Shape,
		SizeX:       c.SizeX,
		SizeY:       c.SizeY,
		Position:    c.Position,
		RotationDeg: c.RotationDeg,
		Pins:        clonePins(c.Pins),
		Thermal:     cloneThermal(c.Thermal),
	}
}

// Move sets the component's position and re-derives every pin's world
// coordinates atomically.
func (c *Component) Move(p geom.Vec) {
	c.Position = p
	c.recomputePins()
}

// Rotate adds delta degrees to the rotation (mod 360, accepting any
// real delta) and re-derives every pin's world coordinates atomically.
func (c *Component) Rotate(deltaDeg float64) {
	c.RotationDeg = math.Mod(c.RotationDeg+deltaDeg, 360)
	if c.RotationDeg < 0 {
		c.RotationDeg += 360
	}
	c.recomputePins()
}

func (c *Component) recomputePins() {
	for i := range c.Pins {
		p := &c.Pins[i]
		world := geom.Translate(geom.Rotate(geom.Vec{X: p.RX, Y: p.RY}, c.RotationDeg), c.Position)
		p.AX, p.AY = world.X, world.Y
	}
}

// Diameter returns the disk diameter for Disk-shaped components:
// max(SizeX, SizeY).
func (c *Component) Diameter() float64 { return math.Max(c.SizeX, c.SizeY) }

// ShapeWorld returns the component's transformed footprint: a disk for
// Disk components (diameter = max(SizeX,SizeY)), or the rectangle
// {(±w/2,±h/2)} rotated about the local origin and translated to
// Position for Rect components.
func (c *Component) ShapeWorld() geom.Shape {
	if c.Shape == Disk {
		return geom.DiskShape(geom.Disk{Center: c.Position, Radius: c.Diameter() / 2})
	}
	verts := geom.RectVertices(c.SizeX, c.SizeY)
	return geom.PolygonShape(geom.TransformPolygon(verts, c.RotationDeg, c.Position))
}

// ThermalField returns the temperature contribution of this component
// at world point (x,y): 0 if Thermal is nil, otherwise
// CenterTemp * exp(-r/DissipationLength) where r is the distance from
// (x,y) to Position.
func (c *Component) ThermalField(x, y float64) float64 {
	if c.Thermal == nil {
		return 0
	}
	r := math.Hypot(x-c.Position.X, y-c.Position.Y)
	return c.Thermal.CenterTemp * math.Exp(-r/c.Thermal.DissipationLength)
}

// ThermalFieldGrid evaluates ThermalField pointwise over a grid of
// world coordinates, the vectorized form callers use when accumulating
// a whole board's thermal field (board.MaxTemperature).
func (c *Component) ThermalFieldGrid(xs, ys []float64, out [][]float64) {
	for iy, y := range ys {
		for ix, x := range xs {
			out[iy][ix] += c.ThermalField(x, y)
		}
	}
}
