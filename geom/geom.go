// Package geom implements the 2-D affine-transform and intersection
// kernel that the board and component packages build on: rigid
// transforms of point sets, rectangle/disk shapes, bounding boxes, and
// intersection-with-area for every pairing of the two shape tags.
//
// Angles are accepted and stored in degrees at every API boundary;
// trigonometric functions internally convert to radians.
package geom

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Vec is a point or free vector in the board plane.
type Vec struct{ X, Y float64 }

// Add returns a+b.
func (a Vec) Add(b Vec) Vec { return Vec{a.X + b.X, a.Y + b.Y} }

// Sub returns a-b.
func (a Vec) Sub(b Vec) Vec { return Vec{a.X - b.X, a.Y - b.Y} }

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 { return la.VecNorm([]float64{v.X, v.Y}) }

// Rotate returns v rotated by degrees about the origin.
func Rotate(v Vec, degrees float64) Vec {
	rad := degrees * math.Pi / 180.0
	c, s := math.Cos(rad), math.Sin(rad)
	return Vec{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// Translate returns v shifted by offset.
func Translate(v, offset Vec) Vec { return v.Add(offset) }

// TransformPolygon rotates every vertex about the local origin, then
// translates by offset: the rigid-body transform of a component's
// body-local footprint into world coordinates.
func TransformPolygon(verts []Vec, degrees float64, offset Vec) Polygon {
	out := make(Polygon, len(verts))
	for i, v := range verts {
		out[i] = Translate(Rotate(v, degrees), offset)
	}
	return out
}

// RectVertices returns the four corners of an axis-aligned rectangle of
// full width sizeX and height sizeY, centred at the local origin, in
// the order {(-w/2,-h/2), (w/2,-h/2), (w/2,h/2), (-w/2,h/2)}.
func RectVertices(sizeX, sizeY float64) []Vec {
	w, h := sizeX/2, sizeY/2
	return []Vec{
		{-w, -h},
		{w, -h},
		{w, h},
		{-w, h},
	}
}

// Polygon is an ordered, closed vertex loop.
type Polygon []Vec

// Disk is a circle in world coordinates.
type Disk struct {
	Center Vec
	Radius float64
}

// ShapeKind tags which variant a Shape holds.
type ShapeKind int

const (
	// KindPolygon tags a polygon-backed shape (rectangles, in practice).
	KindPolygon ShapeKind = iota
	// KindDisk tags an exact-disk shape.
	KindDisk
)

// Shape is a tagged union of Polygon and Disk, dispatched on Kind by
// every shape-dependent operation (BoundingBox, Intersect).
type Shape struct {
	Kind ShapeKind
	Poly Polygon
	Disk Disk
}

// PolygonShape wraps a polygon as a Shape.
func PolygonShape(p Polygon) Shape { return Shape{Kind: KindPolygon, Poly: p} }

// DiskShape wraps a disk as a Shape.
func DiskShape(d Disk) Shape { return Shape{Kind: KindDisk, Disk: d} }

// DiskApprox returns a ≥32-segment polygonal approximation of a disk,
// used internally by the mixed disk/rect intersection path. Its area
// matches π·r² to within 1% for segments ≥ 32.
func DiskApprox(center Vec, radius float64, segments int) Polygon {
	if segments < 32 {
		segments = 32
	}
	verts := make(Polygon, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		verts[i] = Vec{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		}
	}
	return verts
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min, Max Vec
}

// Width returns the box's horizontal extent.
func (b BBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the box's vertical extent.
func (b BBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Area returns Width*Height.
func (b BBox) Area() float64 { return b.Width() * b.Height() }

// BoundingBox returns the axis-aligned bounding box of s.
func BoundingBox(s Shape) BBox {
	switch s.Kind {
	case KindDisk:
		r := s.Disk.Radius
		c := s.Disk.Center
		return BBox{
			Min: Vec{c.X - r, c.Y - r},
			Max: Vec{c.X + r, c.Y + r},
		}
	default:
		return polygonBBox(s.Poly)
	}
}

func polygonBBox(p Polygon) BBox {
	if len(p) == 0 {
		return BBox{}
	}
	b := BBox{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		b.Min.X = math.Min(b.Min.X, v.X)
		b.Min.Y = math.Min(b.Min.Y, v.Y)
		b.Max.X = math.Max(b.Max.X, v.X)
		b.Max.Y = math.Max(b.Max.Y, v.Y)
	}
	return b
}

// UnionBBox returns the bounding box of a set of bounding boxes.
func UnionBBox(boxes []BBox) BBox {
	if len(boxes) == 0 {
		return BBox{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out.Min.X = math.Min(out.Min.X, b.Min.X)
		out.Min.Y = math.Min(out.Min.Y, b.Min.Y)
		out.Max.X = math.Max(out.Max.X, b.Max.X)
		out.Max.Y = math.Max(out.Max.Y, b.Max.Y)
	}
	return out
}
