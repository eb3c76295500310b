package geom

import "math"

// Intersect reports whether a and b overlap and, if so, the area of
// their intersection. It dispatches on the shape tags: disk-disk uses
// the closed-form circular-segment (lens) area; every other pairing
// clips one convex polygon against the other (Sutherland-Hodgman),
// approximating a disk operand as a ≥32-segment polygon. Intersect is
// reflexive (Intersect(a,a) returns a's own area, overlapping) and
// symmetric (Intersect(a,b) == Intersect(b,a)).
func Intersect(a, b Shape) (area float64, overlaps bool) {
	if a.Kind == KindDisk && b.Kind == KindDisk {
		return diskDiskIntersection(a.Disk, b.Disk)
	}
	polyA := asPolygon(a)
	polyB := asPolygon(b)
	clipped := clipConvex(polyA, polyB)
	area = math.Abs(shoelaceArea(clipped))
	return area, area > 0
}

func asPolygon(s Shape) Polygon {
	if s.Kind == KindDisk {
		return DiskApprox(s.Disk.Center, s.Disk.Radius, 64)
	}
	return s.Poly
}

// shoelaceArea returns the signed area of a polygon (positive for
// counter-clockwise vertex order).
func shoelaceArea(p Polygon) float64 {
	if len(p) < 3 {
		return 0
	}
	sum := 0.0
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return sum / 2
}

// isCCW reports whether a polygon winds counter-clockwise.
func isCCW(p Polygon) bool { return shoelaceArea(p) >= 0 }

// clipConvex clips subject against the convex polygon clip using the
// Sutherland-Hodgman algorithm and returns the resulting polygon (empty
// if there is no overlap). Both inputs are assumed convex, which holds
// for every shape this package produces (rectangles and disk
// approximations).
func clipConvex(subject, clip Polygon) Polygon {
	if len(subject) < 3 || len(clip) < 3 {
		return nil
	}
	// Sutherland-Hodgman requires a CCW-oriented clip polygon.
	clipCCW := clip
	if !isCCW(clip) {
		clipCCW = reversed(clip)
	}
	output := subject
	n := len(clipCCW)
	for i := 0; i < n; i++ {
		if len(output) == 0 {
			break
		}
		edgeStart := clipCCW[i]
		edgeEnd := clipCCW[(i+1)%n]
		output = clipEdge(output, edgeStart, edgeEnd)
	}
	return output
}

func reversed(p Polygon) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// clipEdge clips polygon against the half-plane left of edge (start,end).
func clipEdge(poly Polygon, start, end Vec) Polygon {
	var out Polygon
	n := len(poly)
	for i := 0; i < n; i++ {
		curr := poly[i]
		prev := poly[(i-1+n)%n]
		currInside := isLeft(start, end, curr)
		prevInside := isLeft(start, end, prev)
		if currInside {
			if !prevInside {
				out = append(out, lineIntersection(prev, curr, start, end))
			}
			out = append(out, curr)
		} else if prevInside {
			out = append(out, lineIntersection(prev, curr, start, end))
		}
	}
	return out
}

func isLeft(a, b, p Vec) bool {
	return (b.X-a.X)*(p.Y-a.Y)-(b.Y-a.Y)*(p.X-a.X) >= 0
}

func lineIntersection(p1, p2, p3, p4 Vec) Vec {
	x1, y1, x2, y2 := p1.X, p1.Y, p2.X, p2.Y
	x3, y3, x4, y4 := p3.X, p3.Y, p4.X, p4.Y
	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if denom == 0 {
		return p2
	}
	tNum := (x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)
	t := tNum / denom
	return Vec{
		X: x1 + t*(x2-x1),
		Y: y1 + t*(y2-y1),
	}
}

// diskDiskIntersection returns the exact lens area of two circles.
func diskDiskIntersection(a, b Disk) (area float64, overlaps bool) {
	d := a.Center.Sub(b.Center).Norm()
	r0, r1 := a.Radius, b.Radius
	if d >= r0+r1 {
		return 0, false
	}
	if d <= math.Abs(r0-r1) {
		rmin := math.Min(r0, r1)
		return math.Pi * rmin * rmin, true
	}
	d0 := (d*d + r0*r0 - r1*r1) / (2 * d * r0)
	d1 := (d*d + r1*r1 - r0*r0) / (2 * d * r1)
	d0 = clamp(d0, -1, 1)
	d1 = clamp(d1, -1, 1)
	part0 := r0 * r0 * math.Acos(d0)
	part1 := r1 * r1 * math.Acos(d1)
	triangleTerm := 0.5 * math.Sqrt(math.Max(0, (-d+r0+r1)*(d+r0-r1)*(d-r0+r1)*(d+r0+r1)))
	area = part0 + part1 - triangleTerm
	return area, area > 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
