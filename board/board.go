// Package board implements the PCB layout: a bounded rectangle owning a
// set of uniquely-identified components and an ordered list of
// pin-to-pin links, plus the geometric operations (random placement,
// conflict resolution) and the three raw measurements the objective
// package packages into a minimization vector.
package board

import (
	"math"
	"math/rand"
	"sort"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/boardforge/pcbopt/component"
	"github.com/boardforge/pcbopt/geom"
	"github.com/boardforge/pcbopt/pcberr"
)

// Link is an unordered pair of (component-id, pin-id) endpoints that
// the optimizer wishes to keep physically close.
type Link struct {
	ComponentA, PinA string
	ComponentB, PinB string
}

// Overlap reports a positive-area intersection between two components.
type Overlap struct {
	A, B string
	Area float64
}

// Layout is a rectangular board, origin at its lower-left corner, that
// owns a set of components keyed by identifier and a list of links
// between their pins.
type Layout struct {
	Width, Height float64
	components    map[string]*component.Component
	Links         []Link
}

// New constructs a Layout from a width, height, component list and
// link list, cloning every component so the Layout owns independent
// state. Every link endpoint must resolve to an existing
// (component, pin) pair, and component identifiers must be unique;
// violations return a pcberr InvalidLayout error.
func New(width, height float64, comps []*component.Component, links []Link) (*Layout, error) {
	m := make(map[string]*component.Component, len(comps))
	for _, c := range comps {
		if _, dup := m[c.ID]; dup {
			return nil, pcberr.New(pcberr.InvalidLayout, "duplicate component id %q", c.ID)
		}
		m[c.ID] = c.Clone()
	}
	l := &Layout{Width: width, Height: height, components: m, Links: append([]Link(nil), links...)}
	if err := l.validateLinks(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Layout) validateLinks() error {
	for _, lk := range l.Links {
		if _, ok := l.Pin(lk.ComponentA, lk.PinA); !ok {
			return pcberr.New(pcberr.InvalidLayout, "link references unknown pin %s.%s", lk.ComponentA, lk.PinA)
		}
		if _, ok := l.Pin(lk.ComponentB, lk.PinB); !ok {
			return pcberr.New(pcberr.InvalidLayout, "link references unknown pin %s.%s", lk.ComponentB, lk.PinB)
		}
	}
	return nil
}

// Components returns the layout's identifier-to-component mapping.
// Callers must not mutate the returned components outside Move/Rotate;
// iteration order carries no meaning (every objective is symmetric in
// component order).
func (l *Layout) Components() map[string]*component.Component { return l.components }

// sortedIDs returns every component id in a fixed, deterministic order.
// Go randomizes map iteration order per process, which would otherwise
// leak into the sequence of RNG draws (random_placement, conflict
// resolution) and break the determinism property of spec §6/§8; every
// stochastic or order-sensitive traversal of components goes through
// this helper instead of ranging the map directly.
func (l *Layout) sortedIDs() []string {
	ids := make([]string, 0, len(l.components))
	for id := range l.components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Component returns the component with the given id, if any.
func (l *Layout) Component(id string) (*component.Component, bool) {
	c, ok := l.components[id]
	return c, ok
}

// Pin resolves a (component-id, pin-id) pair to its current Pin value.
func (l *Layout) Pin(componentID, pinID string) (component.Pin, bool) {
	c, ok := l.components[componentID]
	if !ok {
		return component.Pin{}, false
	}
	for _, p := range c.Pins {
		if p.ID == pinID {
			return p, true
		}
	}
	return component.Pin{}, false
}

// Clone deep-copies every component and the link list into a
// structurally independent Layout.
func (l *Layout) Clone() *Layout {
	m := make(map[string]*component.Component, len(l.components))
	for id, c := range l.components {
		m[id] = c.Clone()
	}
	return &Layout{
		Width:      l.Width,
		Height:     l.Height,
		components: m,
		Links:      append([]Link(nil), l.Links...),
	}
}

// RandomPlacement draws, for every component, a position uniform over
// the interior region keeping it fully inside the board when
// axis-aligned, and a rotation uniform over [0,360). Over-sized
// components may still protrude; this is tolerated.
func (l *Layout) RandomPlacement(rng *rand.Rand) {
	for _, id := range l.sortedIDs() {
		c := l.components[id]
		xLo, xHi := c.SizeX/2, l.Width-c.SizeX/2
		yLo, yHi := c.SizeY/2, l.Height-c.SizeY/2
		x := uniform(rng, xLo, xHi)
		y := uniform(rng, yLo, yHi)
		angle := uniform(rng, 0, 360)
		c.Move(geom.Vec{X: x, Y: y})
		c.Rotate(angle)
	}
}

// uniform draws a value from [lo,hi], tolerating lo>hi (an
// over-sized component) by collapsing to lo.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// DetectOverlaps returns every unordered pair of components whose
// transformed footprints intersect with positive area. O(n²) on
// component count; no spatial index is used.
func (l *Layout) DetectOverlaps() []Overlap {
	ids := l.sortedIDs()
	shapes := make(map[string]geom.Shape, len(ids))
	for _, id := range ids {
		shapes[id] = l.components[id].ShapeWorld()
	}
	var overlaps []Overlap
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			area, ok := geom.Intersect(shapes[a], shapes[b])
			if ok && area > 0 {
				overlaps = append(overlaps, Overlap{A: a, B: b, Area: area})
			}
		}
	}
	return overlaps
}

// ResolveConflicts iteratively pushes overlapping component pairs apart.
// Each iteration recomputes every overlap, then for every (A,B,area)
// pair translates B by sqrt(area)+1 along the direction from A's
// position to B's position; every pair reported in an iteration is
// processed before overlaps are recomputed. Stops early once no
// overlaps remain, otherwise after maxIterations. Does not re-clamp
// into bounds: out-of-bounds drift is accepted.
//
// Returns the summed overlap area remaining when it stops: this is
// ResolveNonConvergence's observable, not an error (spec §7) — the
// individual simply keeps whatever (poorer) objective vector results.
func (l *Layout) ResolveConflicts(maxIterations int) float64 {
	for iter := 0; iter < maxIterations; iter++ {
		overlaps := l.DetectOverlaps()
		if len(overlaps) == 0 {
			return 0
		}
		for _, ov := range overlaps {
			a := l.components[ov.A]
			b := l.components[ov.B]
			angle := math.Atan2(b.Position.Y-a.Position.Y, b.Position.X-a.Position.X)
			distance := math.Sqrt(ov.Area) + 1
			newB := geom.Vec{
				X: b.Position.X + math.Cos(angle)*distance,
				Y: b.Position.Y + math.Sin(angle)*distance,
			}
			b.Move(newB)
		}
	}
	var residual float64
	for _, ov := range l.DetectOverlaps() {
		residual += ov.Area
	}
	return residual
}

// TotalPinDistance sums, over every link, 0.3·euclidean + 0.7·manhattan
// between the linked pins' world coordinates. The weights are fixed by
// spec.
func (l *Layout) TotalPinDistance() float64 {
	const alpha, beta = 0.3, 0.7
	var total float64
	for _, lk := range l.Links {
		p1, _ := l.Pin(lk.ComponentA, lk.PinA)
		p2, _ := l.Pin(lk.ComponentB, lk.PinB)
		dx, dy := p1.AX-p2.AX, p1.AY-p2.AY
		euclid := la.VecNorm([]float64{dx, dy})
		manhat := math.Abs(dx) + math.Abs(dy)
		total += alpha*euclid + beta*manhat
	}
	return total
}

// OccupiedArea returns the area of the axis-aligned bounding rectangle
// enclosing the union of every component's transformed footprint.
func (l *Layout) OccupiedArea() float64 {
	boxes := make([]geom.BBox, 0, len(l.components))
	for _, c := range l.components {
		boxes = append(boxes, geom.BoundingBox(c.ShapeWorld()))
	}
	return geom.UnionBBox(boxes).Area()
}

// MaxTemperature samples a uniform resolution×resolution grid over
// [0,width]×[0,height], summing every component's thermal_field at
// each point, and returns the maximum sample.
func (l *Layout) MaxTemperature(resolution int) float64 {
	if resolution < 1 {
		resolution = 1
	}
	xs := linspace(0, l.Width, resolution)
	ys := linspace(0, l.Height, resolution)
	grid := make([][]float64, resolution)
	for i := range grid {
		grid[i] = make([]float64, resolution)
	}
	for _, id := range l.sortedIDs() {
		l.components[id].ThermalFieldGrid(xs, ys, grid)
	}
	max := math.Inf(-1)
	for _, row := range grid {
		for _, v := range row {
			max = utl.Max(max, v)
		}
	}
	return max
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}
