// Package ga implements the genetic operators: clone-based crossover
// and the two mutation operators (rotation, position). Every operator
// works on a freshly-cloned layout and never mutates its parent(s).
package ga

import (
	"math"
	"math/rand"
	"sort"

	"github.com/boardforge/pcbopt/board"
	"github.com/boardforge/pcbopt/component"
	"github.com/boardforge/pcbopt/geom"
	"github.com/boardforge/pcbopt/pcberr"
)

// Crossover clones parent1 and parent2 into child1 and child2, samples
// k distinct component identifiers uniformly without replacement from
// the shared identifier set, and for each swaps the two children's
// corresponding components' pose (position, rotation), re-deriving pin
// coordinates, before resolving conflicts on each child independently.
//
// Per the spec's crossover-sampling open question, Crossover asserts
// (rather than silently tolerates) that parent1 and parent2 share an
// identical component-id set; a mismatch, or k outside [1,n], returns
// an InvalidHyperparameter pcberr.
func Crossover(rng *rand.Rand, parent1, parent2 *board.Layout, k int, maxResolveIterations int) (child1, child2 *board.Layout, err error) {
	ids1 := sortedIDs(parent1)
	ids2 := sortedIDs(parent2)
	if !sameIDSet(ids1, ids2) {
		return nil, nil, pcberr.New(pcberr.InvalidHyperparameter, "crossover parents do not share an identical component-id set")
	}
	if k < 1 || k > len(ids1) {
		return nil, nil, pcberr.New(pcberr.InvalidHyperparameter, "crossover arity k=%d out of range [1,%d]", k, len(ids1))
	}

	child1 = parent1.Clone()
	child2 = parent2.Clone()

	chosen := sampleDistinct(rng, ids1, k)
	for _, id := range chosen {
		c1, _ := child1.Component(id)
		c2, _ := child2.Component(id)
		swapPose(c1, c2)
	}

	child1.ResolveConflicts(maxResolveIterations)
	child2.ResolveConflicts(maxResolveIterations)
	return child1, child2, nil
}

func swapPose(a, b *component.Component) {
	aPos, aRot := a.Position, a.RotationDeg
	bPos, bRot := b.Position, b.RotationDeg
	a.Move(bPos)
	a.Rotate(bRot - a.RotationDeg)
	b.Move(aPos)
	b.Rotate(aRot - b.RotationDeg)
}

func sortedIDs(l *board.Layout) []string {
	ids := make([]string, 0, len(l.Components()))
	for id := range l.Components() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}

// sampleDistinct draws k distinct elements from ids uniformly without
// replacement, via a partial Fisher-Yates shuffle on a copy.
func sampleDistinct(rng *rand.Rand, ids []string, k int) []string {
	pool := append([]string(nil), ids...)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// MutateRotation rotates one uniformly-chosen component by an integer
// angle uniform over [0,359], with probability rate, then resolves
// conflicts. l is mutated in place and must already be an
// individual's own clone, not a shared parent.
func MutateRotation(rng *rand.Rand, l *board.Layout, rate float64, maxResolveIterations int) {
	if rng.Float64() >= rate {
		return
	}
	c := randomComponent(rng, l)
	if c == nil {
		return
	}
	angle := float64(rng.Intn(360))
	c.Rotate(angle)
	l.ResolveConflicts(maxResolveIterations)
}

// MutatePosition moves one uniformly-chosen component to a point drawn
// uniformly from [d,width-d]×[d,height-d], where d=max(size_x,size_y),
// with probability rate, then resolves conflicts. l is mutated in
// place and must already be an individual's own clone.
func MutatePosition(rng *rand.Rand, l *board.Layout, rate float64, maxResolveIterations int) {
	if rng.Float64() >= rate {
		return
	}
	c := randomComponent(rng, l)
	if c == nil {
		return
	}
	d := math.Max(c.SizeX, c.SizeY)
	x := uniformClamped(rng, d, l.Width-d)
	y := uniformClamped(rng, d, l.Height-d)
	c.Move(geom.Vec{X: x, Y: y})
	l.ResolveConflicts(maxResolveIterations)
}

func uniformClamped(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

func randomComponent(rng *rand.Rand, l *board.Layout) *component.Component {
	ids := sortedIDs(l)
	if len(ids) == 0 {
		return nil
	}
	id := ids[rng.Intn(len(ids))]
	c, _ := l.Component(id)
	return c
}
