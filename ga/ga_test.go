package ga

import (
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/boardforge/pcbopt/board"
	"github.com/boardforge/pcbopt/component"
	"github.com/boardforge/pcbopt/geom"
)

func threeComponentTemplate(tst *testing.T) *board.Layout {
	c1 := component.New("C1", component.Rect, 10, 10, []component.Pin{{ID: "P1"}}, geom.Vec{X: 10, Y: 10}, 0, nil)
	c2 := component.New("C2", component.Rect, 10, 10, []component.Pin{{ID: "P2"}}, geom.Vec{X: 30, Y: 10}, 0, nil)
	c3 := component.New("C3", component.Disk, 8, 8, []component.Pin{{ID: "P3"}}, geom.Vec{X: 20, Y: 30}, 0, nil)
	l, err := board.New(60, 60, []*component.Component{c1, c2, c3}, []board.Link{
		{ComponentA: "C1", PinA: "P1", ComponentB: "C2", PinB: "P2"},
	})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	return l
}

func TestCrossoverLeavesParentsUntouched(tst *testing.T) {
	chk.PrintTitle("CrossoverLeavesParentsUntouched")
	rng := rand.New(rand.NewSource(7))
	p1 := threeComponentTemplate(tst)
	p2 := threeComponentTemplate(tst)
	c2comp, _ := p2.Component("C1")
	c2comp.Move(geom.Vec{X: 45, Y: 45})

	beforeP1, _ := p1.Component("C1")
	beforeX := beforeP1.Position.X

	_, _, err := Crossover(rng, p1, p2, 1, 50)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	afterP1, _ := p1.Component("C1")
	chk.Scalar(tst, "parent untouched", 1e-12, afterP1.Position.X, beforeX)
}

func TestCrossoverRejectsMismatchedIDSets(tst *testing.T) {
	chk.PrintTitle("CrossoverRejectsMismatchedIDSets")
	rng := rand.New(rand.NewSource(1))
	p1 := threeComponentTemplate(tst)

	c4 := component.New("C4", component.Rect, 5, 5, nil, geom.Vec{X: 5, Y: 5}, 0, nil)
	c1 := component.New("C1", component.Rect, 10, 10, []component.Pin{{ID: "P1"}}, geom.Vec{X: 10, Y: 10}, 0, nil)
	other, err := board.New(60, 60, []*component.Component{c1, c4}, nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	_, _, err = Crossover(rng, p1, other, 1, 50)
	if err == nil {
		tst.Fatalf("expected an error for mismatched component-id sets")
	}
}

func TestCrossoverRejectsKOutOfRange(tst *testing.T) {
	chk.PrintTitle("CrossoverRejectsKOutOfRange")
	rng := rand.New(rand.NewSource(1))
	p1 := threeComponentTemplate(tst)
	p2 := threeComponentTemplate(tst)

	if _, _, err := Crossover(rng, p1, p2, 0, 50); err == nil {
		tst.Errorf("expected an error for k=0")
	}
	if _, _, err := Crossover(rng, p1, p2, 4, 50); err == nil {
		tst.Errorf("expected an error for k > n_components")
	}
}

func TestMutateRotationRespectsZeroRate(tst *testing.T) {
	chk.PrintTitle("MutateRotationRespectsZeroRate")
	rng := rand.New(rand.NewSource(3))
	l := threeComponentTemplate(tst)
	before := snapshotRotations(l)

	MutateRotation(rng, l, 0, 50)

	after := snapshotRotations(l)
	for id, rot := range before {
		chk.Scalar(tst, id+" rotation unchanged", 1e-12, after[id], rot)
	}
}

func snapshotRotations(l *board.Layout) map[string]float64 {
	out := make(map[string]float64)
	for id, c := range l.Components() {
		out[id] = c.RotationDeg
	}
	return out
}
