package evolve

import (
	"context"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/boardforge/pcbopt/board"
	"github.com/boardforge/pcbopt/component"
	"github.com/boardforge/pcbopt/geom"
	"github.com/boardforge/pcbopt/nsga2"
)

func threeLinkTemplate(tst *testing.T) *board.Layout {
	c1 := component.New("C1", component.Rect, 20, 10, []component.Pin{
		{ID: "P1", RX: -5, RY: 0}, {ID: "P2", RX: 5, RY: 0},
	}, geom.Vec{X: 21, Y: 21}, 0, &component.ThermalProfile{CenterTemp: 100, DissipationLength: 15})

	c2 := component.New("C2", component.Disk, 15, 15, []component.Pin{
		{ID: "P3", RX: 0, RY: -3}, {ID: "P4", RX: 0, RY: 3},
	}, geom.Vec{X: 20, Y: 20}, 0, &component.ThermalProfile{CenterTemp: 100, DissipationLength: 15})

	c3 := component.New("C3", component.Rect, 10, 10, []component.Pin{
		{ID: "P5", RX: 0, RY: -3},
	}, geom.Vec{X: 20, Y: 20}, 0, &component.ThermalProfile{CenterTemp: 10, DissipationLength: 3})

	l, err := board.New(50, 50, []*component.Component{c1, c2, c3}, []board.Link{
		{ComponentA: "C1", PinA: "P2", ComponentB: "C2", PinB: "P3"},
		{ComponentA: "C3", PinA: "P5", ComponentB: "C2", PinB: "P4"},
		{ComponentA: "C1", PinA: "P1", ComponentB: "C3", PinB: "P5"},
	})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	return l
}

// TestEndToEndEvolution reproduces spec scenario 6.
func TestEndToEndEvolution(tst *testing.T) {
	chk.PrintTitle("EndToEndEvolution")
	template := threeLinkTemplate(tst)

	params := Params{
		Mu:           20,
		Generations:  10,
		K:            1,
		RotationRate: 0.4,
		PositionRate: 0.1,
	}

	rng := rand.New(rand.NewSource(42))
	result, err := Run(context.Background(), template, params, rng, nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	pareto := result.ParetoFront()
	if len(pareto) == 0 {
		tst.Fatalf("expected a non-empty Pareto front")
	}

	for i := range result.Objectives {
		for j := range result.Objectives {
			if i == j {
				continue
			}
			if nsga2.Dominates(result.Objectives[i], result.Objectives[j]) && result.Ranks[i] == 0 && result.Ranks[j] == 0 {
				tst.Errorf("front 0 must be an antichain: member %d dominates member %d", i, j)
			}
		}
	}

	randomRng := rand.New(rand.NewSource(43))
	randomPopulation := Seed(randomRng, template, params.Mu, 50)
	randomObjectives := make([]float64, len(randomPopulation))
	for i, l := range randomPopulation {
		randomObjectives[i] = l.TotalPinDistance()
	}

	evolvedWireMedian := result.MedianWire()
	randomWireMedian := medianOf(randomObjectives)
	if evolvedWireMedian > randomWireMedian*1.5 {
		tst.Errorf("evolved median wire length %v should not be wildly worse than random median %v", evolvedWireMedian, randomWireMedian)
	}
}

func medianOf(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func TestRunRejectsInvalidHyperparameters(tst *testing.T) {
	chk.PrintTitle("RunRejectsInvalidHyperparameters")
	template := threeLinkTemplate(tst)
	rng := rand.New(rand.NewSource(1))

	_, err := Run(context.Background(), template, Params{Mu: 2, Generations: 1, K: 1}, rng, nil)
	if err == nil {
		tst.Errorf("expected an error for mu < 4")
	}

	_, err = Run(context.Background(), template, Params{Mu: 4, Generations: 1, K: 99}, rng, nil)
	if err == nil {
		tst.Errorf("expected an error for k > n_components")
	}
}

func TestRunDeterministicForSameSeed(tst *testing.T) {
	chk.PrintTitle("RunDeterministicForSameSeed")
	template := threeLinkTemplate(tst)
	params := Params{Mu: 6, Generations: 3, K: 1, RotationRate: 0.3, PositionRate: 0.2}

	r1, err := Run(context.Background(), template, params, rand.New(rand.NewSource(99)), nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	r2, err := Run(context.Background(), template, params, rand.New(rand.NewSource(99)), nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	if len(r1.Objectives) != len(r2.Objectives) {
		tst.Fatalf("population sizes differ between runs")
	}
	for i := range r1.Objectives {
		chk.Scalar(tst, "tmax", 1e-9, r1.Objectives[i][0], r2.Objectives[i][0])
		chk.Scalar(tst, "area", 1e-9, r1.Objectives[i][1], r2.Objectives[i][1])
		chk.Scalar(tst, "wire", 1e-9, r1.Objectives[i][2], r2.Objectives[i][2])
	}
}
