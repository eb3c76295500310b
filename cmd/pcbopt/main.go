// Command pcbopt is a thin demonstration driver around the pcbopt
// core: it builds a seed layout, runs the evolutionary loop, and
// prints a summary of the resulting Pareto front. It is an external
// collaborator, not part of the optimization core (spec.md §1).
package main

import (
	"context"
	"flag"
	"math/rand"

	"github.com/cpmech/gosl/io"

	"github.com/boardforge/pcbopt/board"
	"github.com/boardforge/pcbopt/component"
	"github.com/boardforge/pcbopt/evolve"
	"github.com/boardforge/pcbopt/geom"
)

func main() {
	mu := flag.Int("mu", 20, "population size")
	generations := flag.Int("generations", 10, "number of generations")
	k := flag.Int("k", 1, "crossover arity")
	rotRate := flag.Float64("rotrate", 0.4, "rotation mutation rate")
	posRate := flag.Float64("posrate", 0.1, "position mutation rate")
	seed := flag.Int64("seed", 42, "rng seed")
	plot := flag.Bool("plot", false, "render the final Pareto front with gosl/plt")
	flag.Parse()

	io.PfWhite("\npcbopt -- PCB placement NSGA-II optimizer\n\n")

	template := seedTemplate()

	params := evolve.Params{
		Mu:           *mu,
		Generations:  *generations,
		K:            *k,
		RotationRate: *rotRate,
		PositionRate: *posRate,
	}

	progress := func(generation int, res evolve.Result) {
		io.Pf("generation %3d: front-0 size=%-3d median wire=%8.2f\n",
			generation, len(res.ParetoFront()), res.MedianWire())
	}

	rng := rand.New(rand.NewSource(*seed))
	result, err := evolve.Run(context.Background(), template, params, rng, progress)
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		return
	}

	pareto := result.ParetoFront()
	io.PfYel("\nfinal Pareto front: %d individuals\n", len(pareto))
	for i, l := range pareto {
		obj := result.Objectives[indexOf(result.Population, l)]
		io.Pf("  #%02d  Tmax=%8.2f  area=%10.2f  wire=%8.2f\n", i, obj[0], obj[1], obj[2])
	}

	if *plot {
		plotParetoFront(result)
	}
}

func indexOf(population []*board.Layout, target *board.Layout) int {
	for i, l := range population {
		if l == target {
			return i
		}
	}
	return -1
}

// seedTemplate builds the three-component, three-link board used
// throughout spec.md's worked examples: a rectangular and a disk
// component linked for wiring, plus a small hot rectangular component.
func seedTemplate() *board.Layout {
	c1 := component.New("C1", component.Rect, 20, 10, []component.Pin{
		{ID: "P1", RX: -5, RY: 0},
		{ID: "P2", RX: 5, RY: 0},
	}, geom.Vec{X: 21, Y: 21}, 0, &component.ThermalProfile{CenterTemp: 100, DissipationLength: 15})

	c2 := component.New("C2", component.Disk, 15, 15, []component.Pin{
		{ID: "P3", RX: 0, RY: -3},
		{ID: "P4", RX: 0, RY: 3},
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
		io.PfRed("ERROR building seed template: %v\n", err)
		panic(err)
	}
	return l
}
