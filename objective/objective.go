// Package objective packages a Layout's three minimization measures
// (peak temperature, bounding area, total link distance) into a fixed
// Vector, and optionally fans a batch of layouts out across a worker
// pool — the only concurrency the optimization core uses.
package objective

import (
	"sync"

	"github.com/boardforge/pcbopt/board"
)

// Vector is the fixed-order objective triple: (T_max, area, wire). All
// three are minimization objectives.
type Vector [3]float64

// Index names for Vector's three slots.
const (
	TMax = 0
	Area = 1
	Wire = 2
)

// DefaultResolution is the grid resolution MaxTemperature samples at
// when a caller does not need a different accuracy/speed tradeoff.
const DefaultResolution = 100

// Evaluate computes a layout's objective vector: peak temperature over
// a DefaultResolution grid, occupied bounding-box area, and total link
// distance, in that fixed order.
func Evaluate(l *board.Layout) Vector {
	return Vector{
		TMax: l.MaxTemperature(DefaultResolution),
		Area: l.OccupiedArea(),
		Wire: l.TotalPinDistance(),
	}
}

// EvaluateAll evaluates every layout in layouts, splitting the work
// across workers goroutines when workers > 1. Each goroutine reads a
// disjoint index range and writes to a disjoint output slot, so no
// individual's evaluation can race with another's: the recommended
// (spec §5) embarrassingly-parallel evaluation phase. workers <= 1
// (or a batch too small to split) runs sequentially with no goroutines
// spawned, and is equivalent to mapping Evaluate over layouts.
func EvaluateAll(layouts []*board.Layout, workers int) []Vector {
	out := make([]Vector, len(layouts))
	if workers <= 1 || len(layouts) < 2 {
		for i, l := range layouts {
			out[i] = Evaluate(l)
		}
		return out
	}
	if workers > len(layouts) {
		workers = len(layouts)
	}
	chunk := (len(layouts) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= len(layouts) {
			break
		}
		if end > len(layouts) {
			end = len(layouts)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = Evaluate(layouts[i])
			}
		}(start, end)
	}
	wg.Wait()
	return out
}
