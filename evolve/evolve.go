// Package evolve implements the driver loop: seeding a population from
// a template layout, then iterating selection, crossover, mutation and
// elitist truncation for a fixed number of generations.
package evolve

import (
	"context"
	"math/rand"
	"sort"

	"github.com/boardforge/pcbopt/board"
	"github.com/boardforge/pcbopt/ga"
	"github.com/boardforge/pcbopt/nsga2"
	"github.com/boardforge/pcbopt/objective"
	"github.com/boardforge/pcbopt/pcberr"
)

// Params bundles the driver's hyperparameters. Validate enforces the
// ranges spec §6 mandates at driver entry: μ≥4, G≥1, 1≤k≤n_components,
// rates ∈ [0,1].
type Params struct {
	Mu                   int
	Generations          int
	K                    int
	RotationRate         float64
	PositionRate         float64
	MaxResolveIterations int
	EvaluationWorkers    int
}

// Validate checks Params against spec §6's hyperparameter ranges and
// against the template's component count for k. Pass 0 for
// MaxResolveIterations and EvaluationWorkers to take their documented
// defaults (50 and sequential, respectively).
func (p Params) Validate(nComponents int) error {
	if p.Mu < 4 {
		return pcberr.New(pcberr.InvalidHyperparameter, "population size mu=%d must be >= 4", p.Mu)
	}
	if p.Generations < 1 {
		return pcberr.New(pcberr.InvalidHyperparameter, "generations=%d must be >= 1", p.Generations)
	}
	if p.K < 1 || p.K > nComponents {
		return pcberr.New(pcberr.InvalidHyperparameter, "crossover arity k=%d out of range [1,%d]", p.K, nComponents)
	}
	if p.RotationRate < 0 || p.RotationRate > 1 {
		return pcberr.New(pcberr.InvalidHyperparameter, "rotation mutation rate %v out of range [0,1]", p.RotationRate)
	}
	if p.PositionRate < 0 || p.PositionRate > 1 {
		return pcberr.New(pcberr.InvalidHyperparameter, "position mutation rate %v out of range [0,1]", p.PositionRate)
	}
	return nil
}

func (p Params) resolveIterations() int {
	if p.MaxResolveIterations <= 0 {
		return 50
	}
	return p.MaxResolveIterations
}

// Result is the outcome of one generation (or the final generation):
// the population, its objective vectors, NSGA-II ranks, and crowding
// distances, all index-aligned with Population.
type Result struct {
	Population []*board.Layout
	Objectives []objective.Vector
	Ranks      []int
	Crowding   []float64
}

// ParetoFront returns front 0 of Result's non-dominated sort: the
// members of Population with rank 0.
func (r Result) ParetoFront() []*board.Layout {
	var out []*board.Layout
	for i, rk := range r.Ranks {
		if rk == 0 {
			out = append(out, r.Population[i])
		}
	}
	return out
}

// MedianWire returns the median total_pin_distance objective across
// the result's population, used (per original_source/Plots.py and
// main.py) to compare an evolved population's wiring against a fresh
// random one.
func (r Result) MedianWire() float64 {
	vals := make([]float64, len(r.Objectives))
	for i, o := range r.Objectives {
		vals[i] = o[objective.Wire]
	}
	return median(vals)
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Progress is an optional per-generation hook: the ambient logging
// seam a caller (e.g. cmd/pcbopt) wires to its own reporting.
type Progress func(generation int, res Result)

// Seed produces mu layouts by cloning template, randomizing placement,
// and resolving conflicts — spec §4.7 step 1.
func Seed(rng *rand.Rand, template *board.Layout, mu int, maxResolveIterations int) []*board.Layout {
	population := make([]*board.Layout, mu)
	for i := 0; i < mu; i++ {
		l := template.Clone()
		l.RandomPlacement(rng)
		l.ResolveConflicts(maxResolveIterations)
		population[i] = l
	}
	return population
}

// Run seeds a population from template and iterates params.Generations
// generations of evaluate→sort→select→recombine→mutate→truncate (spec
// §4.7 step 2), returning the final population (spec §4.7 step 3).
//
// rng is the single injected RNG: every stochastic draw in seeding,
// selection, crossover and mutation routes through it, so an identical
// seed and template yield a bit-identical final population under
// single-threaded evaluation (params.EvaluationWorkers <= 1).
//
// ctx is checked once per generation boundary as a courtesy stop point
// for the ambient driver; the core itself has no cancellation protocol
// (spec §5) and a generation already in progress always runs to
// completion.
func Run(ctx context.Context, template *board.Layout, params Params, rng *rand.Rand, progress Progress) (Result, error) {
	if err := params.Validate(len(template.Components())); err != nil {
		return Result{}, err
	}
	resolveIters := params.resolveIterations()

	population := Seed(rng, template, params.Mu, resolveIters)
	objectives := objective.EvaluateAll(population, params.EvaluationWorkers)
	fronts, ranks := nsga2.FastNonDominatedSort(objectives)
	crowding := nsga2.CrowdingDistanceAll(fronts, objectives)

	result := Result{Population: population, Objectives: objectives, Ranks: ranks, Crowding: crowding}

	for g := 0; g < params.Generations; g++ {
		if ctx != nil && ctx.Err() != nil {
			return result, ctx.Err()
		}

		offspring, err := nextOffspring(rng, population, ranks, crowding, params, resolveIters)
		if err != nil {
			return result, err
		}
		offspringObjectives := objective.EvaluateAll(offspring, params.EvaluationWorkers)

		mixedPopulation := append(append([]*board.Layout(nil), population...), offspring...)
		mixedObjectives := append(append([]objective.Vector(nil), objectives...), offspringObjectives...)

		selected, err := nsga2.Truncate(mixedObjectives, params.Mu)
		if err != nil {
			return result, err
		}

		population = make([]*board.Layout, len(selected))
		objectives = make([]objective.Vector, len(selected))
		for i, idx := range selected {
			population[i] = mixedPopulation[idx]
			objectives[i] = mixedObjectives[idx]
		}

		fronts, ranks = nsga2.FastNonDominatedSort(objectives)
		crowding = nsga2.CrowdingDistanceAll(fronts, objectives)
		result = Result{Population: population, Objectives: objectives, Ranks: ranks, Crowding: crowding}

		if progress != nil {
			progress(g+1, result)
		}
	}

	return result, nil
}

// nextOffspring produces exactly params.Mu children via repeated
// binary-tournament selection, crossover, and mutation — spec §4.7
// step 2c/2d.
func nextOffspring(rng *rand.Rand, population []*board.Layout, ranks []int, crowding []float64, params Params, resolveIters int) ([]*board.Layout, error) {
	offspring := make([]*board.Layout, 0, params.Mu+1)
	for len(offspring) < params.Mu {
		i, err := nsga2.TournamentSelect(rng, len(population), ranks, crowding)
		if err != nil {
			return nil, err
		}
		j, err := nsga2.TournamentSelect(rng, len(population), ranks, crowding)
		if err != nil {
			return nil, err
		}

		child1, child2, err := ga.Crossover(rng, population[i], population[j], params.K, resolveIters)
		if err != nil {
			return nil, err
		}

		ga.MutateRotation(rng, child1, params.RotationRate, resolveIters)
		ga.MutatePosition(rng, child1, params.PositionRate, resolveIters)
		ga.MutateRotation(rng, child2, params.RotationRate, resolveIters)
		ga.MutatePosition(rng, child2, params.PositionRate, resolveIters)

		offspring = append(offspring, child1, child2)
	}
	return offspring[:params.Mu], nil
}
