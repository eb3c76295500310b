// Package nsga2 implements the non-dominated sorting and
// crowding-distance machinery of the NSGA-II core: dominance, fast
// non-dominated sort, crowding distance, binary tournament selection,
// and (μ+λ) elitist truncation.
package nsga2

import (
	"math"
	"math/rand"
	"sort"

	"github.com/boardforge/pcbopt/objective"
	"github.com/boardforge/pcbopt/pcberr"
)

// Dominates reports whether a dominates b: a is componentwise ≤ b and
// strictly less in at least one component. Dominance is antisymmetric:
// a never dominates itself, and if a dominates b then b does not
// dominate a.
func Dominates(a, b objective.Vector) bool {
	betterOrEqual := true
	strictlyBetter := false
	for i := range a {
		if a[i] > b[i] {
			betterOrEqual = false
			break
		}
		if a[i] < b[i] {
			strictlyBetter = true
		}
	}
	return betterOrEqual && strictlyBetter
}

// FastNonDominatedSort partitions objs into fronts (front 0 is the
// Pareto-optimal set of the input) and returns each individual's rank
// (its front index). Equal objective vectors neither dominate one
// another and may coexist on the same front. The returned fronts
// partition [0,len(objs)) exactly: every index appears in exactly one
// front.
func FastNonDominatedSort(objs []objective.Vector) (fronts [][]int, rank []int) {
	n := len(objs)
	dominationCount := make([]int, n)
	dominated := make([][]int, n)
	rank = make([]int, n)

	var front0 []int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch {
			case Dominates(objs[i], objs[j]):
				dominated[i] = append(dominated[i], j)
				dominationCount[j]++
			case Dominates(objs[j], objs[i]):
				dominated[j] = append(dominated[j], i)
				dominationCount[i]++
			}
		}
		if dominationCount[i] == 0 {
			front0 = append(front0, i)
		}
	}

	fronts = [][]int{front0}
	for f := 0; f < len(fronts); f++ {
		var next []int
		for _, i := range fronts[f] {
			rank[i] = f
			for _, j := range dominated[i] {
				dominationCount[j]--
				if dominationCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		if len(next) > 0 {
			fronts = append(fronts, next)
		}
	}
	return fronts, rank
}

// CrowdingDistance computes the crowding distance of every member of a
// single front. A front of size ≤ 2 assigns +∞ to every member.
// Otherwise, for each objective axis, the two extremes receive +∞ and
// every interior member accumulates (next-prev)/(max-min) on that
// axis; an axis with zero range contributes 0 to every member on that
// axis (including the extremes, which keep whatever +∞ they earned on
// other axes).
func CrowdingDistance(front []int, objs []objective.Vector) []float64 {
	n := len(front)
	dist := make([]float64, n)
	if n <= 2 {
		for i := range dist {
			dist[i] = math.Inf(1)
		}
		return dist
	}

	numObjectives := len(objs[0])
	for m := 0; m < numObjectives; m++ {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return objs[front[order[a]]][m] < objs[front[order[b]]][m]
		})

		lo := objs[front[order[0]]][m]
		hi := objs[front[order[n-1]]][m]
		rangeM := hi - lo
		if rangeM == 0 {
			continue
		}

		dist[order[0]] = math.Inf(1)
		dist[order[n-1]] = math.Inf(1)
		for k := 1; k < n-1; k++ {
			next := objs[front[order[k+1]]][m]
			prev := objs[front[order[k-1]]][m]
			dist[order[k]] += (next - prev) / rangeM
		}
	}
	return dist
}

// CrowdingDistanceAll computes the crowding distance of every
// individual in a population, given its fronts, and returns the result
// indexed by population index (not front-local index).
func CrowdingDistanceAll(fronts [][]int, objs []objective.Vector) []float64 {
	n := len(objs)
	out := make([]float64, n)
	for _, front := range fronts {
		cd := CrowdingDistance(front, objs)
		for k, i := range front {
			out[i] = cd[k]
		}
	}
	return out
}

// TournamentSelect samples two distinct indices uniformly from [0,n)
// and returns the better by (rank, crowding distance): lower rank
// wins; on equal rank, larger crowding distance wins; on both tied,
// the second sampled index wins (a fixed, documented tiebreak). n < 2
// returns an EmptyPopulation pcberr.
func TournamentSelect(rng *rand.Rand, n int, rank []int, crowding []float64) (int, error) {
	if n < 2 {
		return 0, pcberr.New(pcberr.EmptyPopulation, "tournament selection requires at least 2 individuals, got %d", n)
	}
	i := rng.Intn(n)
	j := i
	for j == i {
		j = rng.Intn(n)
	}
	if rank[i] < rank[j] {
		return i, nil
	}
	if rank[j] < rank[i] {
		return j, nil
	}
	if crowding[i] > crowding[j] {
		return i, nil
	}
	return j, nil
}

// Truncate selects mu indices out of objs (typically a combined
// parent+offspring population of size 2μ) by admitting whole fronts in
// ascending rank order until the next front would overflow mu, then
// ranking that boundary front by descending crowding distance and
// admitting just enough to reach mu exactly.
func Truncate(objs []objective.Vector, mu int) ([]int, error) {
	if mu < 1 {
		return nil, pcberr.New(pcberr.InvalidHyperparameter, "truncation target mu=%d must be >= 1", mu)
	}
	fronts, _ := FastNonDominatedSort(objs)
	selected := make([]int, 0, mu)
	for _, front := range fronts {
		if len(selected)+len(front) <= mu {
			selected = append(selected, front...)
			continue
		}
		crowding := CrowdingDistance(front, objs)
		order := make([]int, len(front))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return crowding[order[a]] > crowding[order[b]]
		})
		need := mu - len(selected)
		for _, idx := range order[:need] {
			selected = append(selected, front[idx])
		}
		break
	}
	return selected, nil
}
