package main

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"

	"github.com/boardforge/pcbopt/evolve"
	"github.com/boardforge/pcbopt/objective"
)

// plotParetoFront renders two 2-D projections of the final front
// (area vs temperature, and area vs wire length) one above the other, the
// way the original Plots.py projected its 3-D scatter for a static
// report image.
func plotParetoFront(res evolve.Result) {
	pareto := res.ParetoFront()
	tmax := make([]float64, 0, len(pareto))
	area := make([]float64, 0, len(pareto))
	wire := make([]float64, 0, len(pareto))
	for _, l := range pareto {
		obj := res.Objectives[indexOf(res.Population, l)]
		tmax = append(tmax, obj[objective.TMax])
		area = append(area, obj[objective.Area])
		wire = append(wire, obj[objective.Wire])
	}

	plt.SetForEps(0.75, 350)

	plt.Subplot(2, 1, 1)
	plt.Plot(area, tmax, "'o', color='#2a6099', clip_on=0")
	plt.Gll("area", "Tmax", "")

	plt.Subplot(2, 1, 2)
	plt.Plot(area, wire, "'o', color='#993333', clip_on=0")
	plt.Gll("area", "wire", "")

	if err := plt.SaveD("/tmp", "pcbopt_pareto.eps"); err != nil {
		io.PfRed("ERROR saving plot: %v\n", err)
	}
}
