package component

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"
)

// ValidateODE cross-checks the closed-form exponential decay
// CenterTemp*exp(-r/DissipationLength) against an implicit-solver
// integration of dT/dr = -T/DissipationLength out to radius r. It is a
// debug/test diagnostic only -- ThermalField and ThermalFieldGrid never
// call it on the evaluation hot path -- and returns an error if the two
// disagree by more than tol (relative).
func (t *ThermalProfile) ValidateODE(r, tol float64) error {
	if t == nil {
		return nil
	}

	fcn := func(f []float64, dx, x float64, y []float64) error {
		f[0] = -y[0] / t.DissipationLength
		return nil
	}
	jac := func(dfdy *la.Triplet, dx, x float64, y []float64) error {
		if dfdy.Max() == 0 {
			dfdy.Init(1, 1, 1)
		}
		dfdy.Start()
		dfdy.Put(0, 0, -1.0/t.DissipationLength)
		return nil
	}

	var solver ode.Solver
	solver.Init("Radau5", 1, fcn, jac, nil, nil)
	solver.SetTol(1e-10, 1e-10)
	solver.Distr = false

	y := []float64{t.CenterTemp}
	if err := solver.Solve(y, 0, r, r, false); err != nil {
		return chk.Err("thermal profile ODE validation failed: %v", err)
	}

	closedForm := t.CenterTemp * math.Exp(-r/t.DissipationLength)
	numeric := y[0]
	if closedForm == 0 {
		if math.Abs(numeric) > tol {
			return chk.Err("thermal profile ODE mismatch at r=%v: closed-form 0, numeric %v", r, numeric)
		}
		return nil
	}
	relErr := math.Abs(numeric-closedForm) / math.Abs(closedForm)
	if relErr > tol {
		return chk.Err("thermal profile ODE mismatch at r=%v: closed-form %v, numeric %v (rel err %v > tol %v)", r, closedForm, numeric, relErr, tol)
	}
	return nil
}
