package objective

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/boardforge/pcbopt/board"
	"github.com/boardforge/pcbopt/component"
	"github.com/boardforge/pcbopt/geom"
)

func trivialLayout(tst *testing.T, id string) *board.Layout {
	c := component.New(id, component.Rect, 10, 10, nil, geom.Vec{X: 10, Y: 10}, 0, &component.ThermalProfile{CenterTemp: 50, DissipationLength: 4})
	l, err := board.New(20, 20, []*component.Component{c}, nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	return l
}

func TestEvaluateOrder(tst *testing.T) {
	chk.PrintTitle("EvaluateOrder")
	l := trivialLayout(tst, "C1")
	v := Evaluate(l)
	chk.Scalar(tst, "area", 1e-9, v[Area], l.OccupiedArea())
	chk.Scalar(tst, "wire", 1e-9, v[Wire], l.TotalPinDistance())
	chk.Scalar(tst, "tmax", 1e-9, v[TMax], l.MaxTemperature(DefaultResolution))
}

func TestEvaluateAllMatchesSequential(tst *testing.T) {
	chk.PrintTitle("EvaluateAllMatchesSequential")
	layouts := []*board.Layout{
		trivialLayout(tst, "A"),
		trivialLayout(tst, "B"),
		trivialLayout(tst, "C"),
		trivialLayout(tst, "D"),
		trivialLayout(tst, "E"),
	}
	sequential := EvaluateAll(layouts, 1)
	parallel := EvaluateAll(layouts, 4)
	for i := range sequential {
		chk.Scalar(tst, "tmax", 1e-12, parallel[i][TMax], sequential[i][TMax])
		chk.Scalar(tst, "area", 1e-12, parallel[i][Area], sequential[i][Area])
		chk.Scalar(tst, "wire", 1e-12, parallel[i][Wire], sequential[i][Wire])
	}
}
