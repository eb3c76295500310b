// Package pcberr defines the fatal error taxonomy shared by the board,
// ga, nsga2 and evolve packages.
//
// Only fatal violations (at construction, at driver entry, or selection
// on too small a population) get a Kind here.
// NumericDegeneracy and ResolveNonConvergence are documented fallbacks,
// not errors, and therefore have none: see board.ResolveConflicts and
// nsga2.CrowdingDistance.
package pcberr

import "github.com/cpmech/gosl/chk"

// Kind identifies which invariant was violated.
type Kind int

const (
	// InvalidLayout: a link references an unknown component or pin.
	InvalidLayout Kind = iota
	// InvalidHyperparameter: μ, G, k or a mutation rate is out of range.
	InvalidHyperparameter
	// EmptyPopulation: selection attempted on fewer than two individuals.
	EmptyPopulation
)

func (k Kind) String() string {
	switch k {
	case InvalidLayout:
		return "InvalidLayout"
	case InvalidHyperparameter:
		return "InvalidHyperparameter"
	case EmptyPopulation:
		return "EmptyPopulation"
	default:
		return "Unknown"
	}
}

// Error is a kinded, formatted error.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// New builds a kinded error with a chk.Err-style formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: chk.Err(format, args...).Error()}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
