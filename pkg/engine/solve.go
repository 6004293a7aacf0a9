package engine

import (
	"math"

	"github.com/mcclellann/loanengine/pkg/models"
	"github.com/mcclellann/loanengine/pkg/numeric"
)

// Unknown names a loan parameter that can be derived from the others.
type Unknown string

const (
	UnknownInstalments Unknown = "instalments"
	UnknownPrincipal   Unknown = "principal"
)

// Solution holds the derived values keyed by the parameter they belong to.
type Solution map[Unknown]float64

// Solver derives one unknown parameter of a loan.
type Solver interface {
	// CanSolve reports whether l holds everything Solve needs.
	CanSolve(e *Engine, l models.Loan) bool
	// Solve derives the parameter. It is only called when CanSolve is true
	// and returns an empty Solution when no finite value exists.
	Solve(e *Engine, l models.Loan) Solution
}

func defaultSolvers() map[Unknown]Solver {
	return map[Unknown]Solver{
		UnknownInstalments: instalmentsSolver{},
		UnknownPrincipal:   principalSolver{},
	}
}

// CanSolve reports whether the unknown u can be derived from l.
func (e *Engine) CanSolve(l models.Loan, u Unknown) bool {
	s, ok := e.solvers[u]
	return ok && s.CanSolve(e, l)
}

// Solve derives the unknown u from l. It returns an empty Solution when
// u is unknown to the engine or l lacks the values needed.
func (e *Engine) Solve(l models.Loan, u Unknown) Solution {
	if !e.CanSolve(l, u) {
		return Solution{}
	}
	return e.solvers[u].Solve(e, l)
}

// instalmentsSolver finds the number of instalments an annuity needs to
// pay off the principal with the monthly cost as payment.
type instalmentsSolver struct{}

func (instalmentsSolver) CanSolve(e *Engine, l models.Loan) bool {
	return numeric.IsFinite(l.Principal) &&
		numeric.IsFinite(e.PeriodicRate(l)) &&
		l.Data.MonthlyCost != nil && numeric.IsFinite(*l.Data.MonthlyCost)
}

func (instalmentsSolver) Solve(e *Engine, l models.Loan) Solution {
	r := e.PeriodicRate(l)
	A := *l.Data.MonthlyCost
	P := l.Principal

	var n float64
	if r == 0 {
		n = P / A
	} else {
		n = -math.Log(1-P*r/A) / math.Log(1+r)
	}
	if !numeric.IsFinite(n) {
		return Solution{}
	}
	return Solution{UnknownInstalments: n}
}

// principalSolver finds the principal an annuity with the given number of
// instalments and monthly cost pays off.
type principalSolver struct{}

func (principalSolver) CanSolve(e *Engine, l models.Loan) bool {
	return l.Instalments >= 1 &&
		numeric.IsFinite(e.PeriodicRate(l)) &&
		l.Data.MonthlyCost != nil && numeric.IsFinite(*l.Data.MonthlyCost)
}

func (principalSolver) Solve(e *Engine, l models.Loan) Solution {
	r := e.PeriodicRate(l)
	A := *l.Data.MonthlyCost
	n := float64(l.Instalments)

	var P float64
	if r == 0 {
		P = A * n
	} else {
		P = A * (1 - math.Pow(1+r, -n)) / r
	}
	if !numeric.IsFinite(P) {
		return Solution{}
	}
	return Solution{UnknownPrincipal: P}
}
