package engine

import (
	"math"
	"testing"

	"github.com/mcclellann/loanengine/pkg/models"
)

func TestCanSolve_InvalidUnknown(t *testing.T) {
	e := newTestEngine()
	l := models.Defaults()
	if e.CanSolve(l, Unknown("asdf")) {
		t.Error("Expected false for an unknown parameter")
	}
	if e.CanSolve(l, "") {
		t.Error("Expected false for an empty parameter")
	}
	if got := e.Solve(l, Unknown("asdf")); got == nil || len(got) != 0 {
		t.Errorf("Expected an empty solution, got %v", got)
	}
}

func TestCanSolve_Instalments(t *testing.T) {
	e := newTestEngine()

	l := models.Defaults()
	l.Principal = 10000
	if e.CanSolve(l, UnknownInstalments) {
		t.Error("Expected false without monthly_cost")
	}

	l.InterestRate = 0.05
	if e.CanSolve(l, UnknownInstalments) {
		t.Error("Expected false without monthly_cost")
	}

	l.Data.MonthlyCost = models.Float(3000)
	if !e.CanSolve(l, UnknownInstalments) {
		t.Error("Expected true with principal, interest_rate and monthly_cost")
	}

	l.Principal = math.NaN()
	if e.CanSolve(l, UnknownInstalments) {
		t.Error("Expected false with a non-finite principal")
	}
}

func TestSolve_InstalmentsNotPossible(t *testing.T) {
	e := newTestEngine()
	if got := e.Solve(models.Defaults(), UnknownInstalments); len(got) != 0 {
		t.Errorf("Expected an empty solution, got %v", got)
	}
}

func TestSolve_Instalments(t *testing.T) {
	e := newTestEngine()

	known := models.New(models.Params{
		Principal:    models.Float(200000),
		InterestRate: models.Float(0.05),
		Instalments:  models.Int(24),
	})
	payment := e.PaymentPlan(known)[0].ToPay

	l := models.New(models.Params{
		Principal:    models.Float(200000),
		InterestRate: models.Float(0.05),
		Data:         &models.Meta{MonthlyCost: models.Float(payment)},
	})
	got := e.Solve(l, UnknownInstalments)
	n, ok := got[UnknownInstalments]
	if !ok {
		t.Fatalf("Expected a solution for instalments, got %v", got)
	}
	assertApprox(t, "instalments", n, 24, 1e-6)

	l.Instalments = int(math.Round(n))
	l.Data.MonthlyCost = nil
	e.CalculateMeta(&l)
	assertApprox(t, "monthly_cost", *l.Data.MonthlyCost, payment, 1e-6)
}

func TestSolve_InstalmentsZeroRate(t *testing.T) {
	e := newTestEngine()
	l := models.New(models.Params{
		Principal: models.Float(12000),
		Data:      &models.Meta{MonthlyCost: models.Float(1000)},
	})
	got := e.Solve(l, UnknownInstalments)
	if got[UnknownInstalments] != 12 {
		t.Errorf("Expected 12 instalments, got %v", got)
	}
}

func TestSolve_InstalmentsPaymentBelowInterest(t *testing.T) {
	e := newTestEngine()
	l := models.New(models.Params{
		Principal:    models.Float(200000),
		InterestRate: models.Float(0.05),
		Data:         &models.Meta{MonthlyCost: models.Float(500)},
	})
	if got := e.Solve(l, UnknownInstalments); len(got) != 0 {
		t.Errorf("Expected an empty solution when the payment never covers the interest, got %v", got)
	}
}

func TestSolve_Principal(t *testing.T) {
	e := newTestEngine()
	known := models.New(models.Params{
		Principal:    models.Float(200000),
		InterestRate: models.Float(0.05),
		Instalments:  models.Int(24),
	})
	payment := e.PaymentPlan(known)[0].ToPay

	l := known
	l.Principal = 0
	if e.CanSolve(l, UnknownPrincipal) {
		t.Error("Expected false without monthly_cost")
	}
	l.Data.MonthlyCost = models.Float(payment)

	got := e.Solve(l, UnknownPrincipal)
	assertApprox(t, "principal", got[UnknownPrincipal], 200000, 1e-6)

	l.Instalments = 0
	if e.CanSolve(l, UnknownPrincipal) {
		t.Error("Expected false without instalments")
	}
}

type fixedSolver struct{ value float64 }

func (fixedSolver) CanSolve(e *Engine, l models.Loan) bool { return l.Principal > 0 }

func (s fixedSolver) Solve(e *Engine, l models.Loan) Solution {
	return Solution{"interest_rate": s.value}
}

func TestWithSolver(t *testing.T) {
	e := newTestEngine(WithSolver("interest_rate", fixedSolver{value: 0.042}))

	l := models.Defaults()
	if e.CanSolve(l, "interest_rate") {
		t.Error("Expected the registered solver to decide, got true")
	}
	l.Principal = 1
	got := e.Solve(l, "interest_rate")
	if got["interest_rate"] != 0.042 {
		t.Errorf("Expected 0.042, got %v", got)
	}
}
