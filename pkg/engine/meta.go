package engine

import (
	"time"

	"github.com/mcclellann/loanengine/pkg/models"
)

// TotalCost returns what the loan costs on top of the principal: every
// fee and every interest payment left in the plan.
func (e *Engine) TotalCost(l models.Loan) float64 {
	if l.Instalments < 1 {
		return 0
	}
	total := 0.0
	for _, p := range e.PaymentPlan(l) {
		total += p.InvoiceFee + p.InitialFee + p.Interest
	}
	return total
}

// ShouldAmortize reports whether at least one full period has passed
// between the loan's as-of date and compare. A zero compare means now.
// Loans without instalments or principal left never amortize.
func (e *Engine) ShouldAmortize(l models.Loan, compare time.Time) bool {
	if l.Instalments <= 0 || l.Principal <= 0 {
		return false
	}
	if compare.IsZero() {
		compare = e.now()
	}
	return periodStart(e.AsOf(l), l.PayEvery).Before(periodStart(compare, l.PayEvery))
}

// WithMeta returns a copy of l whose Data holds freshly calculated
// effective rate, should-amortize flag, monthly cost and total cost.
// On a locked loan fields already present in Data are left as they are.
func (e *Engine) WithMeta(l models.Loan) models.Loan {
	out := l.Clone()
	data := &out.Data

	monthly := 0.0
	if plan := e.PaymentPlan(l); len(plan) > 0 {
		monthly = plan[0].ToPay + plan[0].InvoiceFee
	}

	if !l.Locked || !data.Has(models.MetaInterestRateEffective) {
		data.InterestRateEffective = models.Float(e.EffectiveRate(l, MethodSecant))
	}
	if !l.Locked || !data.Has(models.MetaShouldAmortize) {
		data.ShouldAmortize = models.Bool(e.ShouldAmortize(l, time.Time{}))
	}
	if !l.Locked || !data.Has(models.MetaMonthlyCost) {
		data.MonthlyCost = models.Float(monthly)
	}
	if !l.Locked || !data.Has(models.MetaTotalCost) {
		data.TotalCost = models.Float(e.TotalCost(l))
	}
	return out
}

// CalculateMeta stores the derived fields of WithMeta in l.Data and
// returns them. It is the only engine operation that modifies its
// argument; callers sharing l between goroutines must serialize calls.
func (e *Engine) CalculateMeta(l *models.Loan) models.Meta {
	l.Data = e.WithMeta(*l).Data
	return l.Data
}
