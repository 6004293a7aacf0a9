package engine

import (
	"time"

	"github.com/mcclellann/loanengine/pkg/models"
	"go.uber.org/zap"
)

// Amortize returns the loan as it will be (or was) at the date to, using
// its payment plan. A zero to means now.
//
// Dates before the as-of date give the current period. Once every
// instalment is paid the loan is returned with no principal and no
// instalments left. The result always carries fresh meta fields, also
// for locked loans: Locked and Data.Extra carry over, the derived fields
// are recalculated for the projected state.
func (e *Engine) Amortize(l models.Loan, to time.Time) models.Loan {
	if to.IsZero() {
		to = e.now()
	}
	plan := e.PaymentPlan(l)
	diff := max(periodsBetween(e.AsOf(l), to, l.PayEvery), 0)

	if len(plan) == 0 {
		return e.projectedMeta(models.Defaults())
	}

	if diff >= l.Instalments {
		last := plan[len(plan)-1].Clone()
		last.Principal = 0
		last.Instalments = 0
		last.Instalment++
		e.logger.Debug("loan fully amortized",
			zap.String("op", "engine.Amortize"),
			zap.Int("periods", diff),
			zap.Int("instalments", l.Instalments),
		)
		return e.projectedMeta(last)
	}

	return e.projectedMeta(plan[diff])
}

// projectedMeta recalculates every derived meta field of a projected
// snapshot regardless of its Locked flag.
func (e *Engine) projectedMeta(l models.Loan) models.Loan {
	locked := l.Locked
	l.Locked = false
	out := e.WithMeta(l)
	out.Locked = locked
	return out
}
