package engine

import (
	"math"

	"github.com/mcclellann/loanengine/pkg/models"
	"github.com/mcclellann/loanengine/pkg/numeric"
	"go.uber.org/zap"
)

// periodsPerYear maps a payment period to the number of instalments in a
// year.
var periodsPerYear = map[models.PayEvery]float64{
	models.PayEveryMonth:   12,
	models.PayEveryQuarter: 4,
	models.PayEveryYear:    1,
}

// PeriodicRate returns the nominal interest rate of one instalment
// period. Unknown periods and non-finite rates give 0.
func (e *Engine) PeriodicRate(l models.Loan) float64 {
	n, ok := periodsPerYear[l.PayEvery]
	if !ok || !numeric.IsFinite(l.InterestRate) {
		return 0
	}
	return l.InterestRate / n
}

// planner builds the entries of a payment plan for one amortization
// scheme. rate is the periodic interest rate.
type planner func(e *Engine, l models.Loan, rate float64) []models.Loan

var planners = map[models.LoanType]planner{
	models.LoanTypeSerial:  (*Engine).serialPlan,
	models.LoanTypeAnnuity: (*Engine).annuityPlan,
}

// PaymentPlan returns one entry per remaining instalment, oldest first.
// A loan with a periodic rate of zero is always planned as serial.
// Loans of an unknown type get an empty plan.
func (e *Engine) PaymentPlan(l models.Loan) []models.Loan {
	if l.Instalments < 1 {
		return []models.Loan{}
	}

	rate := e.PeriodicRate(l)
	typ := l.Type
	if rate == 0 {
		typ = models.LoanTypeSerial
	}

	plan, ok := planners[typ]
	if !ok {
		e.logger.Warn("unknown loan type, no payment plan generated",
			zap.String("op", "engine.PaymentPlan"),
			zap.String("type", string(l.Type)),
		)
		return []models.Loan{}
	}
	return plan(e, l, rate)
}

// serialPlan keeps the amortization constant. The first entry carries the
// stated principal as is.
func (e *Engine) serialPlan(l models.Loan, rate float64) []models.Loan {
	amortization := l.Principal / float64(l.Instalments)

	if l.Amortization != 0 && math.Abs(l.Amortization-amortization) > 1e-9*math.Max(1, math.Abs(amortization)) {
		e.logger.Warn("stored amortization disagrees with principal/instalments",
			zap.String("op", "engine.serialPlan"),
			zap.Float64("stored", l.Amortization),
			zap.Float64("computed", amortization),
			zap.Float64("principal", l.Principal),
			zap.Int("instalments", l.Instalments),
		)
	}

	plan := make([]models.Loan, 0, l.Instalments)
	for k := 0; k < l.Instalments; k++ {
		payment := e.nextEntry(l, plan, k)
		payment.Amortization = amortization
		payment.Interest = payment.Principal * rate
		payment.ToPay = payment.Amortization + payment.Interest
		plan = append(plan, payment)
	}
	return plan
}

// annuityPlan keeps the amount to pay constant.
func (e *Engine) annuityPlan(l models.Loan, rate float64) []models.Loan {
	toPay := rate * l.Principal / (1 - math.Pow(1+rate, -float64(l.Instalments)))

	plan := make([]models.Loan, 0, l.Instalments)
	for k := 0; k < l.Instalments; k++ {
		payment := e.nextEntry(l, plan, k)
		payment.Interest = payment.Principal * rate
		payment.Amortization = toPay - payment.Interest
		payment.ToPay = toPay
		plan = append(plan, payment)
	}
	return plan
}

// nextEntry starts entry k of a plan: a copy of the loan for the first
// entry, otherwise the previous entry moved one instalment ahead with its
// amortization paid off.
func (e *Engine) nextEntry(l models.Loan, plan []models.Loan, k int) models.Loan {
	var payment models.Loan
	if len(plan) == 0 {
		payment = l.Clone()
	} else {
		prev := plan[len(plan)-1]
		payment = prev.Clone()
		payment.Principal = prev.Principal - prev.Amortization
		payment.InitialFee = 0
		payment.Instalments = prev.Instalments - 1
		payment.Instalment = prev.Instalment + 1
	}
	payment.AsOf = e.DateOfInstalment(l, float64(k))
	return payment
}
