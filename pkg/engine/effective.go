package engine

import (
	"math"

	"github.com/mcclellann/loanengine/pkg/models"
	"github.com/mcclellann/loanengine/pkg/numeric"
	"go.uber.org/zap"
)

// RateMethod selects the root finder used for the effective rate.
type RateMethod string

const (
	// MethodSecant reconciles the fee-inclusive payment with the principal
	// using the secant method. It is the default.
	MethodSecant RateMethod = "secant"
	// MethodNewton solves for the rate matching the average cost per
	// instalment with Newton-Raphson. Experimental: its results have not
	// been validated against a reference and it returns a nominal rate.
	MethodNewton RateMethod = "newton"
)

const (
	rateMaxIter       = 20
	secantTolerance   = 1e-7
	newtonTolerance   = 1e-10
	newtonGuess       = 0.1 / 12
	zeroRateThreshold = 1e-7
	zeroRateGuess     = 0.01
	effectivePlaces   = 4
)

type rateSolver func(e *Engine, l models.Loan) float64

var rateSolvers = map[RateMethod]rateSolver{
	MethodSecant: (*Engine).secantEffectiveRate,
	MethodNewton: (*Engine).newtonEffectiveRate,
}

// EffectiveRate returns the effective yearly interest rate of an annuity
// loan, fees included. An empty method means MethodSecant. Loans of any
// other type, loans without instalments and unknown methods give 0.
func (e *Engine) EffectiveRate(l models.Loan, method RateMethod) float64 {
	if method == "" {
		method = MethodSecant
	}
	if l.Instalments < 1 || l.Type != models.LoanTypeAnnuity {
		return 0
	}
	solve, ok := rateSolvers[method]
	if !ok {
		return 0
	}
	rate := solve(e, l)
	if !numeric.IsFinite(rate) {
		e.logger.Debug("effective rate did not resolve to a finite number",
			zap.String("op", "engine.EffectiveRate"),
			zap.String("method", string(method)),
		)
		return 0
	}
	return rate
}

func (e *Engine) secantEffectiveRate(l models.Loan) float64 {
	interest := e.PeriodicRate(l)
	n := float64(l.Instalments)

	payment := -pmt(interest, n, -l.Principal-l.InitialFee, 0)
	toPay := payment + l.InvoiceFee

	rate, iter := e.rate(n, toPay, -l.Principal, 0, 0, interest*12)
	e.logger.Debug("secant solver finished",
		zap.String("op", "engine.secantEffectiveRate"),
		zap.Int("iterations", iter),
		zap.Float64("rate", rate),
	)
	return effect(rate*12, 12)
}

// newtonEffectiveRate finds x with P·x·(1+x)^N / ((1+x)^N − 1) = m, m
// being the average cost per instalment, and returns it as a yearly rate.
func (e *Engine) newtonEffectiveRate(l models.Loan) float64 {
	P := l.Principal
	N := float64(l.Instalments)
	m := (e.TotalCost(l) + l.Principal) / N

	f := func(x float64) float64 {
		return P*x*math.Pow(1+x, N)/(math.Pow(1+x, N)-1) - m
	}
	df := func(x float64) float64 {
		g := math.Pow(1+x, N) - 1
		return P * (math.Pow(1+x, N)/g -
			N*x*math.Pow(1+x, 2*N-1)/(g*g) +
			N*x*math.Pow(1+x, N-1)/g)
	}

	approx := newtonGuess
	iter := 0
	for iter < rateMaxIter {
		prev := approx
		approx = prev - f(prev)/df(prev)
		iter++
		if math.Abs(approx-prev) < newtonTolerance {
			break
		}
	}
	e.logger.Debug("newton solver finished",
		zap.String("op", "engine.newtonEffectiveRate"),
		zap.Int("iterations", iter),
		zap.Float64("rate", approx),
	)
	return approx * 12
}

// pmt is the level payment for a present value pv over nper periods at
// rate ir. The sign follows pv.
func pmt(ir, nper, pv, fv float64) float64 {
	if ir == 0 {
		return (pv - fv) / nper
	}
	f := math.Pow(1+ir, nper)
	return ir * -(fv - f*pv) / (f - 1)
}

// rateValue is the future value of the cash flows at rate, zero at the
// solution.
func rateValue(rate, nper, payment, pv, fv, typ float64) float64 {
	if math.Abs(rate) < zeroRateThreshold {
		return pv*(1+nper*rate) + payment*(1+rate*typ)*nper + fv
	}
	f := math.Exp(nper * math.Log(1+rate))
	return pv*f + payment*(1/rate+typ)*(f-1) + fv
}

// rate finds the periodic rate for the cash flows with the secant
// method, starting from the pair (0, guess). It stops once two successive
// function values are within secantTolerance, or after rateMaxIter steps.
func (e *Engine) rate(nper, payment, pv, fv, typ, guess float64) (float64, int) {
	if math.Abs(guess) < zeroRateThreshold {
		guess = zeroRateGuess
	}
	x0, x1 := 0.0, guess
	y0 := rateValue(x0, nper, payment, pv, fv, typ)
	y1 := rateValue(x1, nper, payment, pv, fv, typ)

	iter := 0
	for math.Abs(y0-y1) > secantTolerance && iter < rateMaxIter {
		next := (y1*x0 - y0*x1) / (y1 - y0)
		if next <= -1 || !numeric.IsFinite(next) {
			return math.NaN(), iter
		}
		x0, x1 = x1, next
		y0, y1 = y1, rateValue(x1, nper, payment, pv, fv, typ)
		iter++
	}
	return x1, iter
}

// effect converts a nominal yearly rate compounded npery times a year to
// the effective yearly rate.
func effect(rate, npery float64) float64 {
	return numeric.Round(math.Pow(1+rate/npery, npery)-1, effectivePlaces)
}
