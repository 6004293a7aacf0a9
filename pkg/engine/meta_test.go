package engine

import (
	"testing"
	"time"

	"github.com/mcclellann/loanengine/pkg/models"
)

func TestTotalCost(t *testing.T) {
	e := newTestEngine()

	l := longLoan()
	assertApprox(t, "annuity total cost", e.TotalCost(l), 58657.24, 0.5)

	l.Type = models.LoanTypeSerial
	assertApprox(t, "serial total cost", e.TotalCost(l), 54516.67, 0.5)

	l.Instalments = 0
	if got := e.TotalCost(l); got != 0 {
		t.Errorf("Expected 0 without instalments, got %v", got)
	}
}

func TestTotalCost_MissingProperties(t *testing.T) {
	e := newTestEngine()
	l := models.New(models.Params{Principal: models.Float(10000), Instalments: models.Int(120)})
	if got := e.TotalCost(l); got < 0 {
		t.Errorf("Expected a non-negative total cost, got %v", got)
	}
}

func TestShouldAmortize(t *testing.T) {
	e := newTestEngine()
	threeMonthsAgo := testNow.AddDate(0, -3, 0)

	cases := []struct {
		name    string
		mutate  func(l *models.Loan)
		compare time.Time
		want    bool
	}{
		{"as_of not set", func(l *models.Loan) { l.AsOf = nil }, time.Time{}, false},
		{"as_of now", func(l *models.Loan) {}, time.Time{}, false},
		{"as_of in the future", func(l *models.Loan) { l.AsOf = models.Time(testNow.AddDate(1, 0, 0)) }, time.Time{}, false},
		{"no instalments", func(l *models.Loan) { l.AsOf = &threeMonthsAgo; l.Instalments = 0 }, time.Time{}, false},
		{"no principal", func(l *models.Loan) { l.AsOf = &threeMonthsAgo; l.Principal = 0 }, time.Time{}, false},
		{"as_of months ago", func(l *models.Loan) { l.AsOf = &threeMonthsAgo }, time.Time{}, true},
		{"compare to as_of", func(l *models.Loan) { l.AsOf = &threeMonthsAgo }, threeMonthsAgo, false},
		{"yearly loan same year", func(l *models.Loan) { l.AsOf = &threeMonthsAgo; l.PayEvery = models.PayEveryYear }, time.Time{}, false},
	}
	for _, c := range cases {
		l := longLoan()
		c.mutate(&l)
		if got := e.ShouldAmortize(l, c.compare); got != c.want {
			t.Errorf("%s: Expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestCalculateMeta(t *testing.T) {
	e := newTestEngine()
	l := shortLoan()
	l.InvoiceFee = 5
	l.Data.InterestRateEffective = models.Float(666)

	data := e.CalculateMeta(&l)

	plan := e.PaymentPlan(l)
	if got, want := *l.Data.InterestRateEffective, e.EffectiveRate(l, MethodSecant); got != want {
		t.Errorf("Expected interest_rate_effective %v, got %v", want, got)
	}
	if got, want := *l.Data.ShouldAmortize, e.ShouldAmortize(l, time.Time{}); got != want {
		t.Errorf("Expected should_amortize %v, got %v", want, got)
	}
	if got, want := *l.Data.MonthlyCost, plan[0].ToPay+plan[0].InvoiceFee; got != want {
		t.Errorf("Expected monthly_cost %v, got %v", want, got)
	}
	if got, want := *l.Data.TotalCost, e.TotalCost(l); got != want {
		t.Errorf("Expected total_cost %v, got %v", want, got)
	}
	if *data.MonthlyCost != *l.Data.MonthlyCost {
		t.Errorf("Expected returned data to match the loan's, got %v", *data.MonthlyCost)
	}
}

func TestCalculateMeta_Locked(t *testing.T) {
	e := newTestEngine()
	l := shortLoan()
	l.Locked = true
	l.Data = models.Meta{
		InterestRateEffective: models.Float(999),
		TotalCost:             models.Float(456),
		ShouldAmortize:        models.Bool(false),
		Extra:                 map[string]any{"description": "kept"},
	}
	if l.Data.Has(models.MetaMonthlyCost) {
		t.Fatal("Expected no monthly_cost before calculation")
	}

	data := e.CalculateMeta(&l)

	if *l.Data.InterestRateEffective != 999 || *l.Data.TotalCost != 456 || *l.Data.ShouldAmortize {
		t.Errorf("Expected present fields to be preserved, got %+v", l.Data)
	}
	if l.Data.MonthlyCost == nil || *l.Data.MonthlyCost != *data.MonthlyCost {
		t.Errorf("Expected monthly_cost to be filled in, got %v", l.Data.MonthlyCost)
	}
	if l.Data.Extra["description"] != "kept" {
		t.Errorf("Expected annotations to be preserved, got %v", l.Data.Extra)
	}
}

func TestWithMeta_IsPure(t *testing.T) {
	e := newTestEngine()
	l := shortLoan()

	out := e.WithMeta(l)
	if !l.Data.IsEmpty() {
		t.Errorf("Expected the input loan to be untouched, got %+v", l.Data)
	}
	if out.Data.MonthlyCost == nil {
		t.Error("Expected monthly_cost on the returned loan")
	}
}

func TestWithMeta_NoPlan(t *testing.T) {
	e := newTestEngine()
	out := e.WithMeta(models.Defaults())
	if *out.Data.MonthlyCost != 0 || *out.Data.TotalCost != 0 || *out.Data.InterestRateEffective != 0 || *out.Data.ShouldAmortize {
		t.Errorf("Expected zero meta for an empty loan, got %+v", out.Data)
	}
}
