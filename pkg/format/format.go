// Package format converts loans to their smallest representation and
// rounds them for presentation.
package format

import (
	"github.com/mcclellann/loanengine/pkg/models"
	"github.com/mcclellann/loanengine/pkg/numeric"
)

// rateExtraPlaces is how many more decimals rates keep than amounts.
const rateExtraPlaces = 3

// Minimal returns the fields of l that differ from models.Defaults.
// models.New(Minimal(l)) gives back l.
func Minimal(l models.Loan) models.Params {
	d := models.Defaults()
	c := l.Clone()
	var p models.Params

	if c.ID != d.ID {
		p.ID = &c.ID
	}
	if c.InterestRate != d.InterestRate {
		p.InterestRate = &c.InterestRate
	}
	if c.Principal != d.Principal {
		p.Principal = &c.Principal
	}
	if c.Instalments != d.Instalments {
		p.Instalments = &c.Instalments
	}
	if c.Instalment != d.Instalment {
		p.Instalment = &c.Instalment
	}
	if c.PayEvery != d.PayEvery {
		p.PayEvery = &c.PayEvery
	}
	if c.Type != d.Type {
		p.Type = &c.Type
	}
	if c.InvoiceFee != d.InvoiceFee {
		p.InvoiceFee = &c.InvoiceFee
	}
	if c.InitialFee != d.InitialFee {
		p.InitialFee = &c.InitialFee
	}
	if c.ToPay != d.ToPay {
		p.ToPay = &c.ToPay
	}
	if c.Amortization != d.Amortization {
		p.Amortization = &c.Amortization
	}
	if c.Interest != d.Interest {
		p.Interest = &c.Interest
	}
	if c.Locked != d.Locked {
		p.Locked = &c.Locked
	}
	if c.AsOf != nil {
		p.AsOf = c.AsOf
	}
	if !c.Data.IsEmpty() {
		p.Data = &c.Data
	}
	return p
}

// Round returns a copy of l with its amounts rounded to precision
// decimals. The effective rate in Data keeps three decimals more.
// Non-finite values are left as they are.
func Round(l models.Loan, precision int) models.Loan {
	out := l.Clone()
	for _, v := range []*float64{
		&out.Principal,
		&out.InvoiceFee,
		&out.InitialFee,
		&out.Amortization,
		&out.Interest,
		&out.ToPay,
		out.Data.MonthlyCost,
		out.Data.TotalCost,
	} {
		roundInPlace(v, precision)
	}
	roundInPlace(out.Data.InterestRateEffective, precision+rateExtraPlaces)
	return out
}

func roundInPlace(v *float64, precision int) {
	if v == nil || !numeric.IsFinite(*v) {
		return
	}
	*v = numeric.Round(*v, precision)
}
