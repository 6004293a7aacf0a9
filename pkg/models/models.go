package models

import (
	"time"

	"github.com/google/uuid"
)

// PayEvery is the period between two instalments.
type PayEvery string

const (
	PayEveryMonth   PayEvery = "month"
	PayEveryQuarter PayEvery = "quarter"
	PayEveryYear    PayEvery = "year"
)

// LoanType is the amortization scheme of a loan.
type LoanType string

const (
	LoanTypeSerial  LoanType = "serial"  // same amortization every instalment
	LoanTypeAnnuity LoanType = "annuity" // same amount to pay every instalment
)

// Loan is the fully populated state of a loan as of a certain date.
// Build one with New; the engine treats it as a value and returns new
// snapshots instead of changing it. ID only identifies the loan to
// callers; no calculation reads it.
type Loan struct {
	ID           uuid.UUID  `json:"id"`
	InterestRate float64    `json:"interest_rate"` // Nominal yearly rate, 0.05 = 5%
	Principal    float64    `json:"principal"`     // Current debt
	Instalments  int        `json:"instalments"`   // Instalments left
	Instalment   int        `json:"instalment"`    // Instalments made so far
	PayEvery     PayEvery   `json:"pay_every"`
	Type         LoanType   `json:"type"`
	InvoiceFee   float64    `json:"invoice_fee"`
	InitialFee   float64    `json:"initial_fee"`
	ToPay        float64    `json:"to_pay"`       // Amount due current period
	Amortization float64    `json:"amortization"` // Amortization current period
	Interest     float64    `json:"interest"`     // Interest current period
	Locked       bool       `json:"locked"`       // Locked loans keep their meta fields
	AsOf         *time.Time `json:"as_of"`        // Nil means "now"
	Data         Meta       `json:"data"`
}

// Params is a sparse set of loan parameters. Nil fields fall back to
// the defaults when passed to New.
type Params struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	InterestRate *float64   `json:"interest_rate,omitempty"`
	Principal    *float64   `json:"principal,omitempty"`
	Instalments  *int       `json:"instalments,omitempty"`
	Instalment   *int       `json:"instalment,omitempty"`
	PayEvery     *PayEvery  `json:"pay_every,omitempty"`
	Type         *LoanType  `json:"type,omitempty"`
	InvoiceFee   *float64   `json:"invoice_fee,omitempty"`
	InitialFee   *float64   `json:"initial_fee,omitempty"`
	ToPay        *float64   `json:"to_pay,omitempty"`
	Amortization *float64   `json:"amortization,omitempty"`
	Interest     *float64   `json:"interest,omitempty"`
	Locked       *bool      `json:"locked,omitempty"`
	AsOf         *time.Time `json:"as_of,omitempty"`
	Data         *Meta      `json:"data,omitempty"`
}

// Defaults returns the loan every other loan is built on top of.
func Defaults() Loan {
	return Loan{
		PayEvery: PayEveryMonth,
		Type:     LoanTypeAnnuity,
	}
}

// New merges the present fields of p over Defaults.
func New(p Params) Loan {
	l := Defaults()
	if p.ID != nil {
		l.ID = *p.ID
	}
	if p.InterestRate != nil {
		l.InterestRate = *p.InterestRate
	}
	if p.Principal != nil {
		l.Principal = *p.Principal
	}
	if p.Instalments != nil {
		l.Instalments = *p.Instalments
	}
	if p.Instalment != nil {
		l.Instalment = *p.Instalment
	}
	if p.PayEvery != nil {
		l.PayEvery = *p.PayEvery
	}
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.InvoiceFee != nil {
		l.InvoiceFee = *p.InvoiceFee
	}
	if p.InitialFee != nil {
		l.InitialFee = *p.InitialFee
	}
	if p.ToPay != nil {
		l.ToPay = *p.ToPay
	}
	if p.Amortization != nil {
		l.Amortization = *p.Amortization
	}
	if p.Interest != nil {
		l.Interest = *p.Interest
	}
	if p.Locked != nil {
		l.Locked = *p.Locked
	}
	if p.AsOf != nil {
		asOf := *p.AsOf
		l.AsOf = &asOf
	}
	if p.Data != nil {
		l.Data = p.Data.Clone()
	}
	return l
}

// Params returns every field of the loan as a parameter set.
func (l Loan) Params() Params {
	c := l.Clone()
	return Params{
		ID:           &c.ID,
		InterestRate: &c.InterestRate,
		Principal:    &c.Principal,
		Instalments:  &c.Instalments,
		Instalment:   &c.Instalment,
		PayEvery:     &c.PayEvery,
		Type:         &c.Type,
		InvoiceFee:   &c.InvoiceFee,
		InitialFee:   &c.InitialFee,
		ToPay:        &c.ToPay,
		Amortization: &c.Amortization,
		Interest:     &c.Interest,
		Locked:       &c.Locked,
		AsOf:         c.AsOf,
		Data:         &c.Data,
	}
}

// Clone returns a copy of the loan sharing no memory with l.
func (l Loan) Clone() Loan {
	c := l
	if l.AsOf != nil {
		asOf := *l.AsOf
		c.AsOf = &asOf
	}
	c.Data = l.Data.Clone()
	return c
}

// Float returns a pointer to v. Handy when building Params.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Time returns a pointer to t.
func Time(t time.Time) *time.Time { return &t }
