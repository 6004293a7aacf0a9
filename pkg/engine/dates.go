package engine

import (
	"math"
	"time"

	"github.com/jinzhu/now"
	"github.com/mcclellann/loanengine/pkg/models"
	"github.com/mcclellann/loanengine/pkg/numeric"
)

// maxInstalmentOffset bounds the k accepted by DateOfInstalment.
const maxInstalmentOffset = 1e6

// monthsPerPeriod maps a payment period to its length in calendar months.
var monthsPerPeriod = map[models.PayEvery]int{
	models.PayEveryMonth:   1,
	models.PayEveryQuarter: 3,
	models.PayEveryYear:    12,
}

// AsOf returns the date the loan state is valid for. A loan without one
// is current as of now, to the second.
func (e *Engine) AsOf(l models.Loan) time.Time {
	if l.AsOf != nil {
		return *l.AsOf
	}
	return e.now().Truncate(time.Second)
}

// DateOfInstalment returns the start of the period k periods after the
// loan's as-of date. It returns nil when k is not a finite number or lies
// more than a million periods away. Fractional k is rounded to the
// nearest whole period.
func (e *Engine) DateOfInstalment(l models.Loan, k float64) *time.Time {
	if !numeric.IsFinite(k) || math.Abs(k) > maxInstalmentOffset {
		return nil
	}
	d := addPeriods(periodStart(e.AsOf(l), l.PayEvery), l.PayEvery, int(math.Round(k)))
	return &d
}

// periodStart truncates t to the first instant of its month, quarter or
// year. Unknown periods leave t unchanged.
func periodStart(t time.Time, every models.PayEvery) time.Time {
	switch every {
	case models.PayEveryMonth:
		return now.With(t).BeginningOfMonth()
	case models.PayEveryQuarter:
		return now.With(t).BeginningOfQuarter()
	case models.PayEveryYear:
		return now.With(t).BeginningOfYear()
	}
	return t
}

// addPeriods moves a period start n periods forward. The input must be a
// period start so that month arithmetic never overflows into the next
// month.
func addPeriods(start time.Time, every models.PayEvery, n int) time.Time {
	months, ok := monthsPerPeriod[every]
	if !ok {
		return start
	}
	return start.AddDate(0, n*months, 0)
}

// addMonths adds n calendar months to t, clamping the day to the end of
// the target month (Jan 31 + 1 month = Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	first = first.AddDate(0, n, 0)
	last := now.With(first).EndOfMonth().Day()
	day := min(t.Day(), last)
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// monthsBetween returns the fractional number of calendar months from
// `from` to `to`. Whole months are counted on the calendar and the
// remainder is the fraction of the month that follows them.
func monthsBetween(from, to time.Time) float64 {
	if to.Before(from) {
		return -monthsBetween(to, from)
	}
	whole := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	anchor := addMonths(from, whole)
	if anchor.After(to) {
		whole--
		anchor = addMonths(from, whole)
	}
	next := addMonths(from, whole+1)
	frac := float64(to.Sub(anchor)) / float64(next.Sub(anchor))
	return float64(whole) + frac
}

// periodsBetween counts the whole periods elapsed from `from` to `to`,
// truncated toward zero. Unknown periods count as zero.
func periodsBetween(from, to time.Time, every models.PayEvery) int {
	months, ok := monthsPerPeriod[every]
	if !ok {
		return 0
	}
	return int(math.Trunc(monthsBetween(from, to) / float64(months)))
}
