// Package valuation computes the value of possessions and the patrimony they add up to
// on a reference date. Everything here is pure: no I/O, no shared state, and the
// possession records passed in are never modified.
package valuation

import (
	"github.com/shopspring/decimal"
)

// PeriodDays is the length of one accrual period in constant mode.
const PeriodDays = 30

var hundred = decimal.NewFromInt(100)

// ValueAt returns the value of p on the given date, never negative.
//
// Before the start date the value is zero. Once the possession is closed its value is
// frozen at the end date. Depending on Mode, the initial value is depreciated linearly
// per year, replaced by a constant amount per elapsed 30-day period, or kept as is.
func ValueAt(p Possession, on Date) (decimal.Decimal, error) {
	if err := p.Validate(); err != nil {
		return decimal.Zero, err
	}
	return valueAt(p, on), nil
}

// valueAt assumes p is valid.
func valueAt(p Possession, on Date) decimal.Decimal {
	if on.Before(p.StartDate) {
		return decimal.Zero
	}

	effective := on
	if p.Closed() && p.EndDate.Before(on) {
		effective = p.EndDate
	}

	var value decimal.Decimal
	switch p.Mode() {
	case ModeRate:
		years := FractionalYears(p.StartDate, effective)
		lost := p.DepreciationRatePercent.Div(hundred).Mul(years)
		value = p.InitialValue.Mul(decimal.NewFromInt(1).Sub(lost))
	case ModeConstant:
		periods := DaysBetween(p.StartDate, effective) / PeriodDays
		value = p.ConstantPerPeriodValue.Decimal.Mul(decimal.NewFromInt(int64(periods)))
	default:
		value = p.InitialValue
	}

	return decimal.Max(value, decimal.Zero)
}
