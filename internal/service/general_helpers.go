package service

import "github.com/shopspring/decimal"

// RoundingPlaces is the number of decimal places kept in monetary API responses.
const RoundingPlaces = 2

// round rounds a monetary value to RoundingPlaces decimal places. The engine keeps
// full precision; rounding only happens on the way out of the service layer.
//
// The rounding is "round half away from zero", as decimal.Round does.
//
// Example:
//
//	round(decimal.RequireFromString("123.456"))  // 123.46
//	round(decimal.RequireFromString("0.005"))    // 0.01
//	round(decimal.RequireFromString("1.994"))    // 1.99
func round(value decimal.Decimal) decimal.Decimal {
	return value.Round(RoundingPlaces)
}
