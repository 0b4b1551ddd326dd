package model

import (
	"github.com/shopspring/decimal"

	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// PatrimonyValue is the patrimony of the ledger (or of one owner) on a date.
type PatrimonyValue struct {
	Date      valuation.Date  `json:"date"`
	Owner     string          `json:"owner,omitempty"`
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}

// PatrimonyRange is the answer to a range request. Only EndDate drives Value;
// StartDate is echoed back unchanged.
type PatrimonyRange struct {
	StartDate valuation.Date  `json:"startDate"`
	EndDate   valuation.Date  `json:"endDate"`
	Owner     string          `json:"owner,omitempty"`
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}

// PatrimonySeries holds parallel date and value slices, ready for charting.
type PatrimonySeries struct {
	Dates  []valuation.Date  `json:"dates"`
	Values []decimal.Decimal `json:"values"`
}

// PossessionValue is the value of a single possession on a date.
type PossessionValue struct {
	Label     string          `json:"label"`
	Date      valuation.Date  `json:"date"`
	Mode      valuation.Mode  `json:"mode"`
	Active    bool            `json:"active"`
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}
