// Package request holds the decoded bodies and query filters accepted by the API.
package request

import "github.com/shopspring/decimal"

// CreatePossessionRequest is the body of POST /api/possession.
type CreatePossessionRequest struct {
	Owner                   string              `json:"owner" validate:"max=100"`
	Label                   string              `json:"label" validate:"required,max=100,excludes=/"`
	InitialValue            decimal.Decimal     `json:"initialValue"`
	StartDate               string              `json:"startDate" validate:"required,isodate"`
	EndDate                 *string             `json:"endDate,omitempty" validate:"omitempty,isodate"`
	DepreciationRatePercent decimal.Decimal     `json:"depreciationRatePercent"`
	ConstantPerPeriodValue  decimal.NullDecimal `json:"constantPerPeriodValue"`
	UsesDayCount            bool                `json:"usesDayCount"`
}

// UpdatePossessionRequest is the body of PUT /api/possession/{label}.
// Only the end date of a possession can change after creation.
type UpdatePossessionRequest struct {
	EndDate string `json:"endDate" validate:"required,isodate"`
}

// ClosePossessionRequest is the body of POST /api/possession/{label}/close.
// An empty EndDate closes the possession today.
type ClosePossessionRequest struct {
	EndDate string `json:"endDate" validate:"omitempty,isodate"`
}
