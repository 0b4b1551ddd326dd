package validation

import (
	"github.com/Tafita-R/Examen-Web2/internal/api/request"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// ValidateCreatePossession validates a possession creation request.
//
// Required fields:
//   - label: non-empty, at most 100 characters, no "/"
//   - startDate: YYYY-MM-DD
//
// Optional fields (validated if provided):
//   - endDate: YYYY-MM-DD, not before startDate
//   - initialValue, depreciationRatePercent: must not be negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreatePossession(req request.CreatePossessionRequest) error {
	if err := Struct(req); err != nil {
		return err
	}

	errors := make(map[string]string)

	if req.InitialValue.IsNegative() {
		errors["initialValue"] = "initialValue must not be negative"
	}

	if req.DepreciationRatePercent.IsNegative() {
		errors["depreciationRatePercent"] = "depreciationRatePercent must not be negative"
	}

	if req.EndDate != nil && *req.EndDate != "" {
		start := valuation.MustParseDate(req.StartDate)
		end := valuation.MustParseDate(*req.EndDate)
		if end.Before(start) {
			errors["endDate"] = "endDate must not be before startDate"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdatePossession validates a possession update request. The end date is required.
func ValidateUpdatePossession(req request.UpdatePossessionRequest) error {
	return Struct(req)
}

// ValidateClosePossession validates a close request. The end date is optional.
func ValidateClosePossession(req request.ClosePossessionRequest) error {
	return Struct(req)
}
