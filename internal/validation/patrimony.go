package validation

import (
	"github.com/Tafita-R/Examen-Web2/internal/api/request"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// ValidatePatrimonyRange validates a range request. Only endDate is required.
func ValidatePatrimonyRange(req request.PatrimonyRangeRequest) error {
	return Struct(req)
}

// ValidatePatrimonySeries validates a series request: both dates are required,
// stepDays is at least 1 and startDate is not after endDate.
func ValidatePatrimonySeries(req request.PatrimonySeriesRequest) error {
	if err := Struct(req); err != nil {
		return err
	}

	start := valuation.MustParseDate(req.StartDate)
	end := valuation.MustParseDate(req.EndDate)
	if start.After(end) {
		return &Error{Fields: map[string]string{
			"endDate": "endDate must not be before startDate",
		}}
	}

	return nil
}
