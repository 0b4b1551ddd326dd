package request

import (
	"fmt"

	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// DefaultSnapshotWindow is the number of days returned when no start_date is given.
const DefaultSnapshotWindow = 30

// ParseSnapshotFilters extracts and validates the snapshot history window from query parameters.
// Both parameters are optional.
//
// Validation rules:
//   - end_date: YYYY-MM-DD or RFC3339, defaults to today
//   - start_date: YYYY-MM-DD or RFC3339, defaults to DefaultSnapshotWindow days before end_date
//   - start_date must not be after end_date
//
// Returns an error if any parameter fails validation.
func ParseSnapshotFilters(startDateParam, endDateParam string, today valuation.Date) (*model.SnapshotFilter, error) {
	filter := &model.SnapshotFilter{EndDate: today}

	if endDateParam != "" {
		end, err := valuation.ParseDate(endDateParam)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date format: %w", err)
		}
		filter.EndDate = end
	}

	filter.StartDate = filter.EndDate.Add(-DefaultSnapshotWindow)
	if startDateParam != "" {
		start, err := valuation.ParseDate(startDateParam)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date format: %w", err)
		}
		filter.StartDate = start
	}

	if filter.StartDate.After(filter.EndDate) {
		return nil, fmt.Errorf("invalid date range: start_date %s is after end_date %s", filter.StartDate, filter.EndDate)
	}

	return filter, nil
}
