package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tafita-R/Examen-Web2/internal/apperrors"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// ParseTime parses a timestamp column in "2006-01-02 15:04:05", "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse time %q", str)
}

// parseDate reads a DATE column. The SQLite driver may hand back either the stored
// text or an RFC3339 rendering of it; valuation.ParseDate accepts both.
func parseDate(column string, value sql.NullString) (valuation.Date, error) {
	if !value.Valid || value.String == "" {
		return valuation.Date{}, nil
	}
	d, err := valuation.ParseDate(value.String)
	if err != nil {
		return valuation.Date{}, fmt.Errorf("%w: column %s: %v", apperrors.ErrDataInconsistency, column, err)
	}
	return d, nil
}

func parseDecimal(column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: column %s: %v", apperrors.ErrDataInconsistency, column, err)
	}
	return d, nil
}

// nullableDate maps the zero Date to SQL NULL.
func nullableDate(d valuation.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}
