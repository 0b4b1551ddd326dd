package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// PossessionBuilder provides a fluent interface for creating test possessions.
// The default possession is static: it keeps its initial value forever.
//
// Example usage:
//
//	// Simple creation with defaults
//	p := testutil.NewPossession().Build(t, db)
//
//	// Depreciating laptop, closed at the end of 2023
//	p := testutil.NewPossession().
//	    WithLabel("Laptop").
//	    WithInitialValue(1000).
//	    WithStartDate("2020-01-01").
//	    WithRate(10).
//	    ClosedOn("2023-12-31").
//	    Build(t, db)
type PossessionBuilder struct {
	Possession valuation.Possession
}

// NewPossession creates a PossessionBuilder with sensible defaults.
func NewPossession() *PossessionBuilder {
	return &PossessionBuilder{
		Possession: valuation.Possession{
			Owner:        "Test Owner",
			Label:        MakeLabel("Possession"),
			InitialValue: decimal.NewFromInt(1000),
			StartDate:    valuation.MustParseDate("2020-01-01"),
		},
	}
}

// WithLabel sets a custom label.
func (b *PossessionBuilder) WithLabel(label string) *PossessionBuilder {
	b.Possession.Label = label
	return b
}

// WithOwner sets a custom owner.
func (b *PossessionBuilder) WithOwner(owner string) *PossessionBuilder {
	b.Possession.Owner = owner
	return b
}

// WithInitialValue sets the initial value.
func (b *PossessionBuilder) WithInitialValue(value int64) *PossessionBuilder {
	b.Possession.InitialValue = decimal.NewFromInt(value)
	return b
}

// WithStartDate sets the start date, given as YYYY-MM-DD.
func (b *PossessionBuilder) WithStartDate(date string) *PossessionBuilder {
	b.Possession.StartDate = valuation.MustParseDate(date)
	return b
}

// WithRate makes the possession depreciate by percent of its initial value per year.
func (b *PossessionBuilder) WithRate(percent int64) *PossessionBuilder {
	b.Possession.DepreciationRatePercent = decimal.NewFromInt(percent)
	return b
}

// WithConstant makes the possession accrue amount per 30-day period.
func (b *PossessionBuilder) WithConstant(amount int64) *PossessionBuilder {
	b.Possession.ConstantPerPeriodValue = decimal.NewNullDecimal(decimal.NewFromInt(amount))
	b.Possession.UsesDayCount = true
	return b
}

// ClosedOn sets the end date, given as YYYY-MM-DD.
func (b *PossessionBuilder) ClosedOn(date string) *PossessionBuilder {
	b.Possession.EndDate = valuation.MustParseDate(date)
	return b
}

// Build creates the possession in the database and returns it.
// The owner is stored in plain text.
func (b *PossessionBuilder) Build(t *testing.T, db *sql.DB) valuation.Possession {
	t.Helper()

	p := b.Possession

	var endDate, constant any
	if !p.EndDate.IsZero() {
		endDate = p.EndDate.String()
	}
	if p.ConstantPerPeriodValue.Valid {
		constant = p.ConstantPerPeriodValue.Decimal.String()
	}

	query := `
		INSERT INTO possession (label, owner, initial_value, start_date, end_date,
			depreciation_rate, constant_per_period, uses_day_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		p.Label,
		p.Owner,
		p.InitialValue.String(),
		p.StartDate.String(),
		endDate,
		p.DepreciationRatePercent.String(),
		constant,
		p.UsesDayCount,
	)
	if err != nil {
		t.Fatalf("Failed to create test possession: %v", err)
	}

	return p
}

// Convenience functions

// CreatePossession creates a static possession with the given label and default values.
//
// Example usage:
//
//	p := testutil.CreatePossession(t, db, "Cash")
func CreatePossession(t *testing.T, db *sql.DB, label string) valuation.Possession {
	t.Helper()
	return NewPossession().WithLabel(label).Build(t, db)
}

// CreatePossessions creates multiple static possessions with unique labels.
//
// Example usage:
//
//	possessions := testutil.CreatePossessions(t, db, 5)
func CreatePossessions(t *testing.T, db *sql.DB, count int) []valuation.Possession {
	t.Helper()

	possessions := make([]valuation.Possession, count)
	for i := 0; i < count; i++ {
		possessions[i] = NewPossession().Build(t, db)
	}
	return possessions
}

// CreateSnapshot stores a patrimony snapshot directly, bypassing the service.
//
// Example usage:
//
//	testutil.CreateSnapshot(t, db, "2024-01-01", 1500)
func CreateSnapshot(t *testing.T, db *sql.DB, date string, value int64) model.PatrimonySnapshot {
	t.Helper()

	record := model.PatrimonySnapshot{
		ID:           MakeID(),
		Date:         valuation.MustParseDate(date),
		Value:        decimal.NewFromInt(value),
		ActiveCount:  1,
		CalculatedAt: time.Now().UTC().Truncate(time.Second),
	}

	query := `
		INSERT INTO patrimony_snapshot (id, date, value, active_count, calculated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		record.ID,
		record.Date.String(),
		record.Value.String(),
		record.ActiveCount,
		record.CalculatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test snapshot: %v", err)
	}

	return record
}
