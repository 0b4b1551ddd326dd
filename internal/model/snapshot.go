package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// PatrimonySnapshot is a pre-calculated patrimony total for one date.
// Snapshots are recomputed by the scheduler so history can be served without
// re-valuing every possession for every day.
type PatrimonySnapshot struct {
	ID           string          `json:"id"`
	Date         valuation.Date  `json:"date"`
	Value        decimal.Decimal `json:"value"`
	ActiveCount  int             `json:"activeCount"` // Possessions counted in Value
	CalculatedAt time.Time       `json:"calculatedAt"`
}

// SnapshotFilter is the inclusive date window of a snapshot history query.
type SnapshotFilter struct {
	StartDate valuation.Date
	EndDate   valuation.Date
}
