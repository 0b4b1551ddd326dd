package valuation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode is the valuation rule applied to a possession.
type Mode int

const (
	// ModeStatic keeps the initial value unchanged.
	ModeStatic Mode = iota
	// ModeRate applies straight-line annual depreciation to the initial value.
	ModeRate
	// ModeConstant accrues a fixed amount per elapsed 30-day period.
	ModeConstant
)

func (m Mode) String() string {
	switch m {
	case ModeRate:
		return "rate"
	case ModeConstant:
		return "constant"
	default:
		return "static"
	}
}

// MarshalText makes Mode readable in JSON payloads.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "rate":
		*m = ModeRate
	case "constant":
		*m = ModeConstant
	case "static":
		*m = ModeStatic
	default:
		return fmt.Errorf("unknown valuation mode %q", text)
	}
	return nil
}

// Possession is one asset record of the ledger.
type Possession struct {
	Owner                   string              `json:"owner,omitempty"`
	Label                   string              `json:"label"`
	InitialValue            decimal.Decimal     `json:"initialValue"`
	StartDate               Date                `json:"startDate"`
	EndDate                 Date                `json:"endDate"`
	DepreciationRatePercent decimal.Decimal     `json:"depreciationRatePercent"`
	ConstantPerPeriodValue  decimal.NullDecimal `json:"constantPerPeriodValue"`
	UsesDayCount            bool                `json:"usesDayCount"`
}

// Mode selects the valuation rule from field presence. Rate wins over constant.
func (p Possession) Mode() Mode {
	if p.DepreciationRatePercent.IsPositive() {
		return ModeRate
	}
	if p.ConstantPerPeriodValue.Valid && p.UsesDayCount {
		return ModeConstant
	}
	return ModeStatic
}

// Closed reports whether an end date has been recorded.
func (p Possession) Closed() bool { return !p.EndDate.IsZero() }

// ActiveAt reports whether p still counts toward the patrimony on the given date,
// that is when it is open or closes strictly after that date.
func (p Possession) ActiveAt(on Date) bool {
	return !p.Closed() || p.EndDate.After(on)
}

// Close returns a copy of p closed on the given date. Closing twice overwrites the end date.
func (p Possession) Close(on Date) Possession {
	p.EndDate = on
	return p
}

// Validate checks the record invariants.
func (p Possession) Validate() error {
	switch {
	case strings.TrimSpace(p.Label) == "":
		return &InvalidPossessionError{Reason: "label is required"}
	case p.StartDate.IsZero():
		return &InvalidPossessionError{Label: p.Label, Reason: "start date is required"}
	case p.InitialValue.IsNegative():
		return &InvalidPossessionError{Label: p.Label, Reason: "initial value cannot be negative"}
	case p.DepreciationRatePercent.IsNegative():
		return &InvalidPossessionError{Label: p.Label, Reason: "depreciation rate cannot be negative"}
	case p.Closed() && p.EndDate.Before(p.StartDate):
		return &InvalidPossessionError{Label: p.Label, Reason: "end date is before start date"}
	}
	return nil
}
