package valuation

import (
	"github.com/shopspring/decimal"
)

// Ledger is a read-only snapshot of possessions handed to the aggregation functions.
// Labels are expected to be unique; the caller owning the collection enforces it.
type Ledger []Possession

// Validate returns the first invalid record's error, if any.
func (l Ledger) Validate() error {
	for _, p := range l {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the possession with the given label.
func (l Ledger) Find(label string) (Possession, bool) {
	for _, p := range l {
		if p.Label == label {
			return p, true
		}
	}
	return Possession{}, false
}

// ForOwner returns the possessions held by owner. An empty owner selects everything.
func (l Ledger) ForOwner(owner string) Ledger {
	if owner == "" {
		return l
	}
	out := Ledger{}
	for _, p := range l {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out
}

// TotalAt returns the patrimony on the given date: the sum of the values of the
// possessions active on that date. A possession closed on or before the date adds
// nothing, even though ValueAt would report its frozen value.
//
// The whole call fails on the first invalid record.
func (l Ledger) TotalAt(on Date) (decimal.Decimal, error) {
	if err := l.Validate(); err != nil {
		return decimal.Zero, err
	}
	return l.totalAt(on), nil
}

func (l Ledger) totalAt(on Date) decimal.Decimal {
	total := decimal.Zero
	for _, p := range l {
		if p.ActiveAt(on) {
			total = total.Add(valueAt(p, on))
		}
	}
	return total
}

// TotalOverRange returns the patrimony for a start/end pair. Only the end date is
// evaluated; start is accepted for display and does not change the result.
func (l Ledger) TotalOverRange(start, end Date) (decimal.Decimal, error) {
	return l.TotalAt(end)
}

// Item is one row of a Breakdown.
type Item struct {
	Label  string          `json:"label"`
	Owner  string          `json:"owner,omitempty"`
	Mode   Mode            `json:"mode"`
	Value  decimal.Decimal `json:"value"`
	Active bool            `json:"active"`
}

// Breakdown details the patrimony on a date possession by possession.
type Breakdown struct {
	Date  Date            `json:"date"`
	Items []Item          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Breakdown lists every possession with its value on the given date. Inactive
// possessions keep their frozen value in the listing but are left out of Total.
func (l Ledger) Breakdown(on Date) (Breakdown, error) {
	if err := l.Validate(); err != nil {
		return Breakdown{}, err
	}
	b := Breakdown{Date: on, Items: make([]Item, 0, len(l)), Total: decimal.Zero}
	for _, p := range l {
		item := Item{
			Label:  p.Label,
			Owner:  p.Owner,
			Mode:   p.Mode(),
			Value:  valueAt(p, on),
			Active: p.ActiveAt(on),
		}
		if item.Active {
			b.Total = b.Total.Add(item.Value)
		}
		b.Items = append(b.Items, item)
	}
	return b, nil
}

// Point is one sample of a patrimony Series.
type Point struct {
	Date  Date            `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// Series samples TotalAt every step days from start, always finishing on end.
func (l Ledger) Series(start, end Date, step int) ([]Point, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	if step < 1 {
		return nil, ErrInvalidStep
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	points := []Point{}
	on := start
	for ; on.Before(end); on = on.Add(step) {
		points = append(points, Point{Date: on, Value: l.totalAt(on)})
	}
	points = append(points, Point{Date: end, Value: l.totalAt(end)})
	return points, nil
}
