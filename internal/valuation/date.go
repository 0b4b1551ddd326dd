package valuation

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the ISO-8601 calendar date layout used on every boundary.
const DateFormat = "2006-01-02"

// daysPerYear is the average Gregorian year length used for the fractional part of a year.
var daysPerYear = decimal.NewFromFloat(365.25)

const secondsPerDay = 24 * 60 * 60

// Date represents a calendar date with day-level granularity.
// The zero value means "no date" and is used for open possessions.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date in UTC.
func Today() Date { return NewDate(time.Now().UTC().Date()) }

// ParseDate parses an ISO-8601 calendar date. RFC3339 timestamps are accepted and
// truncated to their UTC date.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	on, err := time.Parse(DateFormat, str)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, str)
		if tsErr != nil {
			return Date{}, &InvalidDateError{Input: str, Err: err}
		}
		on = ts.UTC()
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) Year() int        { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int         { return d.d }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// String formats the date as YYYY-MM-DD. The zero date formats as "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateFormat)
}

// time returns midnight UTC of that day.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Equal reports whether d and x are the same day.
func (d Date) Equal(x Date) bool { return d == x }

// Add returns d shifted by the given number of days.
func (d Date) Add(days int) Date { return NewDate(d.y, d.m, d.d+days) }

// AddYears returns the same calendar day n years later. Feb 29 rolls over to Mar 1.
func (d Date) AddYears(n int) Date { return NewDate(d.y+n, d.m, d.d) }

// DaysBetween returns the number of whole days from a to b, negative when b is before a.
// It works on Unix seconds since time.Duration overflows past about 292 years.
func DaysBetween(a, b Date) int {
	return int((b.time().Unix() - a.time().Unix()) / secondsPerDay)
}

// FractionalYears returns the years elapsed from a to b: whole anniversaries plus
// the remaining days over 365.25. It returns zero when b is not after a.
func FractionalYears(a, b Date) decimal.Decimal {
	if !b.After(a) {
		return decimal.Zero
	}
	years := b.y - a.y
	if a.AddYears(years).After(b) {
		years--
	}
	rest := DaysBetween(a.AddYears(years), b)
	return decimal.NewFromInt(int64(years)).Add(decimal.NewFromInt(int64(rest)).Div(daysPerYear))
}

// UnmarshalJSON accepts a date string or null (the zero Date).
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON writes the date as YYYY-MM-DD, or null for the zero Date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
