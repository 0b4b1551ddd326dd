package valuation

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "iso date", input: "2022-01-01", want: NewDate(2022, time.January, 1)},
		{name: "surrounding spaces", input: " 2021-06-01 ", want: NewDate(2021, time.June, 1)},
		{name: "rfc3339 timestamp keeps the utc day", input: "2021-09-29T23:30:00-02:00", want: NewDate(2021, time.September, 30)},
		{name: "month out of range", input: "2022-13-01", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				var dateErr *InvalidDateError
				require.Error(t, err)
				assert.True(t, errors.As(err, &dateErr), "expected *InvalidDateError, got %T", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 120, DaysBetween(MustParseDate("2021-06-01"), MustParseDate("2021-09-29")))
	assert.Equal(t, 366, DaysBetween(MustParseDate("2020-01-01"), MustParseDate("2021-01-01")))
	assert.Equal(t, -1, DaysBetween(MustParseDate("2021-01-02"), MustParseDate("2021-01-01")))
	assert.Equal(t, 0, DaysBetween(MustParseDate("2021-01-01"), MustParseDate("2021-01-01")))

	// Spans longer than a time.Duration can hold.
	assert.Equal(t, 118338, DaysBetween(MustParseDate("1700-01-01"), MustParseDate("2024-01-01")))
	assert.Equal(t, -118338, DaysBetween(MustParseDate("2024-01-01"), MustParseDate("1700-01-01")))
}

func TestFractionalYears(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		years float64
	}{
		{name: "two full years across a leap year", from: "2020-01-01", to: "2022-01-01", years: 2},
		{name: "same day", from: "2020-01-01", to: "2020-01-01", years: 0},
		{name: "end before start", from: "2020-01-01", to: "2019-01-01", years: 0},
		{name: "one year and a half", from: "2020-01-01", to: "2021-07-02", years: 1 + 182/365.25},
		{name: "leap day start before its anniversary", from: "2020-02-29", to: "2021-02-28", years: 365 / 365.25},
		{name: "leap day start on its anniversary", from: "2020-02-29", to: "2021-03-01", years: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FractionalYears(MustParseDate(tt.from), MustParseDate(tt.to))
			assert.InDelta(t, tt.years, got.InexactFloat64(), 1e-9)
		})
	}
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2021-06-01","end":null}`), &payload))
	assert.Equal(t, NewDate(2021, time.June, 1), payload.Start)
	assert.True(t, payload.End.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2021-06-01","end":null}`, string(out))

	err = json.Unmarshal([]byte(`{"start":"01/06/2021"}`), &payload)
	var dateErr *InvalidDateError
	assert.True(t, errors.As(err, &dateErr))
}
