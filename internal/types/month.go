// Package types implements special types for the produce ledger.
package types

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Month is a month in a specific year.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// Label returns the month formatted for display, e.g. "Jan 2025".
func (m Month) Label() string {
	return time.Time(m).Format("Jan 2006")
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Accepted are YYYY-MM, full dates and RFC3339 timestamps. Everything
// except the year and the month is ignored.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	patterns := []struct {
		expression string
		layout     string
	}{
		{"^[0-9]{4}-[0-9]{2}$", "2006-01"},
		{"^[0-9]{4}-[0-9]{2}-[0-9]{2}$", "2006-01-02"},
		{"^[0-9]{4}-[0-9]{2}-[0-9]{2}T", "2006-01-02T15:04:05Z07:00"},
	}

	for _, p := range patterns {
		match, err := regexp.MatchString(p.expression, value)
		if err != nil {
			return err
		}

		if match {
			t, err := time.Parse(p.layout, value)
			if err != nil {
				return err
			}

			*m = NewMonth(t.Year(), t.Month())
			return nil
		}
	}

	return fmt.Errorf("parsing %q as a month failed", value)
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, t.Location()))
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Month returns the time.Month of the month.
func (m Month) Month() time.Month {
	return time.Time(m).Month()
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}
