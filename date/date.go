// Package date provides a day-granularity Date type and the day-count
// helpers used by the return calculators.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the canonical string representation of a date, ISO-8601.
const Format = "2006-01-02"

// readFormat is more permissive and accepts single-digit month and day.
const readFormat = "2006-1-2"

// DaysPerYear is the day-count convention used for annualizing returns.
const DaysPerYear = 365.0

// Date represents a calendar date with no intra-day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Parse parses a date, accepting "2025-7-1" as well as "2025-07-01".
func Parse(s string) (Date, error) {
	t, err := time.Parse(readFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", s, Format, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. Meant for tests and fixtures.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// time returns the canonical time.Time for the day, midnight UTC.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns the date i days later (or earlier for negative i).
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Sub returns the number of whole days from x to d. It is negative when d
// is before x.
func (d Date) Sub(x Date) int { return int(d.time().Sub(x.time()).Hours() / 24) }

// YearsSince returns the elapsed time from x to d as a fraction of a year,
// using the 365-day convention.
func (d Date) YearsSince(x Date) float64 { return float64(d.Sub(x)) / DaysPerYear }

// String formats the date in its canonical form.
func (d Date) String() string { return d.time().Format(Format) }

// MarshalJSON encodes the date as a JSON string in canonical form.
func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

// UnmarshalJSON decodes the date from a JSON string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p, err := Parse(s)
	if err != nil {
		return err
	}
	*d = p
	return nil
}
