package stockfolio

import "github.com/ycwu/stockfolio/date"

// Date is the day-granularity date used throughout the engine.
type Date = date.Date

// Today returns the current date.
func Today() Date { return date.Today() }

// ParseDate parses a date in ISO-8601 form.
func ParseDate(s string) (Date, error) { return date.Parse(s) }
