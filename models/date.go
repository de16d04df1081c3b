package models

import "time"

// DateLayout is the ISO calendar date format used for accrual periods
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar date in UTC
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from start to end
func DaysBetween(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours() / 24)
}

// ParseDate parses an ISO calendar date
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
