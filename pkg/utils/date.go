package utils

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid ISO date")

// ParseISODate accepts a calendar date (2006-01-02) or a full RFC 3339 timestamp.
func ParseISODate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return t.UTC(), nil
}

// FormatDate renders t as a calendar date, or an empty string for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
