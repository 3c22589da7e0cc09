package utils

import (
	"fmt"
	"time"
)

// ISODateLayout is the storage format for all measurement dates. ISO 8601
// date strings compare lexically, which the repositories rely on for
// ordering.
const ISODateLayout = "2006-01-02"

// ParseISODate parses a stored date string.
func ParseISODate(value string) (time.Time, error) {
	d, err := time.Parse(ISODateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", value, err)
	}
	return d, nil
}

// AddDaysISO returns the ISO date string `days` days after `value`.
func AddDaysISO(value string, days int) (string, error) {
	d, err := ParseISODate(value)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, days).Format(ISODateLayout), nil
}

// TodayISO returns the current date as an ISO date string.
func TodayISO() string {
	return time.Now().UTC().Format(ISODateLayout)
}
