package utils

import (
	"testing"
)

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2025-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != 1 || d.Day() != 1 {
		t.Errorf("parsed wrong date: %v", d)
	}

	if _, err := ParseISODate("01/01/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := ParseISODate(""); err == nil {
		t.Error("expected error for empty date")
	}
}

func TestAddDaysISO(t *testing.T) {
	cases := []struct {
		date string
		days int
		want string
	}{
		{"2025-01-01", 15, "2025-01-16"},
		{"2025-01-20", 15, "2025-02-04"},
		{"2024-12-25", 15, "2025-01-09"},
		{"2024-02-14", 15, "2024-02-29"}, // leap year
	}

	for _, c := range cases {
		got, err := AddDaysISO(c.date, c.days)
		if err != nil {
			t.Fatalf("AddDaysISO(%q, %d): %v", c.date, c.days, err)
		}
		if got != c.want {
			t.Errorf("AddDaysISO(%q, %d) = %q, want %q", c.date, c.days, got, c.want)
		}
	}

	if _, err := AddDaysISO("not-a-date", 15); err == nil {
		t.Error("expected error for invalid date")
	}
}
