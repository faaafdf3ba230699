package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// DateKeyLayout is the canonical "YYYY-MM-DD" form used as the authoritative
// key for all range logic. Zero-padded keys compare lexicographically in
// chronological order.
const DateKeyLayout = "2006-01-02"

// ErrInvalidDate is returned for input that does not denote a calendar day.
var ErrInvalidDate = errors.New("invalid date")

// WIB is the organization's single operating timezone (UTC+7). Dates are
// always canonicalized against this offset, never the server's local zone.
var WIB = time.FixedZone("WIB", 7*60*60)

// ToDateKey returns the "YYYY-MM-DD" key of the WIB wall-clock day containing
// the given instant.
func ToDateKey(t time.Time) string {
	return t.In(WIB).Format(DateKeyLayout)
}

// ParseDateKey parses a strict "YYYY-MM-DD" key. Keys that are not
// zero-padded, or that name a day outside the calendar, fail with
// ErrInvalidDate.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil || t.Format(DateKeyLayout) != key {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	return t, nil
}

// IsDateKey reports whether key is a valid canonical date key.
func IsDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// ToAnchoredInstant returns 12:00:00 UTC on the key's calendar day. Anchoring
// at noon keeps the instant on the same day under any timezone conversion up
// to +-11 hours, so round-tripping through ToDateKey is lossless.
func ToAnchoredInstant(key string) (time.Time, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}

// ParseDateInput parses date input supplied by clients, which may be a bare
// date key or an ISO 8601 timestamp.
func ParseDateInput(input string) (time.Time, error) {
	formats := []string{
		DateKeyLayout,
		time.RFC3339,
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, input); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
}

// Overlaps reports whether the closed intervals [s1,e1] and [s2,e2] share at
// least one day. All arguments are canonical date keys.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 <= e2 && s2 <= e1
}

// DaysInMonth returns the day count of the given month, leap-year aware.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds returns the closed [start,end] date-key range covering month of
// year. The end key is the month's true last day; a fixed "-31" bound would
// admit out-of-month keys for shorter months.
func MonthBounds(year int, month time.Month) (string, string) {
	start := fmt.Sprintf("%04d-%02d-01", year, month)
	end := fmt.Sprintf("%04d-%02d-%02d", year, month, DaysInMonth(year, month))
	return start, end
}
