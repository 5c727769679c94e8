package shared

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used on the wire
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for dates that are neither YYYY-MM-DD nor RFC 3339
var ErrInvalidDate = ErrInvalidInput.WithMessage("Dates must be YYYY-MM-DD or RFC 3339")

// ParseDate parses a request date. An empty value yields the zero time.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(DateLayout, raw, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// ParseDates parses every entry of raw
func ParseDates(raw []string) ([]time.Time, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]time.Time, len(raw))
	for i, r := range raw {
		t, err := ParseDate(r)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// FormatDate renders the calendar date of t
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
