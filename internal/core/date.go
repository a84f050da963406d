package core

import (
	"strings"
	"time"
)

// Date is a naive calendar date: no time of day, no timezone.
type Date struct {
	time.Time
}

// Accepted input formats, tried in order. The first full match wins.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
}

// ParseDate parses a flexible date string into a Date. It returns a
// *ValidationError naming the original text when no format matches.
func ParseDate(text string) (Date, error) {
	trimmed := strings.TrimSpace(text)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, &ValidationError{Field: "date", Value: text, Reason: "unrecognized date format, use YYYY-MM-DD"}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ISO renders the date as YYYY-MM-DD, the serialized form.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// MonthKey returns the YYYY-MM grouping key for the date. The fixed-width
// zero-padded form sorts lexicographically in chronological order.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// MarshalJSON serializes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

// UnmarshalJSON accepts any of the flexible input formats.
func (d *Date) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(text)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthLabel renders a YYYY-MM key as a "Month Year" display string. It is a
// pure function of the key; an unparseable key is returned unchanged so
// callers can still show something.
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}
