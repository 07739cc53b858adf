package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateOnly wraps time.Time for JSON fields that carry calendar dates.
// It accepts a plain date, a date-time without zone (assumed UTC) or a
// full RFC 3339 timestamp, and always marshals as YYYY-MM-DD.
type DateOnly struct {
	time.Time
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// UnmarshalJSON parses the supported date formats
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "" || s == "null" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse date %q, expected YYYY-MM-DD", s)
}

// MarshalJSON renders the date portion only
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format("2006-01-02"))
}

// ToTime returns the wrapped time, or nil when unset
func (d *DateOnly) ToTime() *time.Time {
	if d.IsZero() {
		return nil
	}
	return &d.Time
}
