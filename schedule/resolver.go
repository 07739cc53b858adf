// Package schedule is the recurrence and scheduling engine. Every entry
// point is a pure function of its inputs plus an explicit reference time,
// so the package never reads the ambient clock, never performs I/O and is
// safe for concurrent use.
package schedule

import (
	"regexp"
	"strings"
	"time"
)

// dateRule pairs a phrase predicate with its resolver. Rules are evaluated
// in declaration order and the first match wins; the ordering is part of
// the contract because later rules are unreachable once an earlier one
// matches an overlapping phrase.
type dateRule struct {
	match   func(text string) bool
	resolve func(text string, now time.Time) time.Time
}

var inMonthsRe = regexp.MustCompile(`^in\s+(\d+)\s+months?$`)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var dateRules = []dateRule{
	{exactly("today"), func(_ string, now time.Time) time.Time {
		return startOfDay(now)
	}},
	{exactly("tomorrow"), func(_ string, now time.Time) time.Time {
		return startOfDay(now).AddDate(0, 0, 1)
	}},
	{exactly("this week"), func(_ string, now time.Time) time.Time {
		return startOfDay(now).AddDate(0, 0, 7)
	}},
	{exactly("next week"), func(_ string, now time.Time) time.Time {
		return startOfDay(now).AddDate(0, 0, 14)
	}},
	{exactly("this weekend"), func(_ string, now time.Time) time.Time {
		// next Saturday; 0 days out when today already is Saturday
		days := int((time.Saturday - now.Weekday() + 7) % 7)
		return startOfDay(now).AddDate(0, 0, days)
	}},
	{exactly("next month"), func(_ string, now time.Time) time.Time {
		return addCalendarMonths(startOfDay(now), 1)
	}},
	// "in N months" advances exactly one month no matter what N says.
	// The count is parsed and discarded, matching the historical
	// behavior callers depend on.
	{inMonthsRe.MatchString, func(_ string, now time.Time) time.Time {
		return addCalendarMonths(startOfDay(now), 1)
	}},
	// Season phrases anchor to the current calendar year even when the
	// date has already passed. Preserved behavior, not an oversight.
	{exactly("before summer"), func(_ string, now time.Time) time.Time {
		return time.Date(now.Year(), time.June, 1, 0, 0, 0, 0, now.Location())
	}},
	{exactly("by spring"), func(_ string, now time.Time) time.Time {
		return time.Date(now.Year(), time.March, 20, 0, 0, 0, 0, now.Location())
	}},
	{isWeekdayName, func(text string, now time.Time) time.Time {
		// strictly after now: the same weekday resolves 7 days out
		target := weekdays[text]
		days := int((target - now.Weekday() + 7) % 7)
		if days == 0 {
			days = 7
		}
		return startOfDay(now).AddDate(0, 0, days)
	}},
}

// ResolveDate maps a relative-date phrase or an ISO-8601 string to a
// concrete date anchored at now. The phrase is matched case-insensitively
// against the whole trimmed string. An unrecognized phrase returns nil;
// callers treat nil as "no due date", never as an error.
func ResolveDate(text string, now time.Time) *time.Time {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	phrase := strings.ToLower(trimmed)
	for _, rule := range dateRules {
		if rule.match(phrase) {
			resolved := rule.resolve(phrase, now)
			return &resolved
		}
	}

	// ISO parse against the original casing: RFC 3339 markers are
	// case-sensitive.
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed
		}
	}

	return nil
}

func exactly(phrase string) func(string) bool {
	return func(text string) bool { return text == phrase }
}

func isWeekdayName(text string) bool {
	_, ok := weekdays[text]
	return ok
}

// startOfDay truncates a time to midnight in its own location
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
