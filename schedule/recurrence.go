package schedule

import (
	"time"

	"cadence/domain/entity"
)

// NextDue computes the occurrence after anchor for the given pattern.
// Day and week intervals are exact elapsed days; month and year intervals
// use calendar arithmetic with the day-of-month clamped to the last valid
// day of the target month, so Jan 31 + 1 month lands on Feb 29/28 rather
// than rolling into March. The result is always strictly after anchor;
// a non-positive interval is treated as 1.
func NextDue(p *entity.RecurrencePattern, anchor time.Time) time.Time {
	interval := p.Interval
	if interval < 1 {
		interval = 1
	}

	switch p.Unit {
	case entity.UnitWeeks:
		return anchor.AddDate(0, 0, 7*interval)
	case entity.UnitMonths:
		return addCalendarMonths(anchor, interval)
	case entity.UnitYears:
		return addCalendarMonths(anchor, 12*interval)
	default:
		return anchor.AddDate(0, 0, interval)
	}
}

// addCalendarMonths adds whole calendar months, clamping the day of month
// instead of letting it overflow into the following month.
func addCalendarMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	total := int(month) - 1 + months
	year += total / 12
	targetMonth := time.Month(total%12 + 1)

	if last := daysInMonth(year, targetMonth); day > last {
		day = last
	}
	return time.Date(year, targetMonth, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month, leap years
// included. Day zero of the next month normalizes to the last day.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
