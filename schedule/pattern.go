package schedule

import (
	"regexp"
	"strconv"
	"strings"

	"cadence/domain/entity"
)

// patternRule pairs a frequency-phrase predicate with a pattern builder.
// Like the date rules, ordering matters: "twice a year" must be checked
// before the generic yearly phrases, and "every N months" before the
// bare monthly ones.
type patternRule struct {
	match func(text string) bool
	build func(text string) *entity.RecurrencePattern
}

var everyNMonthsRe = regexp.MustCompile(`every\s+(\d+)\s+months`)

var patternRules = []patternRule{
	{containsAny("twice a year"), fixed(entity.FrequencyCustom, 6, entity.UnitMonths)},
	{everyNMonthsRe.MatchString, func(text string) *entity.RecurrencePattern {
		n, _ := strconv.Atoi(everyNMonthsRe.FindStringSubmatch(text)[1])
		if n < 1 {
			n = 1
		}
		return &entity.RecurrencePattern{
			Frequency: entity.FrequencyMonthly,
			Interval:  n,
			Unit:      entity.UnitMonths,
		}
	}},
	{containsAny("monthly", "every month"), fixed(entity.FrequencyMonthly, 1, entity.UnitMonths)},
	{containsAny("quarterly", "every quarter"), fixed(entity.FrequencyCustom, 3, entity.UnitMonths)},
	{containsAny("annually", "yearly", "every year"), fixed(entity.FrequencyYearly, 1, entity.UnitYears)},
	{containsAny("weekly", "every week"), fixed(entity.FrequencyWeekly, 1, entity.UnitWeeks)},
	{containsAny("daily", "every day"), fixed(entity.FrequencyDaily, 1, entity.UnitDays)},
}

// ParsePattern maps a free-text frequency phrase to a normalized
// recurrence pattern. Matching is case-insensitive substring matching in
// fixed priority order. Unrecognized text returns nil, never an error.
func ParsePattern(text string) *entity.RecurrencePattern {
	phrase := strings.ToLower(strings.TrimSpace(text))
	if phrase == "" {
		return nil
	}
	for _, rule := range patternRules {
		if rule.match(phrase) {
			return rule.build(phrase)
		}
	}
	return nil
}

func containsAny(phrases ...string) func(string) bool {
	return func(text string) bool {
		for _, p := range phrases {
			if strings.Contains(text, p) {
				return true
			}
		}
		return false
	}
}

func fixed(freq entity.Frequency, interval int, unit entity.Unit) func(string) *entity.RecurrencePattern {
	return func(string) *entity.RecurrencePattern {
		return &entity.RecurrencePattern{Frequency: freq, Interval: interval, Unit: unit}
	}
}
