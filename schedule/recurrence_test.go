package schedule

import (
	"testing"
	"time"

	"cadence/domain/entity"
)

func TestNextDue(t *testing.T) {
	tests := []struct {
		name     string
		pattern  entity.RecurrencePattern
		anchor   time.Time
		expected time.Time
	}{
		{
			name:     "one day",
			pattern:  entity.RecurrencePattern{Interval: 1, Unit: entity.UnitDays},
			anchor:   date(2024, 4, 10),
			expected: date(2024, 4, 11),
		},
		{
			name:     "two weeks",
			pattern:  entity.RecurrencePattern{Interval: 2, Unit: entity.UnitWeeks},
			anchor:   date(2024, 4, 10),
			expected: date(2024, 4, 24),
		},
		{
			name:     "six months",
			pattern:  entity.RecurrencePattern{Interval: 6, Unit: entity.UnitMonths},
			anchor:   date(2024, 1, 1),
			expected: date(2024, 7, 1),
		},
		{
			name:     "month end clamps to leap February",
			pattern:  entity.RecurrencePattern{Interval: 1, Unit: entity.UnitMonths},
			anchor:   date(2024, 1, 31),
			expected: date(2024, 2, 29),
		},
		{
			name:     "month end clamps to short February",
			pattern:  entity.RecurrencePattern{Interval: 1, Unit: entity.UnitMonths},
			anchor:   date(2023, 1, 31),
			expected: date(2023, 2, 28),
		},
		{
			name:     "month addition crosses a year boundary",
			pattern:  entity.RecurrencePattern{Interval: 3, Unit: entity.UnitMonths},
			anchor:   date(2024, 11, 30),
			expected: date(2025, 2, 28),
		},
		{
			name:     "year addition clamps leap day",
			pattern:  entity.RecurrencePattern{Interval: 1, Unit: entity.UnitYears},
			anchor:   date(2024, 2, 29),
			expected: date(2025, 2, 28),
		},
		{
			name:     "zero interval still advances",
			pattern:  entity.RecurrencePattern{Interval: 0, Unit: entity.UnitDays},
			anchor:   date(2024, 4, 10),
			expected: date(2024, 4, 11),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NextDue(&tt.pattern, tt.anchor)
			if !result.Equal(tt.expected) {
				t.Errorf("NextDue(%+v, %v) = %v, expected %v", tt.pattern, tt.anchor, result, tt.expected)
			}
			if !result.After(tt.anchor) {
				t.Errorf("NextDue result %v is not strictly after anchor %v", result, tt.anchor)
			}
		})
	}
}
