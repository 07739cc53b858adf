package schedule

import (
	"testing"
	"time"

	"cadence/domain/entity"
)

func recurringTask(due time.Time, pattern entity.RecurrencePattern) *entity.Task {
	d := due
	return &entity.Task{
		ID:          entity.NewID(),
		Content:     "renew insurance",
		Status:      entity.TaskStatusPending,
		DueDate:     &d,
		IsRecurring: true,
		Recurrence:  &pattern,
	}
}

func TestGenerateOccurrences(t *testing.T) {
	task := recurringTask(date(2024, 1, 1), entity.RecurrencePattern{
		Frequency: entity.FrequencyCustom,
		Interval:  6,
		Unit:      entity.UnitMonths,
	})

	occurrences := GenerateOccurrences(task, 5, wednesday)

	expected := []time.Time{
		date(2024, 7, 1),
		date(2025, 1, 1),
		date(2025, 7, 1),
		date(2026, 1, 1),
		date(2026, 7, 1),
	}

	if len(occurrences) != len(expected) {
		t.Fatalf("got %d occurrences, expected %d", len(occurrences), len(expected))
	}

	seen := make(map[string]bool)
	for i, occ := range occurrences {
		if !occ.ScheduledDate.Equal(expected[i]) {
			t.Errorf("occurrence %d scheduled at %v, expected %v", i, occ.ScheduledDate, expected[i])
		}
		if occ.ParentID != task.ID {
			t.Errorf("occurrence %d parent = %q, expected %q", i, occ.ParentID, task.ID)
		}
		if occ.Status != entity.OccurrenceScheduled {
			t.Errorf("occurrence %d status = %q, expected scheduled", i, occ.Status)
		}
		if occ.ID == "" || seen[occ.ID] {
			t.Errorf("occurrence %d id %q is empty or duplicated", i, occ.ID)
		}
		seen[occ.ID] = true
		if i > 0 && !occurrences[i-1].ScheduledDate.Before(occ.ScheduledDate) {
			t.Errorf("occurrence dates not strictly increasing at %d", i)
		}
	}
}

func TestGenerateOccurrencesAnchorsOnNowWithoutDueDate(t *testing.T) {
	task := recurringTask(time.Time{}, entity.RecurrencePattern{
		Frequency: entity.FrequencyDaily,
		Interval:  1,
		Unit:      entity.UnitDays,
	})
	task.DueDate = nil

	occurrences := GenerateOccurrences(task, 3, wednesday)
	if len(occurrences) != 3 {
		t.Fatalf("got %d occurrences, expected 3", len(occurrences))
	}
	if !occurrences[0].ScheduledDate.Equal(wednesday.AddDate(0, 0, 1)) {
		t.Errorf("first occurrence %v, expected one day after now", occurrences[0].ScheduledDate)
	}
}

func TestGenerateOccurrencesNonRecurring(t *testing.T) {
	tests := []struct {
		name string
		task *entity.Task
	}{
		{"nil task", nil},
		{"flag off", &entity.Task{IsRecurring: false, Recurrence: &entity.RecurrencePattern{Interval: 1, Unit: entity.UnitDays}}},
		{"missing pattern", &entity.Task{IsRecurring: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if occs := GenerateOccurrences(tt.task, 5, wednesday); len(occs) != 0 {
				t.Errorf("got %d occurrences, expected none", len(occs))
			}
		})
	}
}

func TestGenerateOccurrencesDefaultCount(t *testing.T) {
	task := recurringTask(date(2024, 1, 1), entity.RecurrencePattern{
		Frequency: entity.FrequencyWeekly,
		Interval:  1,
		Unit:      entity.UnitWeeks,
	})
	if occs := GenerateOccurrences(task, 0, wednesday); len(occs) != DefaultOccurrenceCount {
		t.Errorf("got %d occurrences, expected default %d", len(occs), DefaultOccurrenceCount)
	}
}
