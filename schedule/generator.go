package schedule

import (
	"time"

	"cadence/domain/entity"
)

// DefaultOccurrenceCount is how many future occurrences are materialized
// for a newly created recurring task.
const DefaultOccurrenceCount = 5

// GenerateOccurrences materializes a finite batch of future occurrences
// by repeatedly applying NextDue, starting from the task's due date or
// from now when no due date is set. The batch is one-shot: extending the
// horizon later means calling again with a later anchor. Returns nil for
// non-recurring tasks.
func GenerateOccurrences(task *entity.Task, count int, now time.Time) []entity.Occurrence {
	if task == nil || !task.IsRecurring || task.Recurrence == nil {
		return nil
	}
	if count <= 0 {
		count = DefaultOccurrenceCount
	}

	anchor := now
	if task.DueDate != nil {
		anchor = *task.DueDate
	}

	occurrences := make([]entity.Occurrence, 0, count)
	for i := 0; i < count; i++ {
		anchor = NextDue(task.Recurrence, anchor)
		occurrences = append(occurrences, entity.Occurrence{
			ID:            entity.NewID(),
			ParentID:      task.ID,
			ScheduledDate: anchor,
			Status:        entity.OccurrenceScheduled,
		})
	}
	return occurrences
}
