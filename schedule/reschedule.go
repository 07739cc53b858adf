package schedule

import (
	"fmt"
	"time"

	"cadence/domain/entity"
)

// Reschedule moves one occurrence of a task to newDate and returns the
// updated task value. The input task is never mutated: the occurrence
// slice is cloned before editing, so other holders of the same task keep
// seeing the old version and the caller must treat the return value as
// the sole current one.
//
// The target occurrence becomes delayed with a delay reason citing its
// original date. When propagate is true every occurrence after the target
// in sequence order is shifted by the same delta; their statuses are left
// alone. Shifted occurrences are not re-sorted, so a large backward move
// can leave the sequence out of date order. Sequence order is the
// contract here, date order is best effort.
//
// An occurrence id that is not part of the task returns the task
// unchanged.
func Reschedule(task entity.Task, occurrenceID string, newDate time.Time, propagate bool) entity.Task {
	idx := -1
	for i := range task.Occurrences {
		if task.Occurrences[i].ID == occurrenceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return task
	}

	occurrences := make([]entity.Occurrence, len(task.Occurrences))
	copy(occurrences, task.Occurrences)

	target := &occurrences[idx]
	delta := newDate.Sub(target.ScheduledDate)
	target.DelayReason = fmt.Sprintf("rescheduled from %s", target.ScheduledDate.Format("2006-01-02"))
	target.ScheduledDate = newDate
	target.Status = entity.OccurrenceDelayed

	if propagate {
		for i := idx + 1; i < len(occurrences); i++ {
			occurrences[i].ScheduledDate = occurrences[i].ScheduledDate.Add(delta)
		}
	}

	task.Occurrences = occurrences
	return task
}
