package schedule

import (
	"time"

	"cadence/domain/entity"
)

// FromParsedInput assembles a fully scheduled task from the language-model
// collaborator's parsed record. Construction never fails: unresolvable
// due-date text leaves the due date unset, and unparsable recurrence text
// yields a plain non-recurring task. IsRecurring ends up true only when a
// pattern was actually parsed, regardless of what the input claimed.
func FromParsedInput(parsed entity.ParsedTaskInput, now time.Time) entity.Task {
	task := entity.Task{
		ID:            entity.NewID(),
		Content:       parsed.Content,
		OriginalInput: parsed.Content,
		Priority:      entity.ParsePriority(parsed.Priority),
		Category:      parsed.Category,
		Status:        entity.TaskStatusPending,
		CreatedAt:     now,
	}

	if parsed.DueDate != "" {
		task.DueDate = ResolveDate(parsed.DueDate, now)
	}

	if parsed.IsRecurring && parsed.RecurrenceDescription != "" {
		if pattern := ParsePattern(parsed.RecurrenceDescription); pattern != nil {
			task.IsRecurring = true
			task.Recurrence = pattern
			if task.DueDate != nil {
				next := NextDue(pattern, *task.DueDate)
				pattern.NextDueDate = &next
			}
			task.Occurrences = GenerateOccurrences(&task, DefaultOccurrenceCount, now)
		}
	}

	return task
}
