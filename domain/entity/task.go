package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusDelayed   TaskStatus = "delayed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// Priority represents task urgency
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalizes free-form priority text. Unknown values fall
// back to medium rather than failing.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// Frequency is a coarse label for a recurrence rule. Date math uses
// Interval and Unit, not Frequency.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
	FrequencyCustom  Frequency = "custom"
)

// Unit is the calendar unit used for recurrence arithmetic
type Unit string

const (
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
)

// RecurrencePattern is a normalized recurrence rule: every Interval Units.
// Interval is always >= 1.
type RecurrencePattern struct {
	Frequency   Frequency  `json:"frequency" db:"frequency"`
	Interval    int        `json:"interval" db:"recur_interval"`
	Unit        Unit       `json:"unit" db:"recur_unit"`
	NextDueDate *time.Time `json:"next_due_date,omitempty" db:"next_due_date"`
}

// OccurrenceStatus represents the state of a single scheduled instance
type OccurrenceStatus string

const (
	OccurrenceScheduled OccurrenceStatus = "scheduled"
	OccurrenceCompleted OccurrenceStatus = "completed"
	OccurrenceDelayed   OccurrenceStatus = "delayed"
	OccurrenceCancelled OccurrenceStatus = "cancelled"
)

// Occurrence is one materialized future instance of a recurring task
type Occurrence struct {
	ID            string           `json:"id" db:"id"`
	ParentID      string           `json:"parent_id" db:"task_id"`
	ScheduledDate time.Time        `json:"scheduled_date" db:"scheduled_date"`
	CompletedDate *time.Time       `json:"completed_date,omitempty" db:"completed_date"`
	Status        OccurrenceStatus `json:"status" db:"status"`
	DelayReason   string           `json:"delay_reason,omitempty" db:"delay_reason"`
}

// Task is a user-level unit of work, possibly recurring.
// Occurrences are kept in creation-sequence order; at creation time that
// is also non-decreasing date order, but a reschedule may move a date
// without re-sorting the slice.
type Task struct {
	ID            string             `json:"id" db:"id"`
	Content       string             `json:"content" db:"content"`
	OriginalInput string             `json:"original_input" db:"original_input"`
	Priority      Priority           `json:"priority" db:"priority"`
	Category      string             `json:"category,omitempty" db:"category"`
	Status        TaskStatus         `json:"status" db:"status"`
	DueDate       *time.Time         `json:"due_date,omitempty" db:"due_date"`
	IsRecurring   bool               `json:"is_recurring" db:"is_recurring"`
	Recurrence    *RecurrencePattern `json:"recurrence,omitempty"`
	Occurrences   []Occurrence       `json:"occurrences,omitempty"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty" db:"completed_at"`
}

// NewID returns a fresh task or occurrence identifier
func NewID() string {
	return uuid.New().String()
}

// FindOccurrence returns the occurrence with the given id, or nil
func (t *Task) FindOccurrence(id string) *Occurrence {
	for i := range t.Occurrences {
		if t.Occurrences[i].ID == id {
			return &t.Occurrences[i]
		}
	}
	return nil
}

// NextOccurrence returns the earliest still-scheduled occurrence, or nil
func (t *Task) NextOccurrence() *Occurrence {
	var next *Occurrence
	for i := range t.Occurrences {
		occ := &t.Occurrences[i]
		if occ.Status != OccurrenceScheduled {
			continue
		}
		if next == nil || occ.ScheduledDate.Before(next.ScheduledDate) {
			next = occ
		}
	}
	return next
}

// IsOverdue reports whether the task has a due date strictly before now
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status != TaskStatusPending {
		return false
	}
	return t.DueDate.Before(now)
}

// CanCancel reports whether the task may transition to cancelled
func (t *Task) CanCancel() bool {
	return t.Status == TaskStatusPending || t.Status == TaskStatusDelayed
}

// MarkCompleted transitions the task to completed
func (t *Task) MarkCompleted(at time.Time) {
	t.Status = TaskStatusCompleted
	t.CompletedAt = &at
}

// MarkCancelled transitions the task to cancelled
func (t *Task) MarkCancelled() {
	t.Status = TaskStatusCancelled
}
