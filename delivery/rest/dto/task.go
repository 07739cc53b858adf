package dto

import (
	"fmt"
	"strings"
	"time"

	"cadence/domain/entity"
	"cadence/domain/repository"
)

// CreateTaskRequest mirrors the ParsedTaskInput record produced by the
// language-model collaborator. The free-text due_date and
// recurrence_description fields pass through to the scheduling engine
// untouched; unrecognized text degrades the task instead of failing the
// request.
type CreateTaskRequest struct {
	Content               string `json:"content" binding:"required"`
	Priority              string `json:"priority"`
	Category              string `json:"category"`
	DueDate               string `json:"due_date"`
	IsRecurring           bool   `json:"is_recurring"`
	RecurrenceDescription string `json:"recurrence_description"`
}

// Validate rejects structurally invalid requests. Date/pattern grammar is
// deliberately not validated here; the engine handles that gracefully.
func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content must not be blank")
	}
	if len(r.Content) > 2000 {
		return fmt.Errorf("content exceeds 2000 characters")
	}
	switch strings.ToLower(r.Priority) {
	case "", "low", "medium", "high":
	default:
		return fmt.Errorf("priority must be one of low, medium, high")
	}
	return nil
}

// ToParsedInput converts the request into the engine's input record
func (r *CreateTaskRequest) ToParsedInput() entity.ParsedTaskInput {
	return entity.ParsedTaskInput{
		Content:               r.Content,
		Priority:              r.Priority,
		Category:              r.Category,
		DueDate:               r.DueDate,
		IsRecurring:           r.IsRecurring,
		RecurrenceDescription: r.RecurrenceDescription,
	}
}

// RescheduleRequest moves one occurrence to a new date
type RescheduleRequest struct {
	OccurrenceID string   `json:"occurrence_id" binding:"required"`
	NewDate      DateOnly `json:"new_date" binding:"required"`
	Propagate    bool     `json:"propagate"`
}

// Validate checks the reschedule payload
func (r *RescheduleRequest) Validate() error {
	if r.NewDate.IsZero() {
		return fmt.Errorf("new_date is required")
	}
	return nil
}

// PatternResponse is the recurrence rule portion of a task response
type PatternResponse struct {
	Frequency   entity.Frequency `json:"frequency"`
	Interval    int              `json:"interval"`
	Unit        entity.Unit      `json:"unit"`
	NextDueDate *time.Time       `json:"next_due_date,omitempty"`
}

// OccurrenceResponse is one materialized occurrence
type OccurrenceResponse struct {
	ID            string                  `json:"id"`
	ScheduledDate time.Time               `json:"scheduled_date"`
	CompletedDate *time.Time              `json:"completed_date,omitempty"`
	Status        entity.OccurrenceStatus `json:"status"`
	DelayReason   string                  `json:"delay_reason,omitempty"`
}

// TaskResponse is the full task representation
type TaskResponse struct {
	ID            string               `json:"id"`
	Content       string               `json:"content"`
	OriginalInput string               `json:"original_input"`
	Priority      entity.Priority      `json:"priority"`
	Category      string               `json:"category,omitempty"`
	Status        entity.TaskStatus    `json:"status"`
	DueDate       *time.Time           `json:"due_date,omitempty"`
	IsRecurring   bool                 `json:"is_recurring"`
	Recurrence    *PatternResponse     `json:"recurrence,omitempty"`
	Occurrences   []OccurrenceResponse `json:"occurrences,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	CompletedAt   *time.Time           `json:"completed_at,omitempty"`
}

// NewTaskResponse converts a task entity to its response form
func NewTaskResponse(t *entity.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:            t.ID,
		Content:       t.Content,
		OriginalInput: t.OriginalInput,
		Priority:      t.Priority,
		Category:      t.Category,
		Status:        t.Status,
		DueDate:       t.DueDate,
		IsRecurring:   t.IsRecurring,
		CreatedAt:     t.CreatedAt,
		CompletedAt:   t.CompletedAt,
	}

	if t.Recurrence != nil {
		resp.Recurrence = &PatternResponse{
			Frequency:   t.Recurrence.Frequency,
			Interval:    t.Recurrence.Interval,
			Unit:        t.Recurrence.Unit,
			NextDueDate: t.Recurrence.NextDueDate,
		}
	}

	for _, occ := range t.Occurrences {
		resp.Occurrences = append(resp.Occurrences, OccurrenceResponse{
			ID:            occ.ID,
			ScheduledDate: occ.ScheduledDate,
			CompletedDate: occ.CompletedDate,
			Status:        occ.Status,
			DelayReason:   occ.DelayReason,
		})
	}

	return resp
}

// ListTasksQuery represents query parameters for listing tasks
type ListTasksQuery struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// ToFilter validates and converts the query into a repository filter
func (q *ListTasksQuery) ToFilter() (repository.TaskFilter, error) {
	filter := repository.TaskFilter{
		Category: q.Category,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	if q.Status != "" {
		status := entity.TaskStatus(q.Status)
		switch status {
		case entity.TaskStatusPending, entity.TaskStatusCompleted,
			entity.TaskStatusDelayed, entity.TaskStatusCancelled:
			filter.Status = &status
		default:
			return filter, fmt.Errorf("unknown status %q", q.Status)
		}
	}

	if q.Priority != "" {
		priority := entity.Priority(strings.ToLower(q.Priority))
		switch priority {
		case entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh:
			filter.Priority = &priority
		default:
			return filter, fmt.Errorf("unknown priority %q", q.Priority)
		}
	}

	return filter, nil
}

// TaskListResponse is a paginated list of tasks
type TaskListResponse struct {
	Tasks      []*TaskResponse `json:"tasks"`
	Pagination PaginationInfo  `json:"pagination"`
}

// PaginationInfo carries paging metadata
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
