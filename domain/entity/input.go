package entity

// ParsedTaskInput is the loosely-structured record produced by the
// language-model collaborator for one user turn. DueDate and
// RecurrenceDescription are free text; the scheduling engine validates
// only its own date and pattern grammar, never upstream intent.
// The record is read-only input and is never mutated.
type ParsedTaskInput struct {
	Content               string `json:"content"`
	Priority              string `json:"priority"`
	Category              string `json:"category"`
	DueDate               string `json:"due_date,omitempty"`
	IsRecurring           bool   `json:"is_recurring"`
	RecurrenceDescription string `json:"recurrence_description,omitempty"`
}
