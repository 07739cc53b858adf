package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cadence/domain"
	"cadence/domain/entity"
	"cadence/domain/repository"
	"cadence/schedule"
)

// Service wraps the scheduling engine with persistence. The engine is
// pure; this layer supplies the reference clock and serializes each
// task's authoritative copy through the repository.
type Service struct {
	repo repository.TaskRepository
	now  func() time.Time
}

// NewService creates a task service backed by the given repository
func NewService(repo repository.TaskRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the reference clock. Tests use this to keep the
// whole create/reschedule path deterministic.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateFromParsed builds a fully scheduled task from the language-model
// collaborator's parsed record and persists it. Unrecognized date or
// recurrence text degrades the task rather than failing the call.
func (s *Service) CreateFromParsed(ctx context.Context, parsed entity.ParsedTaskInput) (*entity.Task, error) {
	if strings.TrimSpace(parsed.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrBadParamInput)
	}

	task := schedule.FromParsedInput(parsed, s.now())
	if err := s.repo.Create(ctx, &task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// Get returns a single task with its occurrences
func (s *Service) Get(ctx context.Context, id string) (*entity.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns tasks matching the filter plus the unpaginated total
func (s *Service) List(ctx context.Context, filter repository.TaskFilter) ([]*entity.Task, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// Reschedule moves one occurrence of a task to newDate, optionally
// shifting all later occurrences by the same delta, and persists the
// updated task. The engine treats an unknown occurrence id as a no-op;
// this layer surfaces it as ErrOccurrenceNotFound so the delivery layer
// can answer 404.
func (s *Service) Reschedule(ctx context.Context, taskID, occurrenceID string, newDate time.Time, propagate bool) (*entity.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.FindOccurrence(occurrenceID) == nil {
		return nil, domain.ErrOccurrenceNotFound
	}

	updated := schedule.Reschedule(*task, occurrenceID, newDate, propagate)
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("persist reschedule: %w", err)
	}
	return &updated, nil
}

// Complete marks a task completed at the current reference time
func (s *Service) Complete(ctx context.Context, id string) (*entity.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.MarkCompleted(s.now())
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("persist completion: %w", err)
	}
	return task, nil
}

// Cancel marks a task cancelled. The task and its occurrences stay in
// storage; there is no hard-delete path.
func (s *Service) Cancel(ctx context.Context, id string) (*entity.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.CanCancel() {
		return nil, domain.ErrTaskCannotCancel
	}

	task.MarkCancelled()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("persist cancellation: %w", err)
	}
	return task, nil
}
