package task

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"cadence/domain"
	"cadence/domain/entity"
	"cadence/domain/repository"
)

// fakeRepo is an in-memory TaskRepository for service tests
type fakeRepo struct {
	mu    sync.Mutex
	tasks map[string]entity.Task
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: make(map[string]entity.Task)}
}

func (r *fakeRepo) Create(_ context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeRepo) Update(_ context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &task, nil
}

func (r *fakeRepo) List(_ context.Context, filter repository.TaskFilter) ([]*entity.Task, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Task
	for id := range r.tasks {
		task := r.tasks[id]
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		out = append(out, &task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeRepo) FindDueOccurrences(_ context.Context, by time.Time, limit int) ([]*entity.Occurrence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []*entity.Occurrence
	for id := range r.tasks {
		task := r.tasks[id]
		for i := range task.Occurrences {
			occ := task.Occurrences[i]
			if occ.Status == entity.OccurrenceScheduled && !occ.ScheduledDate.After(by) {
				due = append(due, &occ)
			}
		}
	}
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

var testNow = time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo).WithClock(func() time.Time { return testNow })
}

func TestCreateFromParsed(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.CreateFromParsed(context.Background(), entity.ParsedTaskInput{
		Content:               "water the plants",
		Priority:              "low",
		DueDate:               "tomorrow",
		IsRecurring:           true,
		RecurrenceDescription: "weekly",
	})
	if err != nil {
		t.Fatalf("CreateFromParsed failed: %v", err)
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("created task not persisted: %v", err)
	}
	if !stored.IsRecurring || len(stored.Occurrences) != 5 {
		t.Errorf("stored task recurring=%v occurrences=%d", stored.IsRecurring, len(stored.Occurrences))
	}
	if stored.DueDate == nil || !stored.DueDate.Equal(time.Date(2024, 4, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("due date = %v", stored.DueDate)
	}
	if !stored.CreatedAt.Equal(testNow) {
		t.Errorf("created at = %v, expected injected clock value", stored.CreatedAt)
	}
}

func TestCreateFromParsedRejectsEmptyContent(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.CreateFromParsed(context.Background(), entity.ParsedTaskInput{Content: "   "})
	if !errors.Is(err, domain.ErrBadParamInput) {
		t.Errorf("err = %v, expected ErrBadParamInput", err)
	}
}

func TestRescheduleService(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.CreateFromParsed(context.Background(), entity.ParsedTaskInput{
		Content:               "report",
		DueDate:               "2024-05-01",
		IsRecurring:           true,
		RecurrenceDescription: "monthly",
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	target := created.Occurrences[1]
	newDate := target.ScheduledDate.AddDate(0, 0, 10)

	updated, err := svc.Reschedule(context.Background(), created.ID, target.ID, newDate, true)
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if !updated.Occurrences[1].ScheduledDate.Equal(newDate) {
		t.Errorf("occurrence not moved: %v", updated.Occurrences[1].ScheduledDate)
	}

	stored, _ := repo.FindByID(context.Background(), created.ID)
	if !stored.Occurrences[1].ScheduledDate.Equal(newDate) {
		t.Errorf("reschedule not persisted")
	}
	if stored.Occurrences[1].Status != entity.OccurrenceDelayed {
		t.Errorf("stored status = %q", stored.Occurrences[1].Status)
	}
}

func TestRescheduleUnknownOccurrenceID(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.CreateFromParsed(context.Background(), entity.ParsedTaskInput{
		Content:               "report",
		DueDate:               "2024-05-01",
		IsRecurring:           true,
		RecurrenceDescription: "monthly",
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err = svc.Reschedule(context.Background(), created.ID, "no-such-occurrence", testNow, false)
	if !errors.Is(err, domain.ErrOccurrenceNotFound) {
		t.Errorf("err = %v, expected ErrOccurrenceNotFound", err)
	}
}

func TestRescheduleUnknownTask(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Reschedule(context.Background(), "missing", "whatever", testNow, false)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, expected ErrNotFound", err)
	}
}

func TestCompleteAndCancel(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.CreateFromParsed(context.Background(), entity.ParsedTaskInput{Content: "one-off"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	completed, err := svc.Complete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if completed.Status != entity.TaskStatusCompleted || completed.CompletedAt == nil {
		t.Errorf("task not completed: %+v", completed)
	}

	// a completed task is no longer cancellable
	if _, err := svc.Cancel(context.Background(), created.ID); !errors.Is(err, domain.ErrTaskCannotCancel) {
		t.Errorf("err = %v, expected ErrTaskCannotCancel", err)
	}

	other, err := svc.CreateFromParsed(context.Background(), entity.ParsedTaskInput{Content: "second"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	cancelled, err := svc.Cancel(context.Background(), other.ID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != entity.TaskStatusCancelled {
		t.Errorf("status = %q", cancelled.Status)
	}
}
