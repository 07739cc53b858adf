package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cadence/domain"
	"cadence/domain/entity"
	"cadence/domain/repository"
)

// taskRepository implements repository.TaskRepository on PostgreSQL
type taskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new PostgreSQL task repository
func NewTaskRepository(db *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, content, original_input, priority, category, status,
	due_date, is_recurring, frequency, recur_interval, recur_unit,
	next_due_date, created_at, completed_at`

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	if _, err := tx.Exec(ctx, query, taskArgs(task)...); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	if err := insertOccurrences(ctx, tx, task); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE tasks SET
			content = $2, original_input = $3, priority = $4, category = $5,
			status = $6, due_date = $7, is_recurring = $8, frequency = $9,
			recur_interval = $10, recur_unit = $11, next_due_date = $12,
			created_at = $13, completed_at = $14
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query, taskArgs(task)...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	// occurrence rows are rewritten wholesale; sequence order is the
	// stored order and must survive round trips even when dates are not
	// ascending after a reschedule
	if _, err := tx.Exec(ctx, `DELETE FROM task_occurrences WHERE task_id = $1`, task.ID); err != nil {
		return fmt.Errorf("clear occurrences: %w", err)
	}
	if err := insertOccurrences(ctx, tx, task); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select task: %w", err)
	}

	if err := r.loadOccurrences(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]*entity.Task, int64, error) {
	where := "WHERE 1=1"
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		where += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`SELECT %s FROM tasks %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		taskColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, task := range tasks {
		if err := r.loadOccurrences(ctx, task); err != nil {
			return nil, 0, err
		}
	}

	return tasks, total, nil
}

func (r *taskRepository) FindDueOccurrences(ctx context.Context, by time.Time, limit int) ([]*entity.Occurrence, error) {
	query := `
		SELECT id, task_id, scheduled_date, completed_date, status, delay_reason
		FROM task_occurrences
		WHERE status = 'scheduled' AND scheduled_date <= $1
		ORDER BY scheduled_date ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, by, limit)
	if err != nil {
		return nil, fmt.Errorf("select due occurrences: %w", err)
	}
	defer rows.Close()

	var due []*entity.Occurrence
	for rows.Next() {
		var occ entity.Occurrence
		if err := rows.Scan(&occ.ID, &occ.ParentID, &occ.ScheduledDate,
			&occ.CompletedDate, &occ.Status, &occ.DelayReason); err != nil {
			return nil, fmt.Errorf("scan occurrence: %w", err)
		}
		due = append(due, &occ)
	}
	return due, rows.Err()
}

func (r *taskRepository) loadOccurrences(ctx context.Context, task *entity.Task) error {
	query := `
		SELECT id, task_id, scheduled_date, completed_date, status, delay_reason
		FROM task_occurrences
		WHERE task_id = $1
		ORDER BY seq ASC
	`
	rows, err := r.db.Query(ctx, query, task.ID)
	if err != nil {
		return fmt.Errorf("select occurrences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var occ entity.Occurrence
		if err := rows.Scan(&occ.ID, &occ.ParentID, &occ.ScheduledDate,
			&occ.CompletedDate, &occ.Status, &occ.DelayReason); err != nil {
			return fmt.Errorf("scan occurrence: %w", err)
		}
		task.Occurrences = append(task.Occurrences, occ)
	}
	return rows.Err()
}

func insertOccurrences(ctx context.Context, tx pgx.Tx, task *entity.Task) error {
	query := `
		INSERT INTO task_occurrences (id, task_id, seq, scheduled_date, completed_date, status, delay_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, occ := range task.Occurrences {
		if _, err := tx.Exec(ctx, query, occ.ID, task.ID, i,
			occ.ScheduledDate, occ.CompletedDate, occ.Status, occ.DelayReason); err != nil {
			return fmt.Errorf("insert occurrence: %w", err)
		}
	}
	return nil
}

// taskArgs flattens a task into column order, recurrence fields nullable
func taskArgs(task *entity.Task) []any {
	var freq, unit *string
	var interval *int
	var nextDue *time.Time
	if task.Recurrence != nil {
		f := string(task.Recurrence.Frequency)
		u := string(task.Recurrence.Unit)
		n := task.Recurrence.Interval
		freq, unit, interval = &f, &u, &n
		nextDue = task.Recurrence.NextDueDate
	}

	return []any{
		task.ID, task.Content, task.OriginalInput, task.Priority, task.Category,
		task.Status, task.DueDate, task.IsRecurring, freq, interval, unit,
		nextDue, task.CreatedAt, task.CompletedAt,
	}
}

// scanTask reads one task row, reassembling the recurrence pattern from
// its nullable columns
func scanTask(row pgx.Row) (*entity.Task, error) {
	var (
		task     entity.Task
		freq     *string
		interval *int
		unit     *string
		nextDue  *time.Time
	)

	err := row.Scan(&task.ID, &task.Content, &task.OriginalInput, &task.Priority,
		&task.Category, &task.Status, &task.DueDate, &task.IsRecurring,
		&freq, &interval, &unit, &nextDue, &task.CreatedAt, &task.CompletedAt)
	if err != nil {
		return nil, err
	}

	if freq != nil && interval != nil && unit != nil {
		task.Recurrence = &entity.RecurrencePattern{
			Frequency:   entity.Frequency(*freq),
			Interval:    *interval,
			Unit:        entity.Unit(*unit),
			NextDueDate: nextDue,
		}
	}
	return &task, nil
}
