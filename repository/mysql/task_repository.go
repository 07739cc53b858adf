package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"cadence/domain"
	"cadence/domain/entity"
	"cadence/domain/repository"
)

// taskRepository implements repository.TaskRepository on MySQL
type taskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new MySQL task repository
func NewTaskRepository(db *sqlx.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, content, original_input, priority, category, status,
	due_date, is_recurring, frequency, recur_interval, recur_unit,
	next_due_date, created_at, completed_at`

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query, taskArgs(task)...); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	if err := insertOccurrences(ctx, tx, task); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE tasks SET
			content = ?, original_input = ?, priority = ?, category = ?,
			status = ?, due_date = ?, is_recurring = ?, frequency = ?,
			recur_interval = ?, recur_unit = ?, next_due_date = ?,
			created_at = ?, completed_at = ?
		WHERE id = ?
	`
	args := taskArgs(task)
	// move id from first to last for the UPDATE placeholder order
	args = append(args[1:], args[0])
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		// RowsAffected is also zero for no-change updates; confirm absence
		var exists int
		if err := tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM tasks WHERE id = ?`, task.ID); err == nil && exists == 0 {
			return domain.ErrNotFound
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_occurrences WHERE task_id = ?`, task.ID); err != nil {
		return fmt.Errorf("clear occurrences: %w", err)
	}
	if err := insertOccurrences(ctx, tx, task); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	row := r.db.QueryRowxContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		where += " AND status = ?"
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		where += " AND priority = ?"
		args = append(args, *filter.Priority)
	}
	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, filter.Category)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tasks `+where, args...); err != nil {
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
	query := `SELECT ` + taskColumns + ` FROM tasks ` + where + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryxContext(ctx, query, args...)
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
		WHERE status = 'scheduled' AND scheduled_date <= ?
		ORDER BY scheduled_date ASC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, by, limit)
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
		WHERE task_id = ?
		ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query, task.ID)
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

func insertOccurrences(ctx context.Context, tx *sqlx.Tx, task *entity.Task) error {
	query := `
		INSERT INTO task_occurrences (id, task_id, seq, scheduled_date, completed_date, status, delay_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for i, occ := range task.Occurrences {
		if _, err := tx.ExecContext(ctx, query, occ.ID, task.ID, i,
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
		task.ID, task.Content, task.OriginalInput, string(task.Priority), task.Category,
		string(task.Status), task.DueDate, task.IsRecurring, freq, interval, unit,
		nextDue, task.CreatedAt, task.CompletedAt,
	}
}

// scanTask reads one task row, reassembling the recurrence pattern from
// its nullable columns
func scanTask(row sqlx.ColScanner) (*entity.Task, error) {
	var (
		task     entity.Task
		priority string
		status   string
		freq     *string
		interval *int
		unit     *string
		nextDue  *time.Time
	)

	err := row.Scan(&task.ID, &task.Content, &task.OriginalInput, &priority,
		&task.Category, &status, &task.DueDate, &task.IsRecurring,
		&freq, &interval, &unit, &nextDue, &task.CreatedAt, &task.CompletedAt)
	if err != nil {
		return nil, err
	}

	task.Priority = entity.Priority(priority)
	task.Status = entity.TaskStatus(status)
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
