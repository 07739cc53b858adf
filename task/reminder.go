package task

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cadence/domain/repository"
)

// ReminderConfig controls the due-occurrence sweeper
type ReminderConfig struct {
	Interval  time.Duration
	Lookahead time.Duration
	BatchSize int
}

// Reminder periodically scans for occurrences coming due within the
// lookahead window and reports them. Downstream notification delivery
// (chat, push) is a collaborator concern; this sweeper only surfaces
// what the engine scheduled.
type Reminder struct {
	repo   repository.TaskRepository
	cron   *cron.Cron
	cfg    ReminderConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewReminder creates a sweeper; call Start to begin polling
func NewReminder(repo repository.TaskRepository, cfg ReminderConfig, logger *zap.Logger) *Reminder {
	if cfg.Interval < time.Second {
		cfg.Interval = time.Minute
	}
	if cfg.Lookahead <= 0 {
		cfg.Lookahead = 24 * time.Hour
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Reminder{
		repo:   repo,
		cron:   cron.New(),
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Start registers the sweep job and starts the cron loop
func (r *Reminder) Start() error {
	spec := fmt.Sprintf("@every %ds", int(r.cfg.Interval.Seconds()))
	if _, err := r.cron.AddFunc(spec, r.sweep); err != nil {
		return fmt.Errorf("register reminder job: %w", err)
	}
	r.cron.Start()
	r.logger.Info("reminder sweeper started",
		zap.Duration("interval", r.cfg.Interval),
		zap.Duration("lookahead", r.cfg.Lookahead),
	)
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish
func (r *Reminder) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("reminder sweeper stopped")
}

func (r *Reminder) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	horizon := r.now().Add(r.cfg.Lookahead)
	due, err := r.repo.FindDueOccurrences(ctx, horizon, r.cfg.BatchSize)
	if err != nil {
		r.logger.Error("failed to fetch due occurrences", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}

	r.logger.Info("occurrences coming due", zap.Int("count", len(due)))
	for _, occ := range due {
		r.logger.Info("occurrence due",
			zap.String("occurrence_id", occ.ID),
			zap.String("task_id", occ.ParentID),
			zap.Time("scheduled", occ.ScheduledDate),
		)
	}
}
