// Package recur posts instances of approved recurring expense
// templates on a cron schedule.
package recur

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/White-Devil2839/peerflow/internal/ledger"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage"
)

// Scheduler sweeps recurring templates and posts a fresh pending
// expense for each one that is due. Posted instances go through the
// normal approval vote like any hand-entered expense.
type Scheduler struct {
	store  storage.Store
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time
}

func NewScheduler(store storage.Store, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:  store,
		cron:   cron.New(),
		logger: logger,
		now:    time.Now,
	}
}

// Start registers the sweep under spec and starts the cron runner.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.Sweep(context.Background()); err != nil {
			s.logger.Error("recurring sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule recurring sweep: %w", err)
	}
	s.cron.Start()
	s.logger.Info("recurring scheduler started", "spec", spec)
	return nil
}

// Stop halts the cron runner, waiting for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep posts one instance for every template that is due. Errors on
// individual templates are logged and skipped so one bad template
// cannot wedge the whole sweep.
func (s *Scheduler) Sweep(ctx context.Context) error {
	templates, err := s.store.ListRecurringTemplates(ctx)
	if err != nil {
		return fmt.Errorf("list templates: %w", err)
	}

	now := s.now()
	posted := 0
	for _, tmpl := range templates {
		if !Due(tmpl, now) {
			continue
		}
		if err := s.post(ctx, tmpl, now); err != nil {
			s.logger.Error("post recurring instance failed",
				"template_id", tmpl.ID, "error", err)
			continue
		}
		posted++
	}
	if posted > 0 {
		s.logger.Info("recurring sweep complete", "posted", posted)
	}
	return nil
}

func (s *Scheduler) post(ctx context.Context, tmpl *models.Expense, now time.Time) error {
	group, err := s.store.GetGroup(ctx, tmpl.GroupID)
	if err != nil {
		return fmt.Errorf("load group: %w", err)
	}

	splits := make([]models.Split, len(tmpl.Splits))
	copy(splits, tmpl.Splits)

	instance := &models.Expense{
		GroupID:           tmpl.GroupID,
		CreatedBy:         tmpl.CreatedBy,
		Description:       tmpl.Description,
		TotalAmount:       tmpl.TotalAmount,
		PaidBy:            tmpl.PaidBy,
		Splits:            splits,
		Status:            models.ExpensePending,
		RequiredApprovals: ledger.RequiredApprovals(len(group.Members)),
	}
	if len(group.Members) == 1 {
		instance.Status = models.ExpenseApproved
	}

	if err := s.store.CreateExpense(ctx, instance); err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	if err := s.store.TouchExpensePosted(ctx, tmpl.ID, now.Unix()); err != nil {
		return fmt.Errorf("touch template: %w", err)
	}

	s.logger.Info("recurring instance posted",
		"template_id", tmpl.ID, "instance_id", instance.ID, "group_id", tmpl.GroupID)
	return nil
}

// Due reports whether a recurring template should post another
// instance at now. A template that has never posted anchors its cycle
// at its creation time.
func Due(tmpl *models.Expense, now time.Time) bool {
	if !tmpl.Recurring || tmpl.Recurrence == nil || !tmpl.Recurrence.Frequency.Valid() {
		return false
	}
	last := tmpl.LastPostedAt
	if last == 0 {
		last = tmpl.CreatedAt
	}
	return !now.Before(NextOccurrence(time.Unix(last, 0), tmpl.Recurrence))
}

// NextOccurrence returns the next posting time after the given anchor.
func NextOccurrence(after time.Time, r *models.Recurrence) time.Time {
	interval := r.Interval
	if interval < 1 {
		interval = 1
	}
	switch r.Frequency {
	case models.FrequencyDaily:
		return after.AddDate(0, 0, interval)
	case models.FrequencyWeekly:
		return after.AddDate(0, 0, 7*interval)
	case models.FrequencyMonthly:
		return after.AddDate(0, interval, 0)
	}
	return after
}
