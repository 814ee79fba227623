// Package alerts runs the scheduled budget alert checks. On each run it
// evaluates every active user's budgets against the current month's spending
// and logs an alert for each budget that is over or past its warning
// threshold. Log output stands in for a notification channel.
package alerts

import (
	"time"

	"github.com/robfig/cron/v3"

	"spendly/internal/budget"
	"spendly/internal/logger"
	"spendly/internal/services"
)

// Scheduler periodically checks budgets and emits alerts.
type Scheduler struct {
	users   services.UserServicer
	budgets services.BudgetServicer
	cron    *cron.Cron
	spec    string
}

// NewScheduler creates a Scheduler that runs on the given cron spec.
func NewScheduler(users services.UserServicer, budgets services.BudgetServicer, spec string) *Scheduler {
	return &Scheduler{
		users:   users,
		budgets: budgets,
		cron:    cron.New(),
		spec:    spec,
	}
}

// Start registers the check job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.CheckNow(time.Now())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	logger.Get().Infow("budget alert scheduler started", "spec", s.spec)
	return nil
}

// Stop stops the cron loop and waits for a running check to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// CheckNow runs a single alert check for all active users. It returns the
// number of alerts emitted so callers can observe the outcome.
func (s *Scheduler) CheckNow(now time.Time) int {
	log := logger.Get()

	userIDs, err := s.users.ListActiveUserIDs()
	if err != nil {
		log.Errorw("alert check failed to list users", "error", err.Error())
		return 0
	}

	alerted := 0
	for _, userID := range userIDs {
		statuses, err := s.budgets.GetBudgetStatuses(userID, now)
		if err != nil {
			log.Errorw("alert check failed for user", "user_id", userID, "error", err.Error())
			continue
		}

		for _, status := range statuses {
			if !status.Alerts.Enabled {
				continue
			}
			switch status.Status {
			case budget.StatusOver:
				log.Warnw("budget exceeded",
					"user_id", userID,
					"category", status.Category,
					"budgeted", status.Amount,
					"spent", status.Spent,
					"overage", status.Overage,
				)
				alerted++
			case budget.StatusWarning:
				log.Warnw("budget warning threshold reached",
					"user_id", userID,
					"category", status.Category,
					"budgeted", status.Amount,
					"spent", status.Spent,
					"percentage", status.Percentage,
					"threshold", status.Alerts.Threshold,
				)
				alerted++
			}
		}
	}

	return alerted
}
