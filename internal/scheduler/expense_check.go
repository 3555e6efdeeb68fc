package scheduler

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"reminderkeeper/internal/domain/repository"
	"reminderkeeper/pkg/mailer/templates"
	"reminderkeeper/pkg/notify"
)

// ExpenseChecker scans every expense and alerts owners whose running total has
// reached the limit. The check keeps no last-notified state: an expense that
// stays over its limit is alerted again on every tick.
type ExpenseChecker struct {
	Repo       repository.ExpenseRepository
	Dispatcher notify.Dispatcher
	Logger     *logrus.Logger
}

func NewExpenseChecker(repo repository.ExpenseRepository, d notify.Dispatcher, logger *logrus.Logger) *ExpenseChecker {
	return &ExpenseChecker{Repo: repo, Dispatcher: d, Logger: logger}
}

// Check evaluates all expenses against their limits. Per-record failures
// (unresolvable owner, dispatch error) are logged and skipped; they never
// abort the rest of the scan.
func (c *ExpenseChecker) Check(ctx context.Context) {
	records, err := c.Repo.ListWithOwners()
	if err != nil {
		c.Logger.WithError(err).Error("expense scan failed")
		return
	}
	if len(records) == 0 {
		c.Logger.Debug("no expense data found")
		return
	}

	for _, rec := range records {
		e := rec.Expense
		if !e.OverLimit() {
			continue
		}
		if rec.Owner == nil {
			c.Logger.WithField("expense_id", e.ID).Warn("user not found for expense")
			continue
		}

		subject := "Spending limit exceeded: " + e.Title
		body := fmt.Sprintf(
			"Dear %s, your limit for %s is out of limit. Your current expense is %v, and your limit is %v.",
			rec.Owner.Name, e.Title, e.CurrentSpent, e.MaximumAmount,
		)
		if err := c.Dispatcher.Dispatch(ctx, rec.Owner.Email, subject, body, templates.ExpenseAlert); err != nil {
			c.Logger.WithError(err).WithFields(logrus.Fields{
				"expense_id": e.ID,
				"user_id":    rec.Owner.ID,
			}).Error("expense alert dispatch failed")
		}
	}
}
