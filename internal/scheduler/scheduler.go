// Package scheduler drives the recurring notification sweep: every minute it
// evaluates all tracked expenses against their limits and all reminders
// against the clock, dispatching outbound notifications through a
// notify.Dispatcher.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

type Scheduler struct {
	Expenses  *ExpenseChecker
	Reminders *ReminderSweeper
	Logger    *logrus.Logger
	Interval  time.Duration

	inFlight atomic.Bool
}

func New(expenses *ExpenseChecker, reminders *ReminderSweeper, logger *logrus.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{Expenses: expenses, Reminders: reminders, Logger: logger, Interval: interval}
}

// Run blocks until ctx is cancelled, firing a tick on every interval. The
// first tick is aligned to the next minute boundary. Missed intervals are not
// caught up after a restart.
func (s *Scheduler) Run(ctx context.Context) {
	first := time.Until(time.Now().Truncate(time.Minute).Add(time.Minute))
	timer := time.NewTimer(first)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs the expense check and the reminder sweep, waiting for every
// per-record dispatch and persistence task before returning. A tick that is
// still in flight when the next one fires makes the new tick a no-op, so a
// slow dispatch can never double-process the same due reminder.
func (s *Scheduler) Tick(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.Logger.Warn("previous sweep still in flight, skipping tick")
		return
	}
	defer s.inFlight.Store(false)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer recoverTick(s.Logger, "expense check")
		s.Expenses.Check(ctx)
	}()
	go func() {
		defer wg.Done()
		defer recoverTick(s.Logger, "reminder sweep")
		s.Reminders.Sweep(ctx)
	}()
	wg.Wait()
}

// recoverTick keeps a panicking evaluator from tearing down the ticker loop.
func recoverTick(logger *logrus.Logger, name string) {
	if r := recover(); r != nil {
		logger.WithField("panic", r).Errorf("%s panicked", name)
	}
}
