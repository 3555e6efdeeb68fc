package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"reminderkeeper/internal/domain/entity"
	"reminderkeeper/internal/domain/repository"
	"reminderkeeper/pkg/mailer/templates"
	"reminderkeeper/pkg/notify"
)

// ReminderTimeFormat is the human-readable rendering of a reminder's due time
// used in the notification body.
const ReminderTimeFormat = "Monday, January 2, 2006 3:04 PM"

// ReminderSweeper dispatches due reminders and flips their sent flag. The
// flag write is not gated on dispatch success: one attempt per reminder,
// at-most-once delivery, no retry storms.
type ReminderSweeper struct {
	Repo       repository.ReminderRepository
	Dispatcher notify.Dispatcher
	Logger     *logrus.Logger

	// Now is the clock used to select due reminders; overridable in tests.
	Now func() time.Time
}

func NewReminderSweeper(repo repository.ReminderRepository, d notify.Dispatcher, logger *logrus.Logger) *ReminderSweeper {
	return &ReminderSweeper{Repo: repo, Dispatcher: d, Logger: logger, Now: time.Now}
}

// Sweep dispatches every due reminder and marks it sent. Records are
// processed concurrently; Sweep waits for every dispatch and flag write
// before returning, so a finished sweep means all writes were attempted.
func (s *ReminderSweeper) Sweep(ctx context.Context) {
	now := s.now()
	due, err := s.Repo.ListDue(now)
	if err != nil {
		s.Logger.WithError(err).Error("reminder scan failed")
		return
	}

	var wg sync.WaitGroup
	for _, rm := range due {
		wg.Add(1)
		go func(rm *entity.Reminder) {
			defer wg.Done()
			s.process(ctx, rm)
		}(rm)
	}
	wg.Wait()
}

func (s *ReminderSweeper) process(ctx context.Context, rm *entity.Reminder) {
	subject := "Reminder: " + rm.Title
	body := fmt.Sprintf("You have a reminder for event: %s at %s",
		rm.Title, rm.ReminderTime.Format(ReminderTimeFormat))

	if err := s.Dispatcher.Dispatch(ctx, rm.Email, subject, body, templates.Reminder); err != nil {
		s.Logger.WithError(err).WithField("reminder_id", rm.ID).Error("reminder dispatch failed")
	}

	// Marked sent even when dispatch failed; a reminder gets one attempt.
	if err := s.Repo.MarkSent(rm.ID); err != nil {
		s.Logger.WithError(err).WithField("reminder_id", rm.ID).Error("failed to mark reminder sent")
	}
}

func (s *ReminderSweeper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
