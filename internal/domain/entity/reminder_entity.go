package entity

import (
	"time"
)

// Reminder is a one-shot scheduled event. The Email field is free text and
// carries no relationship to a User account: reminders are visible to every
// authenticated user, and the sweep delivers to whatever address was entered.
type Reminder struct {
	ID           string
	Title        string
	Description  string
	StartTime    time.Time
	ReminderTime time.Time
	Sent         bool
	Email        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Due reports whether the reminder should be dispatched at the given instant.
// A reminder that was already sent is never due again.
func (r *Reminder) Due(now time.Time) bool {
	return !r.Sent && !r.ReminderTime.After(now)
}
