package repository

import (
	"time"

	"reminderkeeper/internal/domain/entity"
)

// ReminderRepository defines the interface for reminder-related database operations.
// ListDue returns reminders whose reminder_time has passed and that were not
// sent yet; MarkSent flips the sent flag exactly once.
type ReminderRepository interface {
	Create(r *entity.Reminder) error
	GetByID(id string) (*entity.Reminder, error)
	List() ([]*entity.Reminder, error)
	ListDue(now time.Time) ([]*entity.Reminder, error)
	Search(term string) ([]*entity.Reminder, error)
	Update(r *entity.Reminder) error
	MarkSent(id string) error
	Delete(id string) error
}
