package repository

import "reminderkeeper/internal/domain/entity"

// ExpenseWithOwner pairs an expense with its resolved owner. Owner is nil when
// the user reference could not be resolved (dangling user_id); callers must
// treat that per record, not as a scan failure.
type ExpenseWithOwner struct {
	Expense *entity.Expense
	Owner   *entity.User
}

// ExpenseRepository defines the interface for expense-related database operations.
type ExpenseRepository interface {
	Create(e *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	ListByUser(userID string) ([]*entity.Expense, error)
	ListWithOwners() ([]ExpenseWithOwner, error)
	UpdateSpent(id string, currentSpent float64) error
	Delete(id string) error
}
