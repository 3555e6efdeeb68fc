package application

import (
	"errors"

	"github.com/sirupsen/logrus"

	"reminderkeeper/internal/domain/entity"
	repo "reminderkeeper/internal/domain/repository"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotExpenseOwner = errors.New("expense belongs to another user")
)

// ExpenseService owns the monthly-limit records. Unlike reminders, expenses
// are strictly per-user: every operation checks ownership against the
// session user.
type ExpenseService struct {
	Repo   repo.ExpenseRepository
	Logger *logrus.Logger
}

func NewExpenseService(r repo.ExpenseRepository, logger *logrus.Logger) *ExpenseService {
	return &ExpenseService{Repo: r, Logger: logger}
}

// ExpenseView is an expense with its display-only percentage attached.
type ExpenseView struct {
	*entity.Expense
	Percent float64
}

// SetLimit creates a new tracked expense with a zero running total.
func (s *ExpenseService) SetLimit(userID, title string, maximumAmount float64) (*entity.Expense, error) {
	e := &entity.Expense{
		Title:         title,
		MaximumAmount: maximumAmount,
		CurrentSpent:  0,
		UserID:        userID,
	}
	if err := s.Repo.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListForUser returns the user's expenses with computed percentages.
// Percentage is never persisted.
func (s *ExpenseService) ListForUser(userID string) ([]ExpenseView, error) {
	expenses, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, ExpenseView{Expense: e, Percent: e.Percentage()})
	}
	return out, nil
}

// UpdateSpent overwrites the running total with the submitted value.
func (s *ExpenseService) UpdateSpent(userID, id string, currentSpent float64) (*entity.Expense, error) {
	e, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateSpent(id, currentSpent); err != nil {
		return nil, err
	}
	e.CurrentSpent = currentSpent
	return e, nil
}

func (s *ExpenseService) Delete(userID, id string) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *ExpenseService) owned(userID, id string) (*entity.Expense, error) {
	e, err := s.Repo.GetByID(id)
	if err != nil || e == nil {
		return nil, ErrExpenseNotFound
	}
	if e.UserID != userID {
		return nil, ErrNotExpenseOwner
	}
	return e, nil
}
