package entity

import (
	"time"
)

// Expense tracks a monthly spending limit for a user. CurrentSpent is a
// running total that user updates overwrite (not increment).
type Expense struct {
	ID            string
	Title         string
	MaximumAmount float64
	CurrentSpent  float64
	UserID        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OverLimit reports whether the spending limit has been crossed.
func (e *Expense) OverLimit() bool {
	return e.CurrentSpent >= e.MaximumAmount
}

// Percentage returns spend as a share of the limit, for display only.
func (e *Expense) Percentage() float64 {
	if e.MaximumAmount == 0 {
		return 0
	}
	return e.CurrentSpent / e.MaximumAmount * 100
}
