package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminderkeeper/internal/domain/entity"
	"reminderkeeper/internal/domain/repository"
)

type fakeExpenseStore struct {
	byID   map[string]*entity.Expense
	nextID int
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{byID: map[string]*entity.Expense{}}
}

func (r *fakeExpenseStore) Create(e *entity.Expense) error {
	r.nextID++
	e.ID = fmt.Sprintf("exp-%d", r.nextID)
	cp := *e
	r.byID[e.ID] = &cp
	return nil
}

func (r *fakeExpenseStore) GetByID(id string) (*entity.Expense, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseStore) ListByUser(userID string) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.byID {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeExpenseStore) ListWithOwners() ([]repository.ExpenseWithOwner, error) {
	var out []repository.ExpenseWithOwner
	for _, e := range r.byID {
		cp := *e
		out = append(out, repository.ExpenseWithOwner{Expense: &cp})
	}
	return out, nil
}

func (r *fakeExpenseStore) UpdateSpent(id string, currentSpent float64) error {
	e, ok := r.byID[id]
	if !ok {
		return errors.New("not found")
	}
	e.CurrentSpent = currentSpent
	return nil
}

func (r *fakeExpenseStore) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return errors.New("not found")
	}
	delete(r.byID, id)
	return nil
}

func newExpenseService(store *fakeExpenseStore) *ExpenseService {
	return NewExpenseService(store, logrus.New())
}

func TestSetLimitStartsAtZeroSpent(t *testing.T) {
	svc := newExpenseService(newFakeExpenseStore())

	e, err := svc.SetLimit("user-1", "Groceries", 500)
	require.NoError(t, err)
	assert.Equal(t, float64(0), e.CurrentSpent)
	assert.Equal(t, float64(500), e.MaximumAmount)
	assert.Equal(t, "user-1", e.UserID)
}

func TestListForUserComputesPercent(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)

	e, err := svc.SetLimit("user-1", "Groceries", 200)
	require.NoError(t, err)
	_, err = svc.UpdateSpent("user-1", e.ID, 50)
	require.NoError(t, err)

	views, err := svc.ListForUser("user-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, float64(25), views[0].Percent)
}

func TestListForUserExcludesOtherUsers(t *testing.T) {
	svc := newExpenseService(newFakeExpenseStore())

	_, err := svc.SetLimit("user-1", "Groceries", 200)
	require.NoError(t, err)
	_, err = svc.SetLimit("user-2", "Rent", 1000)
	require.NoError(t, err)

	views, err := svc.ListForUser("user-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Groceries", views[0].Title)
}

func TestUpdateSpentOverwritesTotal(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)

	e, err := svc.SetLimit("user-1", "Groceries", 200)
	require.NoError(t, err)

	_, err = svc.UpdateSpent("user-1", e.ID, 80)
	require.NoError(t, err)
	updated, err := svc.UpdateSpent("user-1", e.ID, 30)
	require.NoError(t, err)

	// The submitted value replaces the total, it is not added to it.
	assert.Equal(t, float64(30), updated.CurrentSpent)
}

func TestUpdateSpentRejectsForeignExpense(t *testing.T) {
	svc := newExpenseService(newFakeExpenseStore())

	e, err := svc.SetLimit("user-1", "Groceries", 200)
	require.NoError(t, err)

	_, err = svc.UpdateSpent("user-2", e.ID, 80)
	assert.ErrorIs(t, err, ErrNotExpenseOwner)
}

func TestDeleteRejectsForeignExpense(t *testing.T) {
	store := newFakeExpenseStore()
	svc := newExpenseService(store)

	e, err := svc.SetLimit("user-1", "Groceries", 200)
	require.NoError(t, err)

	err = svc.Delete("user-2", e.ID)
	assert.ErrorIs(t, err, ErrNotExpenseOwner)

	err = svc.Delete("user-1", e.ID)
	require.NoError(t, err)
	_, err = svc.UpdateSpent("user-1", e.ID, 10)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestUpdateSpentMissingExpense(t *testing.T) {
	svc := newExpenseService(newFakeExpenseStore())

	_, err := svc.UpdateSpent("user-1", "missing", 10)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}
