package scheduler

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminderkeeper/internal/domain/entity"
	"reminderkeeper/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func expenseRecord(id, title string, limit, spent float64, owner *entity.User) repository.ExpenseWithOwner {
	e := &entity.Expense{ID: id, Title: title, MaximumAmount: limit, CurrentSpent: spent}
	if owner != nil {
		e.UserID = owner.ID
	}
	return repository.ExpenseWithOwner{Expense: e, Owner: owner}
}

func TestExpenseOverLimitDispatchesAlert(t *testing.T) {
	alice := &entity.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	repo := &fakeExpenseRepo{records: []repository.ExpenseWithOwner{
		expenseRecord("e1", "Groceries", 100, 150, alice),
	}}
	disp := &recordingDispatcher{}

	NewExpenseChecker(repo, disp, testLogger()).Check(context.Background())

	msgs := disp.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "alice@example.com", msgs[0].To)
	assert.Contains(t, msgs[0].Body, "Alice")
	assert.Contains(t, msgs[0].Body, "150")
	assert.Contains(t, msgs[0].Body, "100")
	assert.Contains(t, msgs[0].Body, "Groceries")
}

func TestExpenseUnderLimitNoDispatch(t *testing.T) {
	owner := &entity.User{ID: "u1", Name: "Bob", Email: "bob@example.com"}
	repo := &fakeExpenseRepo{records: []repository.ExpenseWithOwner{
		expenseRecord("e1", "Dining", 100, 50, owner),
	}}
	disp := &recordingDispatcher{}

	NewExpenseChecker(repo, disp, testLogger()).Check(context.Background())

	assert.Empty(t, disp.messages())
}

func TestExpenseExactlyAtLimitDispatches(t *testing.T) {
	owner := &entity.User{ID: "u1", Name: "Cara", Email: "cara@example.com"}
	repo := &fakeExpenseRepo{records: []repository.ExpenseWithOwner{
		expenseRecord("e1", "Rent", 100, 100, owner),
	}}
	disp := &recordingDispatcher{}

	NewExpenseChecker(repo, disp, testLogger()).Check(context.Background())

	assert.Len(t, disp.messages(), 1, "currentSpent >= maximumAmount crosses the threshold")
}

func TestExpenseMissingOwnerSkippedWithoutAbortingScan(t *testing.T) {
	owner := &entity.User{ID: "u2", Name: "Dana", Email: "dana@example.com"}
	repo := &fakeExpenseRepo{records: []repository.ExpenseWithOwner{
		expenseRecord("e1", "Orphaned", 100, 200, nil),
		expenseRecord("e2", "Utilities", 100, 120, owner),
	}}
	disp := &recordingDispatcher{}

	NewExpenseChecker(repo, disp, testLogger()).Check(context.Background())

	msgs := disp.messages()
	require.Len(t, msgs, 1, "record with missing owner is skipped, the rest still processed")
	assert.Equal(t, "dana@example.com", msgs[0].To)
}

func TestExpenseRepeatedChecksRedispatch(t *testing.T) {
	owner := &entity.User{ID: "u1", Name: "Eve", Email: "eve@example.com"}
	repo := &fakeExpenseRepo{records: []repository.ExpenseWithOwner{
		expenseRecord("e1", "Travel", 300, 450, owner),
	}}
	disp := &recordingDispatcher{}
	checker := NewExpenseChecker(repo, disp, testLogger())

	checker.Check(context.Background())
	checker.Check(context.Background())
	checker.Check(context.Background())

	assert.Len(t, disp.messages(), 3, "an expense that stays over its limit is alerted on every tick")
}

func TestExpenseDispatchFailureDoesNotStopScan(t *testing.T) {
	a := &entity.User{ID: "u1", Name: "Finn", Email: "finn@example.com"}
	b := &entity.User{ID: "u2", Name: "Gail", Email: "gail@example.com"}
	repo := &fakeExpenseRepo{records: []repository.ExpenseWithOwner{
		expenseRecord("e1", "One", 10, 20, a),
		expenseRecord("e2", "Two", 10, 30, b),
	}}
	disp := &recordingDispatcher{fail: true}

	NewExpenseChecker(repo, disp, testLogger()).Check(context.Background())

	assert.Len(t, disp.messages(), 2, "a failed dispatch is logged, the scan completes")
}
