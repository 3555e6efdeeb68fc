package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminderkeeper/internal/domain/entity"
	"reminderkeeper/internal/domain/repository"
)

func newTestScheduler(expRepo repository.ExpenseRepository, remRepo *fakeReminderRepo, disp *recordingDispatcher) *Scheduler {
	logger := testLogger()
	sweeper := NewReminderSweeper(remRepo, disp, logger)
	sweeper.Now = func() time.Time { return sweepNow }
	return New(NewExpenseChecker(expRepo, disp, logger), sweeper, logger, time.Minute)
}

func TestTickRunsBothEvaluators(t *testing.T) {
	owner := &entity.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	expRepo := &fakeExpenseRepo{records: []repository.ExpenseWithOwner{
		expenseRecord("e1", "Groceries", 100, 150, owner),
	}}
	remRepo := newFakeReminderRepo(&entity.Reminder{
		ID:           "r1",
		Title:        "Dentist",
		Email:        "me@example.com",
		ReminderTime: sweepNow.Add(-5 * time.Minute),
	})
	disp := &recordingDispatcher{}

	newTestScheduler(expRepo, remRepo, disp).Tick(context.Background())

	assert.Len(t, disp.messages(), 2)
	assert.True(t, remRepo.get("r1").Sent, "tick returns only after per-record writes finished")
}

func TestOverlappingTickIsSkipped(t *testing.T) {
	remRepo := newFakeReminderRepo(&entity.Reminder{
		ID:           "r1",
		Title:        "Slow",
		Email:        "me@example.com",
		ReminderTime: sweepNow.Add(-time.Minute),
	})
	disp := &recordingDispatcher{block: make(chan struct{})}
	s := newTestScheduler(&fakeExpenseRepo{}, remRepo, disp)

	firstDone := make(chan struct{})
	go func() {
		s.Tick(context.Background())
		close(firstDone)
	}()

	// Wait for the first tick to be mid-dispatch, then fire a second tick.
	require.Eventually(t, func() bool { return s.inFlight.Load() }, time.Second, time.Millisecond)
	s.Tick(context.Background())

	close(disp.block)
	select {
	case <-firstDone:
	case <-time.After(time.Second):
		t.Fatal("first tick never finished")
	}

	assert.Len(t, disp.messages(), 1, "the overlapping tick must not double-process the due reminder")
}

func TestPanickingEvaluatorDoesNotKillSubsequentTicks(t *testing.T) {
	remRepo := newFakeReminderRepo(&entity.Reminder{
		ID:           "r1",
		Title:        "Survivor",
		Email:        "me@example.com",
		ReminderTime: sweepNow.Add(-time.Minute),
	})
	disp := &recordingDispatcher{}
	s := newTestScheduler(&panickingExpenseRepo{}, remRepo, disp)

	require.NotPanics(t, func() { s.Tick(context.Background()) })
	assert.Len(t, disp.messages(), 1, "reminder sweep still ran in the same tick")

	require.NotPanics(t, func() { s.Tick(context.Background()) })
}

type panickingExpenseRepo struct {
	fakeExpenseRepo
}

func (p *panickingExpenseRepo) ListWithOwners() ([]repository.ExpenseWithOwner, error) {
	panic("boom")
}
