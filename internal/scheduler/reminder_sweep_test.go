package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminderkeeper/internal/domain/entity"
)

var sweepNow = time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC)

func newSweeper(repo *fakeReminderRepo, disp *recordingDispatcher) *ReminderSweeper {
	s := NewReminderSweeper(repo, disp, testLogger())
	s.Now = func() time.Time { return sweepNow }
	return s
}

func TestDueReminderDispatchedAndMarkedSent(t *testing.T) {
	repo := newFakeReminderRepo(&entity.Reminder{
		ID:           "r1",
		Title:        "Dentist",
		Email:        "me@example.com",
		ReminderTime: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	})
	disp := &recordingDispatcher{}

	newSweeper(repo, disp).Sweep(context.Background())

	msgs := disp.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "me@example.com", msgs[0].To)
	assert.Contains(t, msgs[0].Body, "You have a reminder for event: Dentist at ")
	assert.Contains(t, msgs[0].Body, "Monday, January 1, 2024 10:00 AM")
	assert.True(t, repo.get("r1").Sent)
}

func TestAlreadySentReminderNeverRedispatched(t *testing.T) {
	repo := newFakeReminderRepo(&entity.Reminder{
		ID:           "r1",
		Title:        "Dentist",
		Email:        "me@example.com",
		ReminderTime: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Sent:         true,
	})
	disp := &recordingDispatcher{}
	sweeper := newSweeper(repo, disp)

	sweeper.Sweep(context.Background())
	sweeper.Sweep(context.Background())

	assert.Empty(t, disp.messages())
}

func TestFutureReminderNotDispatched(t *testing.T) {
	repo := newFakeReminderRepo(&entity.Reminder{
		ID:           "r1",
		Title:        "Flight",
		Email:        "me@example.com",
		ReminderTime: sweepNow.Add(time.Hour),
	})
	disp := &recordingDispatcher{}

	newSweeper(repo, disp).Sweep(context.Background())

	assert.Empty(t, disp.messages())
	assert.False(t, repo.get("r1").Sent)
}

func TestDispatchFailureStillMarksSent(t *testing.T) {
	repo := newFakeReminderRepo(&entity.Reminder{
		ID:           "r1",
		Title:        "Call mum",
		Email:        "me@example.com",
		ReminderTime: sweepNow.Add(-time.Minute),
	})
	disp := &recordingDispatcher{fail: true}
	sweeper := newSweeper(repo, disp)

	sweeper.Sweep(context.Background())

	assert.Len(t, disp.messages(), 1)
	assert.True(t, repo.get("r1").Sent, "at-most-once: the flag write is not gated on delivery")

	// A later sweep must not retry.
	sweeper.Sweep(context.Background())
	assert.Len(t, disp.messages(), 1)
}

func TestMarkSentFailureIsolatedPerRecord(t *testing.T) {
	repo := newFakeReminderRepo(
		&entity.Reminder{ID: "r1", Title: "A", Email: "a@example.com", ReminderTime: sweepNow.Add(-time.Minute)},
		&entity.Reminder{ID: "r2", Title: "B", Email: "b@example.com", ReminderTime: sweepNow.Add(-time.Minute)},
	)
	repo.markErrs["r1"] = errors.New("write conflict")
	disp := &recordingDispatcher{}

	newSweeper(repo, disp).Sweep(context.Background())

	assert.Len(t, disp.messages(), 2)
	assert.False(t, repo.get("r1").Sent)
	assert.True(t, repo.get("r2").Sent, "one record's persistence failure does not affect others")
}

func TestScanErrorProducesNoDispatches(t *testing.T) {
	repo := newFakeReminderRepo()
	repo.listDueErr = errors.New("connection refused")
	disp := &recordingDispatcher{}

	newSweeper(repo, disp).Sweep(context.Background())

	assert.Empty(t, disp.messages())
}
