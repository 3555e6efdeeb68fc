package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"reminderkeeper/internal/domain/entity"
	"reminderkeeper/internal/domain/repository"
)

// recordingDispatcher captures every dispatch attempt. Optional hooks let
// tests force failures or block mid-dispatch.
type recordingDispatcher struct {
	mu    sync.Mutex
	sent  []sentMessage
	fail  bool
	block chan struct{} // when non-nil, Dispatch waits until closed
}

type sentMessage struct {
	To      string
	Subject string
	Body    string
	Kind    string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, to, subject, body, kind string) error {
	if d.block != nil {
		<-d.block
	}
	d.mu.Lock()
	d.sent = append(d.sent, sentMessage{To: to, Subject: subject, Body: body, Kind: kind})
	fail := d.fail
	d.mu.Unlock()
	if fail {
		return errors.New("provider unavailable")
	}
	return nil
}

func (d *recordingDispatcher) messages() []sentMessage {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]sentMessage, len(d.sent))
	copy(out, d.sent)
	return out
}

type fakeExpenseRepo struct {
	mu      sync.Mutex
	records []repository.ExpenseWithOwner
	listErr error
}

func (f *fakeExpenseRepo) ListWithOwners() ([]repository.ExpenseWithOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]repository.ExpenseWithOwner, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeExpenseRepo) Create(*entity.Expense) error                 { return nil }
func (f *fakeExpenseRepo) GetByID(string) (*entity.Expense, error)      { return nil, errors.New("not found") }
func (f *fakeExpenseRepo) ListByUser(string) ([]*entity.Expense, error) { return nil, nil }
func (f *fakeExpenseRepo) UpdateSpent(string, float64) error            { return nil }
func (f *fakeExpenseRepo) Delete(string) error                          { return nil }

type fakeReminderRepo struct {
	mu          sync.Mutex
	reminders   map[string]*entity.Reminder
	markErrs    map[string]error
	listDueErr  error
	markedOrder []string
}

func newFakeReminderRepo(rs ...*entity.Reminder) *fakeReminderRepo {
	m := make(map[string]*entity.Reminder, len(rs))
	for _, r := range rs {
		m[r.ID] = r
	}
	return &fakeReminderRepo{reminders: m, markErrs: map[string]error{}}
}

func (f *fakeReminderRepo) ListDue(now time.Time) ([]*entity.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listDueErr != nil {
		return nil, f.listDueErr
	}
	var out []*entity.Reminder
	for _, r := range f.reminders {
		if r.Due(now) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) MarkSent(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.markErrs[id]; err != nil {
		return err
	}
	r, ok := f.reminders[id]
	if !ok {
		return errors.New("not found")
	}
	r.Sent = true
	f.markedOrder = append(f.markedOrder, id)
	return nil
}

func (f *fakeReminderRepo) get(id string) entity.Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.reminders[id]
}

func (f *fakeReminderRepo) Create(*entity.Reminder) error            { return nil }
func (f *fakeReminderRepo) GetByID(string) (*entity.Reminder, error) { return nil, errors.New("not found") }
func (f *fakeReminderRepo) List() ([]*entity.Reminder, error)        { return nil, nil }
func (f *fakeReminderRepo) Search(string) ([]*entity.Reminder, error) {
	return nil, nil
}
func (f *fakeReminderRepo) Update(*entity.Reminder) error { return nil }
func (f *fakeReminderRepo) Delete(string) error           { return nil }

var (
	_ repository.ExpenseRepository  = (*fakeExpenseRepo)(nil)
	_ repository.ReminderRepository = (*fakeReminderRepo)(nil)
)
