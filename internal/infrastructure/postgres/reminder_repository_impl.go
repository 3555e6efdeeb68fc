package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reminderkeeper/internal/domain/entity"
	"reminderkeeper/internal/domain/repository"
)

type ReminderRepository struct {
	pool *pgxpool.Pool
}

func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

const reminderColumns = `id, title, description, start_time, reminder_time, sent, email, created_at, updated_at`

func scanReminder(row pgx.Row) (*entity.Reminder, error) {
	rm := &entity.Reminder{}
	err := row.Scan(&rm.ID, &rm.Title, &rm.Description, &rm.StartTime, &rm.ReminderTime,
		&rm.Sent, &rm.Email, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}
	return rm, nil
}

func (r *ReminderRepository) Create(rm *entity.Reminder) error {
	ctx := context.Background()
	if rm.StartTime.IsZero() {
		rm.StartTime = time.Now()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reminders (title, description, start_time, reminder_time, sent, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, rm.Title, rm.Description, rm.StartTime, rm.ReminderTime, rm.Sent, rm.Email)

	return row.Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
}

func (r *ReminderRepository) GetByID(id string) (*entity.Reminder, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE id = $1
	`, id)
	return scanReminder(row)
}

func (r *ReminderRepository) List() ([]*entity.Reminder, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		ORDER BY reminder_time ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

func (r *ReminderRepository) ListDue(now time.Time) ([]*entity.Reminder, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE reminder_time <= $1 AND sent = false
		ORDER BY reminder_time ASC
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

// Search is the SQL fallback used when Elasticsearch is not configured.
func (r *ReminderRepository) Search(term string) ([]*entity.Reminder, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY reminder_time ASC
	`, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

func (r *ReminderRepository) Update(rm *entity.Reminder) error {
	ctx := context.Background()
	rm.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE reminders
		SET title = $1, description = $2, reminder_time = $3, email = $4, updated_at = $5
		WHERE id = $6
	`, rm.Title, rm.Description, rm.ReminderTime, rm.Email, rm.UpdatedAt, rm.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *ReminderRepository) MarkSent(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE reminders
		SET sent = true, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *ReminderRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func collectReminders(rows pgx.Rows) ([]*entity.Reminder, error) {
	var out []*entity.Reminder
	for rows.Next() {
		rm, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

var _ repository.ReminderRepository = (*ReminderRepository)(nil)
