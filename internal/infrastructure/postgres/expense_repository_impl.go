package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reminderkeeper/internal/domain/entity"
	"reminderkeeper/internal/domain/repository"
)

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

func (r *ExpenseRepository) Create(e *entity.Expense) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (title, maximum_amount, current_spent, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, e.Title, e.MaximumAmount, e.CurrentSpent, e.UserID)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *ExpenseRepository) GetByID(id string) (*entity.Expense, error) {
	ctx := context.Background()
	e := &entity.Expense{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, maximum_amount, current_spent, user_id, created_at, updated_at
		FROM expenses
		WHERE id = $1
	`, id)

	if err := row.Scan(&e.ID, &e.Title, &e.MaximumAmount, &e.CurrentSpent, &e.UserID,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotFound
		}
		return nil, err
	}

	return e, nil
}

func (r *ExpenseRepository) ListByUser(userID string) ([]*entity.Expense, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, maximum_amount, current_spent, user_id, created_at, updated_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Expense
	for rows.Next() {
		e := &entity.Expense{}
		if err := rows.Scan(&e.ID, &e.Title, &e.MaximumAmount, &e.CurrentSpent, &e.UserID,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListWithOwners returns every expense with its owner resolved in one scan.
// A LEFT JOIN keeps rows whose user_id no longer resolves; those come back
// with a nil Owner so the caller can log and skip them.
func (r *ExpenseRepository) ListWithOwners() ([]repository.ExpenseWithOwner, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.title, e.maximum_amount, e.current_spent, e.user_id, e.created_at, e.updated_at,
		       u.id, u.email, u.name
		FROM expenses e
		LEFT JOIN users u ON u.id = e.user_id
		ORDER BY e.created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.ExpenseWithOwner
	for rows.Next() {
		e := &entity.Expense{}
		var uid, uemail, uname sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.MaximumAmount, &e.CurrentSpent, &e.UserID,
			&e.CreatedAt, &e.UpdatedAt, &uid, &uemail, &uname); err != nil {
			return nil, err
		}
		rec := repository.ExpenseWithOwner{Expense: e}
		if uid.Valid {
			rec.Owner = &entity.User{ID: uid.String, Email: uemail.String, Name: uname.String}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *ExpenseRepository) UpdateSpent(id string, currentSpent float64) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE expenses
		SET current_spent = $1, updated_at = $2
		WHERE id = $3
	`, currentSpent, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

var _ repository.ExpenseRepository = (*ExpenseRepository)(nil)
