// Package postgres provides pgx-backed persistence for the user store. Users
// are kept document-style: one row per user with the exercise log in a jsonb
// column, so an append and a read are each a single atomic statement.
package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/exercisetracker/internal/domain"
)

const uniqueViolationCode = "23505"

// Repository implements domain.UserRepository over a pgx pool.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts the user row. A unique-constraint violation on the username
// maps to domain.ErrDuplicateUsername.
func (r *Repository) Create(ctx context.Context, user domain.User) error {
	log, err := json.Marshal(user.Exercise)
	if err != nil {
		return err
	}

	const stmt = `INSERT INTO users (user_id, username, exercise, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5)`

	_, err = r.pool.Exec(ctx, stmt, user.ID, user.Username, log, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// Get retrieves a user by ID, or (nil, nil) when the row does not exist.
func (r *Repository) Get(ctx context.Context, userID string) (*domain.User, error) {
	const query = `SELECT user_id, username, exercise, created_at, updated_at
        FROM users WHERE user_id=$1`

	row := r.pool.QueryRow(ctx, query, userID)

	var user domain.User
	var log []byte
	if err := row.Scan(&user.ID, &user.Username, &log, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(log, &user.Exercise); err != nil {
		return nil, err
	}
	if user.Exercise == nil {
		user.Exercise = []domain.Entry{}
	}
	return &user, nil
}

// List returns the id+username projection of every user, in insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.UserRef, error) {
	const query = `SELECT user_id, username FROM users ORDER BY created_at, user_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]domain.UserRef, 0)
	for rows.Next() {
		var ref domain.UserRef
		if err := rows.Scan(&ref.ID, &ref.Username); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// AppendExercise appends the entry to the user's jsonb log in one statement.
// Zero rows affected means the user does not exist and nothing was written.
func (r *Repository) AppendExercise(ctx context.Context, userID string, entry domain.Entry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	const stmt = `UPDATE users
        SET exercise = exercise || $2::jsonb, updated_at = now()
        WHERE user_id = $1`

	tag, err := r.pool.Exec(ctx, stmt, userID, body)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
