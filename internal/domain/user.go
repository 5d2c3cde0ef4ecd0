// Package domain defines the business logic for the exercise tracker.
package domain

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"
)

// MaxUsernameLength mirrors the limit enforced on the stored document.
const MaxUsernameLength = 20

var (
	// ErrUserNotFound is returned when a user ID cannot be located.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername indicates the requested username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
)

// ValidationError rejects an input before any mutation happens. Message is
// the user-facing text surfaced by the API layer.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Entry is one exercise record appended to a user's log. Entries have no
// identity of their own; position within the log is the identity.
type Entry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// User is the stored per-user document: a unique username plus the ordered
// exercise log. The log is append-only and never reordered.
type User struct {
	ID        string
	Username  string
	Exercise  []Entry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRef is the id+username projection returned by user listings.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserRepository captures persistence operations over the user store.
// Get returns (nil, nil) when the ID does not resolve; AppendExercise must
// report ErrUserNotFound without mutating anything when the user is absent.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	Get(ctx context.Context, userID string) (*User, error)
	List(ctx context.Context) ([]UserRef, error)
	AppendExercise(ctx context.Context, userID string, entry Entry) error
}

func validateUsername(username string) error {
	if username == "" {
		return &ValidationError{Message: "Username is required"}
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return &ValidationError{Message: "Username is too long"}
	}
	return nil
}
