package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"example.com/exercisetracker/internal/observability"
)

// EventPublisher receives notifications after successful mutations. Publish
// failures are the publisher's concern; they never affect the caller.
type EventPublisher interface {
	UserCreated(ctx context.Context, user User)
	ExerciseAdded(ctx context.Context, userID string, entry Entry)
}

// Service orchestrates user directory and exercise log workflows.
type Service struct {
	repo      UserRepository
	publisher EventPublisher
}

// NewService constructs a Service. publisher may be nil to disable events.
func NewService(repo UserRepository, publisher EventPublisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// CreateUser registers a new user with an empty exercise log. Validation
// happens before any store call, so a rejected request never mutates state.
func (s *Service) CreateUser(ctx context.Context, username string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := User{
		ID:        uuid.NewString(),
		Username:  username,
		Exercise:  []Entry{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.RecordUserCreated()
	if s.publisher != nil {
		s.publisher.UserCreated(ctx, user)
	}
	return &user, nil
}

// ListUsers returns the id+username projection of every registered user.
func (s *Service) ListUsers(ctx context.Context) ([]UserRef, error) {
	return s.repo.List(ctx)
}

// GetUser fetches a user by ID.
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// AddExercise normalizes the date, appends an entry to the user's log and
// returns the updated user. The re-read after the append is the source of
// truth for the response; with concurrent writers it may reflect more than
// the entry just written.
func (s *Service) AddExercise(ctx context.Context, userID, description string, duration int, rawDate string) (*User, error) {
	entry := Entry{
		Description: description,
		Duration:    duration,
		Date:        NormalizeDate(rawDate),
	}

	if err := s.repo.AppendExercise(ctx, userID, entry); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	observability.RecordExerciseAppended(user.UpdatedAt)
	if s.publisher != nil {
		s.publisher.ExerciseAdded(ctx, userID, entry)
	}
	return user, nil
}

// GetLog answers a range/limit-bounded view over the user's exercise log.
func (s *Service) GetLog(ctx context.Context, userID, from, to string, limit *int) (*LogView, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := FilterEntries(user.Exercise, from, to, limit)
	return &LogView{
		Username:   user.Username,
		TotalCount: len(entries),
		Entries:    entries,
	}, nil
}
