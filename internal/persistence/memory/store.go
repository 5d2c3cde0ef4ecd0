// Package memory provides an in-memory UserRepository for local development
// and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"example.com/exercisetracker/internal/domain"
)

// Store keeps users in a map guarded by a RWMutex. A secondary username set
// enforces uniqueness under concurrent registration.
type Store struct {
	mu        sync.RWMutex
	users     map[string]domain.User
	usernames map[string]struct{}
	order     []string
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]domain.User),
		usernames: make(map[string]struct{}),
	}
}

// Create implements domain.UserRepository.
func (s *Store) Create(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[user.Username]; taken {
		return domain.ErrDuplicateUsername
	}

	s.users[user.ID] = cloneUser(user)
	s.usernames[user.Username] = struct{}{}
	s.order = append(s.order, user.ID)
	return nil
}

// Get returns the user by ID, or (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	out := cloneUser(user)
	return &out, nil
}

// List returns all users in insertion order, projected to id+username.
func (s *Store) List(ctx context.Context) ([]domain.UserRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.UserRef, 0, len(s.order))
	for _, id := range s.order {
		user := s.users[id]
		out = append(out, domain.UserRef{ID: user.ID, Username: user.Username})
	}
	return out, nil
}

// AppendExercise adds an entry to the user's log, or reports ErrUserNotFound
// without touching any state when the ID does not resolve.
func (s *Store) AppendExercise(ctx context.Context, userID string, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}

	user.Exercise = append(user.Exercise, entry)
	user.UpdatedAt = time.Now().UTC()
	s.users[userID] = user
	return nil
}

func cloneUser(user domain.User) domain.User {
	out := user
	out.Exercise = make([]domain.Entry, len(user.Exercise))
	copy(out.Exercise, user.Exercise)
	return out
}
