// Package memory provides an in-memory UserStore used by tests and local
// development. It mirrors the Postgres store's semantics, including the
// email uniqueness constraint.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hacktron/hacktron-backend/internal/models"
	"github.com/hacktron/hacktron-backend/internal/storage"
)

var _ storage.UserStore = (*Store)(nil)

// Store keeps users in a slice to preserve insertion order for listings.
type Store struct {
	mu    sync.RWMutex
	users []models.User
}

// NewUserStore creates an empty in-memory store.
func NewUserStore() *Store {
	return &Store{}
}

// CreateUser assigns an identifier and appends the user. Returns
// storage.ErrAlreadyExists when the email is taken.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	s.users = append(s.users, user)
	return user, nil
}

// FindByEmail returns the user with the given email.
func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// FindByID returns the user with the given identifier.
func (s *Store) FindByID(_ context.Context, id uuid.UUID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// UpdateUser replaces name, phone, and password hash of an existing user.
func (s *Store) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.users {
		if existing.ID == user.ID {
			existing.Name = user.Name
			existing.Phone = user.Phone
			existing.PasswordHash = user.PasswordHash
			s.users[i] = existing
			return existing, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}
