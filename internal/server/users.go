// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateEmail is returned when registering an email twice.
	ErrDuplicateEmail = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned by Authenticate for any mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned by Get for unknown ids.
	ErrUserNotFound = errors.New("user not found")
)

// User is the public view of an account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type userRecord struct {
	User
	passwordHash []byte
}

// UserStore keeps accounts in memory. It is safe for concurrent use.
type UserStore struct {
	cost int

	mu      sync.RWMutex
	byID    map[string]*userRecord
	byEmail map[string]*userRecord
	now     func() time.Time
}

// NewUserStore creates an empty store hashing with the given bcrypt cost.
func NewUserStore(cost int) *UserStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserStore{
		cost:    cost,
		byID:    make(map[string]*userRecord),
		byEmail: make(map[string]*userRecord),
		now:     time.Now,
	}
}

// emailKey folds case so a@b.com and A@B.com are the same account.
func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a new account.
func (s *UserStore) Create(email, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(email)
	if _, exists := s.byEmail[key]; exists {
		return User{}, ErrDuplicateEmail
	}

	now := s.now().UTC()
	rec := &userRecord{
		User: User{
			ID:        uuid.NewString(),
			Email:     strings.TrimSpace(email),
			CreatedAt: now,
			UpdatedAt: now,
		},
		passwordHash: hash,
	}
	s.byID[rec.ID] = rec
	s.byEmail[key] = rec
	return rec.User, nil
}

// Authenticate checks credentials.
func (s *UserStore) Authenticate(email, password string) (User, error) {
	s.mu.RLock()
	rec, ok := s.byEmail[emailKey(email)]
	s.mu.RUnlock()
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return rec.User, nil
}

// Get returns the account with id.
func (s *UserStore) Get(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return rec.User, nil
}

// Delete removes the account with id.
func (s *UserStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	delete(s.byID, id)
	delete(s.byEmail, emailKey(rec.Email))
	return nil
}

// Count returns the number of accounts.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
