// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the process-local authentication state.
//
// A Store tracks whether a session check is in flight, whether the user is
// signed in, and who the user is. It is the only component that mutates that
// state; the router and shell only read snapshots of it.
package auth

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jeranaias/authshell/internal/api"
)

// SessionAPI is the backend collaborator. *api.Client implements it.
type SessionAPI interface {
	Me(ctx context.Context) (*api.User, error)
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
}

// Session is a point-in-time copy of the store state.
type Session struct {
	IsAuthenticated bool
	User            *api.User
	Loading         bool
}

// Anonymous reports whether the check finished without a user.
func (s Session) Anonymous() bool {
	return !s.Loading && !s.IsAuthenticated
}

// RegisterResult is the outcome of Register.
type RegisterResult struct {
	Success bool
	Error   string
}

// LoginResult is the outcome of Login.
type LoginResult struct {
	Success bool
	Error   string
}

// =============================================================================
// MESSAGES
// =============================================================================

// Message keys passed to a Localizer.
const (
	MsgRegistrationFailed = "auth.registration_failed"
	MsgSignInFailed       = "auth.sign_in_failed"
	MsgNetworkError       = "auth.network_error"
)

// Localizer resolves a message key to display text.
type Localizer interface {
	T(key string) string
}

var defaultMessages = map[string]string{
	MsgRegistrationFailed: "Registration failed",
	MsgSignInFailed:       "Sign in failed",
	MsgNetworkError:       "Network error",
}

// =============================================================================
// STORE
// =============================================================================

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithLocalizer sets the source of the generic failure messages.
func WithLocalizer(l Localizer) Option {
	return func(s *Store) { s.localizer = l }
}

// Store is the authentication state container. It is safe for concurrent use.
type Store struct {
	api       SessionAPI
	logger    zerolog.Logger
	localizer Localizer

	mu      sync.Mutex
	state   Session
	subs    map[int]func(Session)
	nextSub int
}

// NewStore creates a store in the initial state: loading, not authenticated,
// no user.
func NewStore(sessionAPI SessionAPI, opts ...Option) *Store {
	s := &Store{
		api:    sessionAPI,
		logger: zerolog.Nop(),
		state:  Session{Loading: true},
		subs:   make(map[int]func(Session)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

// Subscribe registers fn to run after every state transition. fn runs on the
// goroutine that caused the transition and must not call back into the store
// synchronously. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Session)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.apply(func(st *Session) { st.Loading = loading })
}

// SetAuthenticated sets the authentication flag and user as given.
func (s *Store) SetAuthenticated(authenticated bool, user *api.User) {
	s.apply(func(st *Session) {
		st.IsAuthenticated = authenticated
		st.User = user
	})
}

// CheckAuth asks the backend who the current session belongs to. It reports
// true only when the backend returned a user. Any failure leaves the store
// anonymous. Loading is true for the duration of the call.
func (s *Store) CheckAuth(ctx context.Context) bool {
	s.SetLoading(true)

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("SESSION_CHECK_FAILED")
		s.apply(func(st *Session) {
			st.IsAuthenticated = false
			st.User = nil
			st.Loading = false
		})
		return false
	}

	s.logger.Debug().Str("user_id", user.ID).Msg("SESSION_CHECK_OK")
	s.apply(func(st *Session) {
		st.IsAuthenticated = true
		st.User = user
		st.Loading = false
	})
	return true
}

// Register creates an account. It never signs the user in and never touches
// the session state.
func (s *Store) Register(ctx context.Context, email, password string) RegisterResult {
	if err := s.api.Register(ctx, email, password); err != nil {
		s.logger.Debug().Err(err).Msg("REGISTER_FAILED")
		return RegisterResult{Error: s.failureMessage(err, MsgRegistrationFailed)}
	}
	s.logger.Info().Msg("REGISTER_OK")
	return RegisterResult{Success: true}
}

// Login signs in with credentials and then runs CheckAuth so the store
// holds the user.
func (s *Store) Login(ctx context.Context, email, password string) LoginResult {
	if err := s.api.Login(ctx, email, password); err != nil {
		s.logger.Debug().Err(err).Msg("LOGIN_FAILED")
		return LoginResult{Error: s.failureMessage(err, MsgSignInFailed)}
	}
	if !s.CheckAuth(ctx) {
		return LoginResult{Error: s.message(MsgSignInFailed)}
	}
	s.logger.Info().Msg("LOGIN_OK")
	return LoginResult{Success: true}
}

// Logout ends the session. Backend failures are ignored; the store always
// ends up signed out. Loading is not touched.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Debug().Err(err).Msg("LOGOUT_REQUEST_FAILED")
	}
	s.apply(func(st *Session) {
		st.IsAuthenticated = false
		st.User = nil
	})
}

// apply runs one transition under the lock and then notifies subscribers
// outside it.
func (s *Store) apply(fn func(*Session)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.copyState()
	subs := make([]func(Session), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

// copyState must be called with mu held.
func (s *Store) copyState() Session {
	snap := s.state
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}

func (s *Store) failureMessage(err error, fallback string) string {
	if api.IsNetwork(err) {
		return s.message(MsgNetworkError)
	}
	if detail := api.DetailOf(err); detail != "" {
		return detail
	}
	return s.message(fallback)
}

func (s *Store) message(key string) string {
	if s.localizer != nil {
		if text := s.localizer.T(key); text != "" && text != key {
			return text
		}
	}
	return defaultMessages[key]
}
