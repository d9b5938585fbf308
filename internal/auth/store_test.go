// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/authshell/internal/api"
)

const userJSON = `{"id":"u1","email":"a@b.com","created_at":"2024-05-01T10:00:00Z","updated_at":"2024-05-01T10:00:00Z"}`

// newStore wires a Store to a real api.Client pointed at handler.
func newStore(t *testing.T, handler http.Handler, opts ...Option) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newStoreAt(t, srv.URL, 0, opts...)
}

func newStoreAt(t *testing.T, url string, timeout time.Duration, opts ...Option) *Store {
	t.Helper()
	client, err := api.NewClient(api.ClientConfig{BaseURL: url, Timeout: timeout})
	require.NoError(t, err)
	return NewStore(client, opts...)
}

func status(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		w.Write([]byte(body))
	}
}

// deadURL returns the address of a server that has already shut down.
func deadURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestNewStore_InitialState(t *testing.T) {
	s := NewStore(nil)
	snap := s.Snapshot()
	assert.True(t, snap.Loading)
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
	assert.False(t, snap.Anonymous())
}

// =============================================================================
// CHECK AUTH
// =============================================================================

func TestCheckAuth_Success(t *testing.T) {
	s := newStore(t, status(http.StatusOK, userJSON))

	require.True(t, s.CheckAuth(context.Background()))

	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "u1", snap.User.ID)
	assert.Equal(t, "a@b.com", snap.User.Email)
	assert.False(t, snap.Loading)
}

func TestCheckAuth_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.Handler
	}{
		{"unauthorized", status(http.StatusUnauthorized, `{"detail":"Authentication required"}`)},
		{"not found", status(http.StatusNotFound, `{"detail":"User not found"}`)},
		{"server error", status(http.StatusInternalServerError, ``)},
		{"malformed body", status(http.StatusOK, `not json`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t, tc.handler)
			s.SetAuthenticated(true, &api.User{ID: "stale", Email: "old@b.com"})

			assert.False(t, s.CheckAuth(context.Background()))

			snap := s.Snapshot()
			assert.False(t, snap.IsAuthenticated)
			assert.Nil(t, snap.User)
			assert.False(t, snap.Loading)
			assert.True(t, snap.Anonymous())
		})
	}
}

func TestCheckAuth_NetworkError(t *testing.T) {
	s := newStoreAt(t, deadURL(), 0)

	assert.False(t, s.CheckAuth(context.Background()))
	snap := s.Snapshot()
	assert.Equal(t, Session{}, snap)
}

func TestCheckAuth_LoadingDuringRequest(t *testing.T) {
	inFlight := make(chan struct{})
	release := make(chan struct{})
	s := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(inFlight)
		<-release
		w.Write([]byte(userJSON))
	}))
	s.SetLoading(false)

	done := make(chan bool)
	go func() { done <- s.CheckAuth(context.Background()) }()

	<-inFlight
	assert.True(t, s.Snapshot().Loading)
	close(release)

	assert.True(t, <-done)
	assert.False(t, s.Snapshot().Loading)
}

// =============================================================================
// REGISTER
// =============================================================================

func TestRegister_Created(t *testing.T) {
	var calls int32
	s := newStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(userJSON))
	}))
	before := s.Snapshot()

	res := s.Register(context.Background(), "a@b.com", "x")

	assert.Equal(t, RegisterResult{Success: true}, res)
	assert.Equal(t, before, s.Snapshot(), "register never touches the session")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRegister_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.Handler
		want    string
	}{
		{"detail", status(http.StatusBadRequest, `{"detail":"email taken"}`), "email taken"},
		{"empty detail", status(http.StatusBadRequest, `{"detail":""}`), "Registration failed"},
		{"no body", status(http.StatusInternalServerError, ``), "Registration failed"},
		{"list detail", status(http.StatusUnprocessableEntity, `{"detail":[{"msg":"x"}]}`), "Registration failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t, tc.handler)
			res := s.Register(context.Background(), "a@b.com", "x")
			assert.Equal(t, RegisterResult{Success: false, Error: tc.want}, res)
			assert.True(t, s.Snapshot().Loading, "register never alters loading")
		})
	}
}

func TestRegister_NetworkError(t *testing.T) {
	s := newStoreAt(t, deadURL(), 0)
	res := s.Register(context.Background(), "a@b.com", "x")
	assert.Equal(t, RegisterResult{Error: "Network error"}, res)
}

// =============================================================================
// LOGIN
// =============================================================================

func TestLogin_PopulatesUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "tok", Path: "/"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("access_token"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(userJSON))
	})
	s := newStore(t, mux)

	res := s.Login(context.Background(), "a@b.com", "password1")
	assert.Equal(t, LoginResult{Success: true}, res)

	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "u1", snap.User.ID)
}

func TestLogin_Rejected(t *testing.T) {
	s := newStore(t, status(http.StatusUnauthorized, `{"detail":"Invalid email or password"}`))

	res := s.Login(context.Background(), "a@b.com", "wrong")
	assert.Equal(t, LoginResult{Error: "Invalid email or password"}, res)
	assert.False(t, s.Snapshot().IsAuthenticated)
}

func TestLogin_CheckFailsAfterLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", status(http.StatusOK, ``))
	mux.HandleFunc("GET /auth/me", status(http.StatusUnauthorized, ``))
	s := newStore(t, mux)

	res := s.Login(context.Background(), "a@b.com", "password1")
	assert.Equal(t, LoginResult{Error: "Sign in failed"}, res)
}

// =============================================================================
// LOGOUT
// =============================================================================

func TestLogout_ClearsStateRegardlessOfOutcome(t *testing.T) {
	tests := []struct {
		name  string
		store func(t *testing.T) *Store
	}{
		{"no content", func(t *testing.T) *Store { return newStore(t, status(http.StatusNoContent, ``)) }},
		{"server error", func(t *testing.T) *Store { return newStore(t, status(http.StatusInternalServerError, ``)) }},
		{"network error", func(t *testing.T) *Store { return newStoreAt(t, deadURL(), 0) }},
		{"timeout", func(t *testing.T) *Store {
			release := make(chan struct{})
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { <-release }))
			t.Cleanup(srv.Close)
			t.Cleanup(func() { close(release) })
			return newStoreAt(t, srv.URL, 50*time.Millisecond)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.store(t)
			s.SetLoading(false)
			s.SetAuthenticated(true, &api.User{ID: "u1", Email: "a@b.com"})

			s.Logout(context.Background())

			snap := s.Snapshot()
			assert.False(t, snap.IsAuthenticated)
			assert.Nil(t, snap.User)
			assert.False(t, snap.Loading, "logout never alters loading")
		})
	}
}

// =============================================================================
// SUBSCRIPTIONS AND SETTERS
// =============================================================================

// fakeAPI is a SessionAPI that returns fixed results.
type fakeAPI struct {
	user *api.User
	err  error
}

func (f *fakeAPI) Me(ctx context.Context) (*api.User, error) { return f.user, f.err }
func (f *fakeAPI) Register(ctx context.Context, email, password string) error {
	return f.err
}
func (f *fakeAPI) Login(ctx context.Context, email, password string) error { return f.err }
func (f *fakeAPI) Logout(ctx context.Context) error                        { return f.err }

func TestSubscribe_NotifiedPerTransition(t *testing.T) {
	s := NewStore(&fakeAPI{user: &api.User{ID: "u1", Email: "a@b.com"}})

	var mu sync.Mutex
	var seen []Session
	cancel := s.Subscribe(func(snap Session) {
		mu.Lock()
		seen = append(seen, snap)
		mu.Unlock()
	})

	s.CheckAuth(context.Background())

	mu.Lock()
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.True(t, seen[1].IsAuthenticated)
	assert.False(t, seen[1].Loading)
	mu.Unlock()

	cancel()
	cancel()
	s.SetLoading(true)

	mu.Lock()
	assert.Len(t, seen, 2)
	mu.Unlock()
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewStore(nil)
	s.SetAuthenticated(true, &api.User{ID: "u1", Email: "a@b.com"})

	snap := s.Snapshot()
	snap.User.Email = "changed@b.com"
	assert.Equal(t, "a@b.com", s.Snapshot().User.Email)
}

func TestSetAuthenticated_AsGiven(t *testing.T) {
	s := NewStore(nil)
	s.SetAuthenticated(true, nil)
	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
}

type mapLocalizer map[string]string

func (m mapLocalizer) T(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

func TestLocalizer_UsedForGenericMessages(t *testing.T) {
	s := NewStore(&fakeAPI{err: &api.Error{Kind: api.KindNetwork, Op: "register"}},
		WithLocalizer(mapLocalizer{MsgNetworkError: "Ağ hatası"}))
	assert.Equal(t, "Ağ hatası", s.Register(context.Background(), "a@b.com", "x").Error)

	s = NewStore(&fakeAPI{err: &api.Error{Kind: api.KindStatus, Op: "login", StatusCode: 500}},
		WithLocalizer(mapLocalizer{}))
	assert.Equal(t, "Sign in failed", s.Login(context.Background(), "a@b.com", "x").Error)
}

func TestConcurrentOperations(t *testing.T) {
	s := NewStore(&fakeAPI{user: &api.User{ID: "u1", Email: "a@b.com"}})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); s.CheckAuth(context.Background()) }()
		go func() { defer wg.Done(); _ = s.Snapshot() }()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.False(t, snap.Loading)
}
