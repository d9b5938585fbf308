// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/rs/zerolog"

	"github.com/jeranaias/authshell/internal/config"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// APIPrefix is where the auth routes are mounted.
	APIPrefix = "/api"

	// CookieName holds the access token.
	CookieName = "access_token"

	// MinPasswordLength is enforced on registration.
	MinPasswordLength = 8

	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72

	// MaxRequestBodySize bounds JSON request bodies.
	MaxRequestBodySize = 64 * 1024
)

// Detail messages returned by the auth endpoints.
const (
	DetailDuplicateEmail     = "User with this email already exists"
	DetailInvalidCredentials = "Invalid email or password"
	DetailAuthRequired       = "Authentication required"
	DetailInvalidToken       = "Invalid or expired token"
	DetailUserNotFound       = "User not found"
	DetailInvalidBody        = "Invalid request body"
)

// ============================================================================
// OPTIONS
// ============================================================================

// Options configures a Server.
type Options struct {
	Addr           string
	JWTSecret      string
	AllowedOrigins []string
	RatePerMinute  int
	BcryptCost     int
	TokenTTL       time.Duration
	// SecureCookies sets the Secure flag; enable behind HTTPS.
	SecureCookies bool
	Logger        zerolog.Logger
}

// OptionsFromConfig maps the [server] config section.
func OptionsFromConfig(cfg config.ServerConfig, logger zerolog.Logger) Options {
	return Options{
		Addr:           cfg.Addr,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		RatePerMinute:  cfg.RatePerMinute,
		BcryptCost:     cfg.BcryptCost,
		TokenTTL:       time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		Logger:         logger,
	}
}

// ============================================================================
// SERVER
// ============================================================================

// Server is the development auth backend.
type Server struct {
	opts    Options
	logger  zerolog.Logger
	router  *http.ServeMux
	handler http.Handler
	users   *UserStore
	tokens  *TokenIssuer
	limiter *RateLimiter

	server *http.Server
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:8000"
	}
	tokens, err := NewTokenIssuer(opts.JWTSecret, opts.TokenTTL)
	if err != nil {
		return nil, err
	}
	if opts.JWTSecret == "" {
		opts.Logger.Warn().Msg("JWT_SECRET_GENERATED")
	}

	s := &Server{
		opts:    opts,
		logger:  opts.Logger,
		router:  http.NewServeMux(),
		users:   NewUserStore(opts.BcryptCost),
		tokens:  tokens,
		limiter: NewRateLimiter(opts.RatePerMinute),
	}
	s.setupRoutes()

	s.handler = Chain(
		RecoveryMiddleware(s.logger),
		RequestIDMiddleware(),
		LoggingMiddleware(s.logger),
		CORSMiddleware(DefaultCORSConfig(opts.AllowedOrigins)),
		RateLimitMiddleware(s.limiter, s.logger),
	)(s.router)
	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("POST "+APIPrefix+"/auth/register", s.handleRegister)
	s.router.HandleFunc("POST "+APIPrefix+"/auth/login", s.handleLogin)
	s.router.HandleFunc("GET "+APIPrefix+"/auth/me", s.handleMe)
	s.router.HandleFunc("POST "+APIPrefix+"/auth/logout", s.handleLogout)
	s.router.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Users exposes the account store.
func (s *Server) Users() *UserStore {
	return s.users
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.opts.Addr
}

// ============================================================================
// REQUEST TYPES
// ============================================================================

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r credentialsRequest) validateRegister() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(MinPasswordLength, MaxPasswordLength)),
	)
}

func (r credentialsRequest) validateLogin() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// fieldError is one entry of a 422 detail list.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func fieldErrors(err error) []fieldError {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return []fieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}
	fields := make([]string, 0, len(verrs))
	for f := range verrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]fieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldError{Loc: []string{"body", f}, Msg: verrs[f].Error(), Type: "value_error"})
	}
	return out
}

// decodeCredentials reads the JSON body. It writes the error response and
// returns false on failure.
func (s *Server) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodySize))
	if err := dec.Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, DetailInvalidBody)
		return req, false
	}
	return req, true
}

// ============================================================================
// HANDLERS
// ============================================================================

// handleRegister handles POST /api/auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeCredentials(w, r)
	if !ok {
		return
	}
	if err := req.validateRegister(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": fieldErrors(err)})
		return
	}

	user, err := s.users.Create(req.Email, req.Password)
	if errors.Is(err, ErrDuplicateEmail) {
		writeDetail(w, http.StatusBadRequest, DetailDuplicateEmail)
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("REGISTER_FAILED")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Msg("USER_REGISTERED")
	writeJSON(w, http.StatusCreated, user)
}

// handleLogin handles POST /api/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeCredentials(w, r)
	if !ok {
		return
	}
	if err := req.validateLogin(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": fieldErrors(err)})
		return
	}

	user, err := s.users.Authenticate(req.Email, req.Password)
	if err != nil {
		s.logger.Info().Str("ip", GetClientIP(r)).Msg("LOGIN_REJECTED")
		writeDetail(w, http.StatusUnauthorized, DetailInvalidCredentials)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("TOKEN_ISSUE_FAILED")
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, s.cookie(token, int(s.tokens.TTL().Seconds())))
	s.logger.Info().Str("user_id", user.ID).Msg("USER_LOGGED_IN")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

// handleMe handles GET /api/auth/me.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		writeDetail(w, http.StatusUnauthorized, DetailAuthRequired)
		return
	}

	userID, err := s.tokens.Parse(c.Value)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, DetailInvalidToken)
		return
	}

	user, err := s.users.Get(userID)
	if err != nil {
		writeDetail(w, http.StatusNotFound, DetailUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleLogout handles POST /api/auth/logout. It always succeeds.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.cookie("", -1))
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"users":  s.users.Count(),
	})
}

func (s *Server) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.limiter.Cleanup(cleanupCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("SERVER_START")
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("SERVER_SHUTDOWN")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail writes {"detail": message}.
func writeDetail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}
