// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the cookie-session auth backend.
//
// The client keeps an in-memory cookie jar so that the session cookie set by
// login is sent on every later request, the way a browser would with
// credentials included.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind separates transport failures from application failures.
type ErrorKind int

const (
	// KindNetwork means no response was received.
	KindNetwork ErrorKind = iota
	// KindStatus means the backend answered with a non-2xx status.
	KindStatus
	// KindDecode means a 2xx body could not be decoded.
	KindDecode
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method.
type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	// Detail is the backend's "detail" string when present.
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	switch e.Kind {
	case KindStatus:
		fmt.Fprintf(&b, "status %d", e.StatusCode)
		if e.Detail != "" {
			b.WriteString(": ")
			b.WriteString(e.Detail)
		}
	default:
		b.WriteString(e.Kind.String())
		b.WriteString(" error")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// DetailOf returns the backend detail carried by err, or "".
func DetailOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultBaseURL is used when ClientConfig.BaseURL is empty.
const DefaultBaseURL = "http://localhost:8000/api"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// ClientConfig holds configuration options for the client.
type ClientConfig struct {
	// BaseURL includes the API prefix, e.g. http://localhost:8000/api.
	BaseURL string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// Jar overrides the cookie jar. A fresh in-memory jar is used when nil.
	Jar http.CookieJar

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the session endpoints. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. It only fails if the cookie jar cannot be built.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	jar := cfg.Jar
	if jar == nil {
		j, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		jar = j
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Jar:       jar,
			Transport: cfg.Transport,
		},
	}, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Me fetches the user bound to the current session cookie.
func (c *Client) Me(ctx context.Context) (*User, error) {
	const op = "me"
	resp, err := c.do(ctx, op, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var user User
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&user); err != nil {
		return nil, &Error{Kind: KindDecode, Op: op, StatusCode: resp.StatusCode, Cause: err}
	}
	if user.ID == "" || user.Email == "" {
		return nil, &Error{Kind: KindDecode, Op: op, StatusCode: resp.StatusCode, Cause: errors.New("user is missing id or email")}
	}
	return &user, nil
}

// Register creates an account. The response body is not needed by callers.
func (c *Client) Register(ctx context.Context, email, password string) error {
	resp, err := c.do(ctx, "register", http.MethodPost, "/auth/register", Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// Login exchanges credentials for a session cookie, which the jar keeps.
func (c *Client) Login(ctx context.Context, email, password string) error {
	resp, err := c.do(ctx, "login", http.MethodPost, "/auth/login", Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// Logout asks the backend to end the session.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// do sends one request. Non-2xx responses are returned as a KindStatus error
// with the body consumed; on success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindNetwork, Op: op, Cause: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := &Error{Kind: KindStatus, Op: op, StatusCode: resp.StatusCode}
		var eb errorBody
		if json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&eb) == nil {
			apiErr.Detail = eb.detailString()
		}
		return nil, apiErr
	}
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	resp.Body.Close()
}
