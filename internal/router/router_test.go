// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/authshell/internal/api"
	"github.com/jeranaias/authshell/internal/auth"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":                 "/",
		"/":                "/",
		"settings":         "/settings",
		"/settings/":       "/settings",
		"/settings//":      "/settings",
		"/keys?tab=active": "/keys",
		"/keys#top":        "/keys",
		" /accounts ":      "/accounts",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		path      string
		wantPath  string
		wantKind  Kind
		requested string
	}{
		{"/", PathHome, KindShell, "/"},
		{"/settings/", PathSettings, KindShell, "/settings"},
		{"/accounts", PathAccounts, KindShell, "/accounts"},
		{"/customers", PathCustomers, KindShell, "/customers"},
		{"/keys", PathKeys, KindShell, "/keys"},
		{"/sign-in", PathSignIn, KindAuth, "/sign-in"},
		{"/sign-up?next=/", PathSignUp, KindAuth, "/sign-up"},
		{"/forgot-password", PathForgotPassword, KindAuth, "/forgot-password"},
		{"/nope", PathNotFound, KindNotFound, "/nope"},
		{"/Settings", PathNotFound, KindNotFound, "/Settings"},
		{"/settings/extra", PathNotFound, KindNotFound, "/settings/extra"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r := Match(tc.path)
			assert.Equal(t, tc.wantPath, r.Path)
			assert.Equal(t, tc.wantKind, r.Kind)
			assert.Equal(t, tc.requested, r.Requested)
			assert.NotEmpty(t, r.TitleKey)
		})
	}
}

func TestShelled(t *testing.T) {
	for _, r := range Routes() {
		assert.Equal(t, r.Kind == KindShell, r.Shelled(), r.Path)
	}
	assert.False(t, Match("/missing").Shelled())
}

func TestMenu_Order(t *testing.T) {
	var paths []string
	for _, r := range Menu() {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{"/", "/settings", "/accounts", "/customers", "/keys"}, paths)
}

func TestGate(t *testing.T) {
	user := &api.User{ID: "u1", Email: "a@b.com"}
	loading := auth.Session{Loading: true}
	anon := auth.Session{}
	signedIn := auth.Session{IsAuthenticated: true, User: user}
	on := Policy{EnforceAuth: true}
	off := Policy{}

	tests := []struct {
		name    string
		session auth.Session
		path    string
		policy  Policy
		want    Decision
	}{
		{"loading shell", loading, "/", on, Decision{Outcome: Pending}},
		{"loading auth", loading, "/sign-in", off, Decision{Outcome: Pending}},
		{"loading not found", loading, "/x", off, Decision{Outcome: Pending}},
		{"anon shell unenforced", anon, "/settings", off, Decision{Outcome: Render}},
		{"anon shell enforced", anon, "/settings", on, Decision{Outcome: Redirect, Target: PathSignIn}},
		{"anon auth enforced", anon, "/sign-up", on, Decision{Outcome: Render}},
		{"signed in auth enforced", signedIn, "/sign-in", on, Decision{Outcome: Redirect, Target: PathHome}},
		{"signed in auth unenforced", signedIn, "/sign-in", off, Decision{Outcome: Render}},
		{"signed in shell", signedIn, "/keys", on, Decision{Outcome: Render}},
		{"not found enforced", anon, "/missing", on, Decision{Outcome: Render}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Gate(tc.session, Match(tc.path), tc.policy))
		})
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory("/")
	assert.Equal(t, "/", h.Current())

	h.Push("/settings")
	h.Push("/settings/")
	assert.Equal(t, 2, h.Len(), "duplicate push ignored")

	h.Push("/keys")
	h.Replace("/accounts")
	assert.Equal(t, "/accounts", h.Current())

	path, ok := h.Back()
	assert.True(t, ok)
	assert.Equal(t, "/settings", path)

	path, ok = h.Back()
	assert.True(t, ok)
	assert.Equal(t, "/", path)

	path, ok = h.Back()
	assert.False(t, ok)
	assert.Equal(t, "/", path)
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory("/")
	for i := 0; i < MaxHistory+50; i++ {
		h.Push(fmt.Sprintf("/p%d", i))
	}
	assert.Equal(t, MaxHistory, h.Len())
	assert.Equal(t, fmt.Sprintf("/p%d", MaxHistory+49), h.Current())
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "shell", KindShell.String())
	assert.Equal(t, "not-found", KindNotFound.String())
	assert.Equal(t, "redirect", Redirect.String())
	assert.Equal(t, "pending", Pending.String())
}
