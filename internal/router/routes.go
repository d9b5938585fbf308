// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "strings"

// Paths of the fixed routes.
const (
	PathHome           = "/"
	PathSignIn         = "/sign-in"
	PathSignUp         = "/sign-up"
	PathForgotPassword = "/forgot-password"
	PathSettings       = "/settings"
	PathAccounts       = "/accounts"
	PathCustomers      = "/customers"
	PathKeys           = "/keys"
	// PathNotFound is the wildcard route's path.
	PathNotFound = "*"
)

// Kind groups routes by how they are wrapped.
type Kind int

const (
	// KindShell routes render inside the sidebar layout.
	KindShell Kind = iota
	// KindAuth routes are the bare sign-in, sign-up and forgot-password screens.
	KindAuth
	// KindNotFound is the wildcard fallback.
	KindNotFound
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindShell:
		return "shell"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Route is one entry of the route table.
type Route struct {
	Path string
	Kind Kind
	// TitleKey is the resource string key of the screen title.
	TitleKey string
	// Requested is the normalized path that was matched. For the not-found
	// route it is the unknown path.
	Requested string
}

// Shelled reports whether the route renders inside the sidebar layout.
func (r Route) Shelled() bool {
	return r.Kind == KindShell
}

var table = []Route{
	{Path: PathHome, Kind: KindShell, TitleKey: "nav.home"},
	{Path: PathSettings, Kind: KindShell, TitleKey: "nav.settings"},
	{Path: PathAccounts, Kind: KindShell, TitleKey: "nav.accounts"},
	{Path: PathCustomers, Kind: KindShell, TitleKey: "nav.customers"},
	{Path: PathKeys, Kind: KindShell, TitleKey: "nav.keys"},
	{Path: PathSignIn, Kind: KindAuth, TitleKey: "signin.title"},
	{Path: PathSignUp, Kind: KindAuth, TitleKey: "signup.title"},
	{Path: PathForgotPassword, Kind: KindAuth, TitleKey: "forgot.title"},
}

var notFound = Route{Path: PathNotFound, Kind: KindNotFound, TitleKey: "notfound.title"}

var byPath = func() map[string]Route {
	m := make(map[string]Route, len(table))
	for _, r := range table {
		m[r.Path] = r
	}
	return m
}()

// Routes returns the route table without the wildcard, in menu order.
func Routes() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Menu returns the shell routes in sidebar order.
func Menu() []Route {
	var out []Route
	for _, r := range table {
		if r.Kind == KindShell {
			out = append(out, r)
		}
	}
	return out
}

// Normalize strips the query string and fragment, ensures a leading slash and
// drops trailing slashes.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// Match resolves path to a route. Unknown paths resolve to the not-found
// route carrying the requested path.
func Match(path string) Route {
	norm := Normalize(path)
	r, ok := byPath[norm]
	if !ok {
		r = notFound
	}
	r.Requested = norm
	return r
}
