// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "github.com/jeranaias/authshell/internal/auth"

// Outcome is what the shell should do with a route.
type Outcome int

const (
	// Pending: the session check is in flight; show only the loading screen.
	Pending Outcome = iota
	// Render the route.
	Render
	// Redirect to Decision.Target.
	Redirect
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of Gate.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Policy controls route guarding.
type Policy struct {
	// EnforceAuth enables redirects based on the session. Off by default.
	EnforceAuth bool
}

// Gate decides how route is handled for session.
func Gate(session auth.Session, route Route, policy Policy) Decision {
	if session.Loading {
		return Decision{Outcome: Pending}
	}
	if policy.EnforceAuth {
		switch {
		case route.Kind == KindShell && !session.IsAuthenticated:
			return Decision{Outcome: Redirect, Target: PathSignIn}
		case route.Kind == KindAuth && session.IsAuthenticated:
			return Decision{Outcome: Redirect, Target: PathHome}
		}
	}
	return Decision{Outcome: Render}
}
