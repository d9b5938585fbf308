// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"github.com/jeranaias/authshell/internal/auth"
	"github.com/jeranaias/authshell/internal/config"
)

// SessionCheckedMsg reports the result of a CheckAuth call.
type SessionCheckedMsg struct {
	Authenticated bool
}

// LoginDoneMsg reports the result of a sign-in attempt.
type LoginDoneMsg struct {
	Email  string
	Result auth.LoginResult
}

// RegisterDoneMsg reports the result of a sign-up attempt.
type RegisterDoneMsg struct {
	Email  string
	Result auth.RegisterResult
}

// LogoutDoneMsg reports that the session was cleared.
type LogoutDoneMsg struct{}

// ConfigReloadedMsg delivers a configuration re-read from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}
