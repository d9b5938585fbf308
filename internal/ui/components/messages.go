// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import tea "github.com/charmbracelet/bubbletea"

// NavigateMsg asks the shell to go to Path.
type NavigateMsg struct {
	Path string
}

// LogoutMsg asks the shell to sign the user out.
type LogoutMsg struct{}

// SubmitMsg carries the values of a submitted form, keyed by field name.
type SubmitMsg struct {
	Form   FormKind
	Values map[string]string
}

// Navigate returns a command that emits a NavigateMsg.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}
