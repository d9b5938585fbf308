// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI components of the authshell TUI.

Components are built on Bubble Tea, Bubbles and Lip Gloss and take their
styles from a *styles.Theme. Text comes from a Translator so every component
follows the active locale.

# Layout

Header (header.go) - Title bar with the drawer toggle and the signed-in user.
Sidebar (sidebar.go) - Navigation menu with the active item and Logout.

# Screens

Form (form.go) - Text fields, submit button and links for the auth screens.
Page (page.go) - Markdown page bodies rendered with Glamour.
NotFound (notfound.go) - The 404 screen.
Loading (spinner.go) - Full screen spinner shown while the session is checked.

# Feedback

ToastManager (toast.go) - Non-blocking notifications that auto-dismiss.

# Messages

Components report user intent as tea.Msg values (NavigateMsg, SubmitMsg,
LogoutMsg) so the root model owns every state transition.
*/
package components

// Translator resolves resource string keys to display text.
type Translator interface {
	T(key string) string
}
