// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authshell/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// lineFrames is an ASCII spinner that renders on every terminal.
var lineFrames = spinner.Spinner{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    time.Second / 10,
}

// Spinner is the loading indicator shown while the session is checked and
// inside busy submit buttons.
type Spinner struct {
	spinner  spinner.Model
	theme    *styles.Theme
	message  string
	isActive bool
}

// NewSpinner creates an inactive spinner with message.
func NewSpinner(theme *styles.Theme, message string) Spinner {
	s := spinner.New(spinner.WithSpinner(lineFrames))
	s.Style = theme.Loading
	return Spinner{spinner: s, theme: theme, message: message}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// SetTheme restyles the spinner.
func (s *Spinner) SetTheme(theme *styles.Theme) {
	s.theme = theme
	s.spinner.Style = theme.Loading
}

// Start activates the spinner and returns the first tick.
func (s *Spinner) Start() tea.Cmd {
	if s.isActive {
		return nil
	}
	s.isActive = true
	return s.spinner.Tick
}

// Stop deactivates the spinner. Pending ticks are dropped by Update.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Update advances the animation while active.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// Frame returns the current animation frame.
func (s Spinner) Frame() string {
	return s.spinner.View()
}

// View renders the spinner followed by its message.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}
	if s.message == "" {
		return s.spinner.View()
	}
	return s.spinner.View() + " " + s.theme.Muted.Render(s.message)
}

// ViewCentered renders the spinner in the middle of a width x height area.
func (s Spinner) ViewCentered(width, height int) string {
	view := s.View()
	if width <= 0 || height <= 0 {
		return view
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, view)
}
