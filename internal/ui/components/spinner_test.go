// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/jeranaias/authshell/internal/ui/styles"
)

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestNewSpinner_Inactive(t *testing.T) {
	s := NewSpinner(styles.NewTheme(styles.ModeDark), "Checking session")

	if s.IsActive() {
		t.Error("NewSpinner() should not be active initially")
	}
	if s.View() != "" {
		t.Errorf("inactive spinner should render nothing, got %q", s.View())
	}
}

func TestSpinner_StartStop(t *testing.T) {
	s := NewSpinner(styles.NewTheme(styles.ModeDark), "Checking session")

	if cmd := s.Start(); cmd == nil {
		t.Fatal("Start() should return a tick command")
	}
	if cmd := s.Start(); cmd != nil {
		t.Error("Start() on a running spinner should not schedule another tick")
	}
	if !s.IsActive() {
		t.Fatal("spinner should be active after Start()")
	}
	if !strings.Contains(s.View(), "Checking session") {
		t.Errorf("View() should contain the message, got %q", s.View())
	}

	s.Stop()
	if s.IsActive() {
		t.Error("spinner should be inactive after Stop()")
	}
}

func TestSpinner_UpdateIgnoredWhenInactive(t *testing.T) {
	s := NewSpinner(styles.NewTheme(styles.ModeDark), "")
	s, cmd := s.Update(spinner.TickMsg{})
	if cmd != nil {
		t.Error("inactive spinner should not keep ticking")
	}
	if s.IsActive() {
		t.Error("Update should not activate the spinner")
	}
}

func TestSpinner_ViewCentered(t *testing.T) {
	s := NewSpinner(styles.NewTheme(styles.ModeDark), "Loading")
	s.Start()

	out := s.ViewCentered(40, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "Loading") {
		t.Errorf("message should be on the middle line:\n%s", out)
	}
}
