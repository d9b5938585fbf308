// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authshell/internal/router"
	"github.com/jeranaias/authshell/internal/ui/styles"
	"github.com/jeranaias/authshell/internal/util"
)

// NotFound is the screen shown for unknown paths. Its only action is going
// back to the home page.
type NotFound struct {
	theme *styles.Theme
	tr    Translator
}

// NewNotFound creates the not-found screen.
func NewNotFound(theme *styles.Theme, tr Translator) *NotFound {
	return &NotFound{theme: theme, tr: tr}
}

// SetTheme restyles the screen.
func (n *NotFound) SetTheme(theme *styles.Theme) { n.theme = theme }

// SetTranslator changes the screen language.
func (n *NotFound) SetTranslator(tr Translator) { n.tr = tr }

// Target is the path the home action leads to.
func (n *NotFound) Target() string { return router.PathHome }

// View renders the screen for requested, centered in width x height.
func (n *NotFound) View(requested string, width, height int) string {
	t := n.theme
	maxText := width - 4
	if maxText < 10 {
		maxText = 10
	}

	lines := []string{
		t.NotFoundCode.Render(n.tr.T("notfound.code")),
		"",
		t.NotFoundTitle.Render(n.tr.T("notfound.title")),
		t.Muted.Width(maxText).Align(lipgloss.Center).Render(n.tr.T("notfound.body")),
	}
	if requested != "" {
		lines = append(lines, t.Muted.Render(util.TruncateWidth(requested, maxText)))
	}
	lines = append(lines, "", t.ButtonFocused.Render(n.tr.T("notfound.home")))

	view := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if width <= 0 || height <= 0 {
		return view
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, view)
}
