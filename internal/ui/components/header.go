// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authshell/internal/ui/styles"
	"github.com/jeranaias/authshell/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Drawer toggle glyphs.
const (
	ToggleOpen   = "[<]"
	ToggleClosed = "[=]"
)

// Header is the title bar of the application shell: the drawer toggle, the
// section title and the signed-in user.
type Header struct {
	Title       string // Section title
	User        string // Email of the signed-in user, empty when anonymous
	Width       int    // Available width
	SidebarOpen bool
	theme       *styles.Theme
}

// NewHeader creates a Header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// SetTheme restyles the header.
func (h *Header) SetTheme(theme *styles.Theme) { h.theme = theme }

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) { h.Width = width }

// View renders the header as a single line.
func (h *Header) View() string {
	t := h.theme
	width := h.Width
	if width < 20 {
		width = 20
	}
	inner := width - t.StatusBar.GetHorizontalFrameSize()

	toggle := ToggleClosed
	if h.SidebarOpen {
		toggle = ToggleOpen
	}
	left := t.DrawerToggle.Render(toggle) + " " + t.PageTitle.Render(h.Title)

	right := ""
	if h.User != "" {
		room := inner - lipgloss.Width(left) - 1
		right = t.Muted.Render(util.TruncateWidth(h.User, room))
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = inner - lipgloss.Width(left)
	}
	line := left
	if gap > 0 {
		line += util.PadRight("", gap)
	}
	line += right

	return t.StatusBar.Width(width).MaxWidth(width).Render(line)
}
