// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authshell/internal/router"
	"github.com/jeranaias/authshell/internal/ui/styles"
	"github.com/jeranaias/authshell/internal/util"
)

// MinSidebarWidth is the narrowest the sidebar is drawn.
const MinSidebarWidth = 16

// Sidebar is the navigation menu of the application shell: the shell routes
// in order followed by Logout.
type Sidebar struct {
	theme  *styles.Theme
	tr     Translator
	items  []router.Route
	cursor int
	active string
	width  int
}

// NewSidebar creates a sidebar listing router.Menu().
func NewSidebar(theme *styles.Theme, tr Translator) *Sidebar {
	return &Sidebar{
		theme:  theme,
		tr:     tr,
		items:  router.Menu(),
		active: router.PathHome,
		width:  MinSidebarWidth,
	}
}

// SetTheme restyles the sidebar.
func (s *Sidebar) SetTheme(theme *styles.Theme) { s.theme = theme }

// SetTranslator changes the label language.
func (s *Sidebar) SetTranslator(tr Translator) { s.tr = tr }

// SetWidth sets the outer width in columns.
func (s *Sidebar) SetWidth(width int) {
	if width < MinSidebarWidth {
		width = MinSidebarWidth
	}
	s.width = width
}

// Width returns the outer width in columns.
func (s *Sidebar) Width() int { return s.width }

// SetActive highlights the item for path and moves the cursor onto it.
// Paths outside the menu clear the highlight.
func (s *Sidebar) SetActive(path string) {
	s.active = path
	for i, item := range s.items {
		if item.Path == path {
			s.cursor = i
			return
		}
	}
}

// Active returns the highlighted path.
func (s *Sidebar) Active() string { return s.active }

// Cursor returns the index of the item under the cursor. The Logout entry is
// at len(menu).
func (s *Sidebar) Cursor() int { return s.cursor }

// CursorUp moves the cursor up, wrapping to Logout.
func (s *Sidebar) CursorUp() {
	s.cursor--
	if s.cursor < 0 {
		s.cursor = len(s.items)
	}
}

// CursorDown moves the cursor down, wrapping to the first item.
func (s *Sidebar) CursorDown() {
	s.cursor++
	if s.cursor > len(s.items) {
		s.cursor = 0
	}
}

// OnLogout reports whether the cursor is on the Logout entry.
func (s *Sidebar) OnLogout() bool { return s.cursor == len(s.items) }

// Select returns the command for the item under the cursor.
func (s *Sidebar) Select() tea.Cmd {
	if s.OnLogout() {
		return func() tea.Msg { return LogoutMsg{} }
	}
	return Navigate(s.items[s.cursor].Path)
}

// View renders the sidebar height rows tall.
func (s *Sidebar) View(height int) string {
	t := s.theme
	inner := s.width - t.Sidebar.GetHorizontalFrameSize()
	label := func(key string) string {
		return util.TruncateWidth(s.tr.T(key), inner-4)
	}

	var b strings.Builder
	b.WriteString(t.SidebarTitle.Render(label("app.title")))
	b.WriteString("\n")

	for i, item := range s.items {
		text := label(item.TitleKey)
		style := t.NavItem
		switch {
		case item.Path == s.active:
			style = t.NavItemActive
		case i == s.cursor:
			style = t.NavItemCursor
		}
		marker := "  "
		if i == s.cursor {
			marker = "> "
		}
		b.WriteString(marker + style.Render(text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	logout := t.NavLogout.Render(label("nav.logout"))
	if s.OnLogout() {
		logout = "> " + logout
	} else {
		logout = "  " + logout
	}
	b.WriteString(logout)

	box := t.Sidebar.Width(inner + t.Sidebar.GetHorizontalPadding())
	if height > 0 {
		box = box.Height(height - t.Sidebar.GetVerticalBorderSize() - t.Sidebar.GetVerticalMargins())
	}
	return box.Render(b.String())
}

// ViewDrawer renders the sidebar as a mobile drawer across width columns.
func (s *Sidebar) ViewDrawer(width, height int) string {
	saved := s.width
	s.width = width
	defer func() { s.width = saved }()
	return lipgloss.NewStyle().MaxWidth(width).Render(s.View(height))
}
