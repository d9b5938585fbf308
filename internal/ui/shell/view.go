// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authshell/internal/api"
	"github.com/jeranaias/authshell/internal/router"
	"github.com/jeranaias/authshell/internal/ui/components"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// View renders the current screen.
func (m *Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	if router.Gate(m.store.Snapshot(), m.route, m.policy).Outcome == router.Pending {
		return m.loading.ViewCentered(width, height)
	}

	helpLine := m.helpView()
	toasts := components.RenderToastStack(m.theme, m.toasts.Toasts(), width)

	var body string
	bodyHeight := height - lipgloss.Height(helpLine) - heightOf(toasts)
	switch m.route.Kind {
	case router.KindAuth:
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, m.currentForm().View())
	case router.KindNotFound:
		body = m.notFound.View(m.route.Requested, width, bodyHeight)
	default:
		body = m.shellView(width, bodyHeight)
	}

	parts := make([]string, 0, 3)
	if toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, body, helpLine)
	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// shellView renders the header, the sidebar and the page of a shell route.
func (m *Model) shellView(width, height int) string {
	session := m.store.Snapshot()
	m.header.Title = m.tr.T(m.route.TitleKey)
	m.header.SidebarOpen = m.layout.Open()
	m.header.User = ""
	if session.User != nil {
		m.header.User = session.User.Email
	}
	header := m.header.View()
	height -= lipgloss.Height(header)

	if m.layout.Open() && m.layout.Mobile() {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.sidebar.ViewDrawer(width, height))
	}

	m.page.SetWidth(m.contentWidth() - m.theme.Content.GetHorizontalFrameSize())
	content := m.theme.Content.
		Width(m.contentWidth()).
		MaxHeight(height).
		Render(m.pageBody(session.User))

	if !m.layout.Open() {
		return lipgloss.JoinVertical(lipgloss.Left, header, content)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(height), content)
	return lipgloss.JoinVertical(lipgloss.Left, header, row)
}

// contentWidth is the width left for the page next to the sidebar.
func (m *Model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	if m.layout.Open() && !m.layout.Mobile() {
		width -= m.sidebar.Width()
	}
	if width < 1 {
		width = 1
	}
	return width
}

// pageBody renders the markdown body of the current shell route.
func (m *Model) pageBody(user *api.User) string {
	md := m.tr.T(pageKey(m.route.Path))
	if user != nil && m.route.Path == router.PathHome {
		md += "\n\n" + m.tr.Tf("page.signed_in_as", user.Email)
	}
	return m.page.Render(md)
}

// helpView renders the key help for the current route.
func (m *Model) helpView() string {
	var out string
	switch {
	case m.help.ShowAll:
		out = m.help.FullHelpView(m.keys.fullHelp())
	case m.route.Kind == router.KindAuth:
		out = m.help.ShortHelpView(m.keys.formHelp(m.tr))
	case m.route.Kind == router.KindNotFound:
		out = m.help.ShortHelpView(m.keys.notFoundHelp())
	default:
		out = m.help.ShortHelpView(m.keys.navHelp())
	}
	return m.theme.Help.Render(out)
}

// pageKey maps a shell route to its page body resource key.
func pageKey(path string) string {
	if path == router.PathHome {
		return "page.home"
	}
	return "page." + strings.TrimPrefix(path, "/")
}

func heightOf(s string) int {
	if s == "" {
		return 0
	}
	return lipgloss.Height(s)
}
