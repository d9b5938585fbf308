// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	Mode         string
	IsDark       bool
	ColorProfile termenv.Profile

	// Application frame
	App       lipgloss.Style
	Content   lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// Sidebar
	Sidebar       lipgloss.Style
	SidebarTitle  lipgloss.Style
	NavItem       lipgloss.Style
	NavItemActive lipgloss.Style
	NavItemCursor lipgloss.Style
	NavLogout     lipgloss.Style
	DrawerToggle  lipgloss.Style

	// Pages
	PageTitle lipgloss.Style
	Muted     lipgloss.Style

	// Forms
	FormBox       lipgloss.Style
	FormTitle     lipgloss.Style
	FormSubtitle  lipgloss.Style
	Label         lipgloss.Style
	LabelFocused  lipgloss.Style
	Required      lipgloss.Style
	FieldError    lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonBusy    lipgloss.Style
	Link          lipgloss.Style
	LinkFocused   lipgloss.Style

	// Toasts
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style

	// Loading and not found
	Loading       lipgloss.Style
	NotFoundCode  lipgloss.Style
	NotFoundTitle lipgloss.Style
}

// NewTheme creates a theme for mode. Unknown modes behave like auto.
func NewTheme(mode string) *Theme {
	mode = strings.ToLower(mode)
	var isDark bool
	switch mode {
	case ModeDark:
		isDark = true
	case ModeLight:
		isDark = false
	default:
		mode = ModeAuto
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		Mode:         mode,
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Content = lipgloss.NewStyle().Padding(1, 2)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.Help = lipgloss.NewStyle().Foreground(TextMuted).Padding(0, 1)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(1, 1)
	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		MarginBottom(1)
	t.NavItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)
	t.NavItemActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Background(PurpleDeep).
		Padding(0, 1)
	t.NavItemCursor = lipgloss.NewStyle().
		Foreground(Purple).
		Underline(true).
		Padding(0, 1)
	t.NavLogout = lipgloss.NewStyle().
		Foreground(Rose).
		Padding(0, 1)
	t.DrawerToggle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	// Pages
	t.PageTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 3)
	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		Align(lipgloss.Center).
		MarginBottom(1)
	t.FormSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Align(lipgloss.Center).
		MarginBottom(1)
	t.Label = lipgloss.NewStyle().Foreground(TextSecondary)
	t.LabelFocused = lipgloss.NewStyle().Foreground(Purple).Bold(true)
	t.Required = lipgloss.NewStyle().Foreground(Rose)
	t.FieldError = lipgloss.NewStyle().Foreground(Rose)
	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2).
		Align(lipgloss.Center)
	t.ButtonFocused = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 2).
		Align(lipgloss.Center)
	t.ButtonBusy = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2).
		Align(lipgloss.Center)
	t.Link = lipgloss.NewStyle().Foreground(LinkColor).Underline(true)
	t.LinkFocused = lipgloss.NewStyle().Foreground(Purple).Underline(true).Bold(true)

	// Toasts
	toast := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)
	t.ToastSuccess = toast.Copy().BorderForeground(Emerald).Foreground(Emerald)
	t.ToastError = toast.Copy().BorderForeground(Rose).Foreground(Rose)
	t.ToastInfo = toast.Copy().BorderForeground(LinkColor).Foreground(TextPrimary)

	// Loading and not found
	t.Loading = lipgloss.NewStyle().Foreground(Purple)
	t.NotFoundCode = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.NotFoundTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
}
