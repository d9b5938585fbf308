// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/authshell/internal/ui/components"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the global key bindings of the shell.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Select        key.Binding
	ToggleSidebar key.Binding
	NextField     key.Binding
	PrevField     key.Binding
	Back          key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// NewKeyMap returns the default bindings with help text from tr.
func NewKeyMap(tr components.Translator) KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", tr.T("help.navigate")),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", tr.T("help.navigate")),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", tr.T("help.open_link")),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", tr.T("help.toggle_sidebar")),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", tr.T("help.next_field")),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", tr.T("help.prev_field")),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", tr.T("help.back")),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", tr.T("help.more")),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", tr.T("help.quit")),
		),
	}
}

// =============================================================================
// HELP CONTEXTS
// =============================================================================

// navHelp lists the bindings of the sidebar layout.
func (k KeyMap) navHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.ToggleSidebar, k.Help, k.Quit}
}

// formHelp lists the bindings of the auth screens. Enter submits there.
func (k KeyMap) formHelp(tr components.Translator) []key.Binding {
	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", tr.T("help.submit")))
	return []key.Binding{k.NextField, k.PrevField, submit, k.Back, k.Quit}
}

// notFoundHelp lists the bindings of the not-found screen.
func (k KeyMap) notFoundHelp() []key.Binding {
	return []key.Binding{k.Select, k.Back, k.Quit}
}

// fullHelp groups every binding for the expanded help view.
func (k KeyMap) fullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.ToggleSidebar, k.Back},
		{k.NextField, k.PrevField},
		{k.Help, k.Quit},
	}
}
