// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package shell provides the root Bubble Tea model of authshell.

The model owns navigation and the session lifecycle. It asks the auth store
for the session on start, shows a loading screen until the check completes,
and then routes between the sidebar layout pages and the auth screens.

# Files

  - keys.go - key bindings and help
  - messages.go - messages produced by store commands and the config watcher
  - model.go - Model construction and navigation
  - update.go - message handling and form submission
  - view.go - rendering

# Usage

	m := shell.New(shell.Options{
		Store:     store,
		Layout:    layout.NewSidebar(prefs),
		Localizer: i18n.NewActive(i18n.MustNew(locale)),
		Theme:     styles.NewTheme(cfg.UI.Theme),
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
*/
package shell
