// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the authshell TUI.

All colors use Lip Gloss AdaptiveColor so the same palette works on light and
dark terminals.

# Color System (colors.go)

  - Purple - primary accent, active navigation item, focused controls
  - Cyan - brand color, links
  - Emerald - success toasts
  - Amber - informational toasts and warnings
  - Rose - field errors and error toasts

# Theme System (theme.go)

NewTheme takes the configured mode ("auto", "dark" or "light"). In auto mode
the background is detected with termenv:

	theme := styles.NewTheme("auto")
	box := theme.FormBox.Render(form)

# Status Indicators

Every status also carries an ASCII marker so it does not rely on color alone:

	styles.RenderError("Invalid email") // "[X] Invalid email"
*/
package styles
