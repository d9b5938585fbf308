// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTheme_Modes(t *testing.T) {
	tests := []struct {
		mode     string
		wantMode string
		wantDark *bool
	}{
		{"dark", ModeDark, boolPtr(true)},
		{"LIGHT", ModeLight, boolPtr(false)},
		{"auto", ModeAuto, nil},
		{"neon", ModeAuto, nil},
	}

	for _, tc := range tests {
		t.Run(tc.mode, func(t *testing.T) {
			theme := NewTheme(tc.mode)
			if theme.Mode != tc.wantMode {
				t.Errorf("Mode = %q, want %q", theme.Mode, tc.wantMode)
			}
			if tc.wantDark != nil && theme.IsDark != *tc.wantDark {
				t.Errorf("IsDark = %v, want %v", theme.IsDark, *tc.wantDark)
			}
		})
	}
}

func TestThemeStyles_Render(t *testing.T) {
	theme := NewTheme(ModeDark)

	styles := map[string]lipgloss.Style{
		"Sidebar":       theme.Sidebar,
		"NavItemActive": theme.NavItemActive,
		"FormBox":       theme.FormBox,
		"ButtonFocused": theme.ButtonFocused,
		"ToastError":    theme.ToastError,
		"NotFoundCode":  theme.NotFoundCode,
	}
	for name, style := range styles {
		if out := style.Render("test"); !strings.Contains(out, "test") {
			t.Errorf("%s.Render lost its content: %q", name, out)
		}
	}
}

func TestRenderIndicators(t *testing.T) {
	tests := []struct {
		name   string
		render func(string) string
		marker string
	}{
		{"success", RenderSuccess, StatusIndicators.Success},
		{"error", RenderError, StatusIndicators.Error},
		{"warning", RenderWarning, StatusIndicators.Warning},
		{"info", RenderInfo, StatusIndicators.Info},
	}
	for _, tc := range tests {
		out := tc.render("message")
		if !strings.Contains(out, tc.marker) || !strings.Contains(out, "message") {
			t.Errorf("%s: %q should contain %q and the message", tc.name, out, tc.marker)
		}
	}
}

func boolPtr(b bool) *bool { return &b }
