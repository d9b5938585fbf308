// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/authshell/internal/i18n"
	"github.com/jeranaias/authshell/internal/router"
	"github.com/jeranaias/authshell/internal/ui/styles"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func plain(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

func TestPage_RendersMarkdown(t *testing.T) {
	p := NewPage(styles.NewTheme(styles.ModeDark))
	p.SetStyle(PageStylePlain)
	p.SetWidth(60)

	out := plain(p.Render("# Settings\n\nPreferences are **stored** locally."))
	assert.Contains(t, out, "Settings")
	assert.Contains(t, out, "stored")
}

func TestPage_Cached(t *testing.T) {
	p := NewPage(styles.NewTheme(styles.ModeLight))
	first := p.Render("# Keys")
	second := p.Render("# Keys")
	assert.Equal(t, first, second)
	assert.Len(t, p.cache, 1)

	p.SetWidth(40)
	assert.Nil(t, p.cache, "changing the width drops cached output")
}

func TestPage_StyleFollowsTheme(t *testing.T) {
	assert.Equal(t, PageStyleDark, NewPage(styles.NewTheme(styles.ModeDark)).style)
	assert.Equal(t, PageStyleLight, NewPage(styles.NewTheme(styles.ModeLight)).style)
}

func TestPage_MinimumWidth(t *testing.T) {
	p := NewPage(styles.NewTheme(styles.ModeDark))
	p.SetWidth(1)
	assert.Equal(t, minPageWidth, p.width)
}

func TestNotFound_View(t *testing.T) {
	n := NewNotFound(styles.NewTheme(styles.ModeDark), i18n.MustNew("en"))
	out := n.View("/does-not-exist", 80, 20)

	for _, want := range []string{"404", "Page not found!", "/does-not-exist", "Go to Home"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, router.PathHome, n.Target())
}
