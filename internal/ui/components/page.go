// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/authshell/internal/ui/styles"
)

// Glamour standard styles used for page bodies.
const (
	PageStyleDark  = "dark"
	PageStyleLight = "light"
	PageStylePlain = "notty"
)

const minPageWidth = 20

// Page renders markdown page bodies with Glamour. The renderer is rebuilt
// only when the width or style changes.
type Page struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

// NewPage creates a page renderer matching theme.
func NewPage(theme *styles.Theme) *Page {
	p := &Page{width: 80}
	p.SetTheme(theme)
	return p
}

// SetTheme picks the Glamour style for theme.
func (p *Page) SetTheme(theme *styles.Theme) {
	style := PageStyleLight
	if theme.IsDark {
		style = PageStyleDark
	}
	p.SetStyle(style)
}

// SetStyle sets a Glamour standard style by name.
func (p *Page) SetStyle(style string) {
	if style != p.style {
		p.style = style
		p.invalidate()
	}
}

// SetWidth sets the word wrap width in columns.
func (p *Page) SetWidth(width int) {
	if width < minPageWidth {
		width = minPageWidth
	}
	if width != p.width {
		p.width = width
		p.invalidate()
	}
}

func (p *Page) invalidate() {
	p.renderer = nil
	p.cache = nil
}

// Render renders markdown. If Glamour fails the source is returned as is.
func (p *Page) Render(markdown string) string {
	if out, ok := p.cache[markdown]; ok {
		return out
	}
	if p.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(p.style),
			glamour.WithWordWrap(p.width),
		)
		if err != nil {
			return markdown
		}
		p.renderer = r
	}
	out, err := p.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	out = strings.Trim(out, "\n")
	if p.cache == nil {
		p.cache = make(map[string]string)
	}
	p.cache[markdown] = out
	return out
}
