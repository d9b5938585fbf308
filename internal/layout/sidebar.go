// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout owns the sidebar open/closed state of the application shell.
//
// Widths are measured in logical pixels so the breakpoint matches the web
// layout; terminal columns are converted with a configurable cell width.
package layout

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

const (
	// SidebarStorageKey is the preference key holding "true" or "false".
	SidebarStorageKey = "sidebar-opened"

	// MobileBreakpointPx: viewports narrower than this are mobile.
	MobileBreakpointPx = 768

	// SidebarWidthPx is the width of the open sidebar on desktop.
	SidebarWidthPx = 280

	// DefaultCellWidthPx is the assumed width of one terminal column.
	DefaultCellWidthPx = 8
)

// Preferences is the local key-value storage the sidebar flag lives in.
type Preferences interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// ColumnsToPx converts a terminal width to logical pixels.
func ColumnsToPx(columns, cellWidthPx int) int {
	if cellWidthPx <= 0 {
		cellWidthPx = DefaultCellWidthPx
	}
	return columns * cellWidthPx
}

// PxToColumns converts logical pixels to terminal columns, rounding down.
func PxToColumns(px, cellWidthPx int) int {
	if cellWidthPx <= 0 {
		cellWidthPx = DefaultCellWidthPx
	}
	return px / cellWidthPx
}

// IsMobile reports whether widthPx is below the breakpoint.
func IsMobile(widthPx int) bool {
	return widthPx < MobileBreakpointPx
}

// Option configures a Sidebar.
type Option func(*Sidebar)

// WithLogger sets the logger used for preference storage failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sidebar) { s.logger = logger }
}

// Sidebar tracks whether the sidebar is open. It is safe for concurrent use.
type Sidebar struct {
	prefs  Preferences
	logger zerolog.Logger

	mu     sync.Mutex
	open   bool
	mobile bool
}

// NewSidebar creates a sidebar state. prefs may be nil, in which case nothing
// is persisted and the stored preference is always absent.
func NewSidebar(prefs Preferences, opts ...Option) *Sidebar {
	s := &Sidebar{
		prefs:  prefs,
		logger: zerolog.Nop(),
		open:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initial derives the starting state: closed on mobile regardless of the
// stored preference, otherwise the stored preference or open.
func (s *Sidebar) Initial(widthPx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mobile = IsMobile(widthPx)
	if s.mobile {
		s.open = false
	} else {
		s.open = s.stored()
	}
	return s.open
}

// Resize re-derives the state when the viewport crosses the breakpoint. It
// reports whether the open flag changed.
func (s *Sidebar) Resize(widthPx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	mobile := IsMobile(widthPx)
	if mobile == s.mobile {
		return false
	}
	s.mobile = mobile

	before := s.open
	if mobile {
		s.open = false
	} else {
		s.open = s.stored()
	}
	return before != s.open
}

// Toggle flips the flag. The new value is persisted only on desktop.
func (s *Sidebar) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = !s.open
	if !s.mobile {
		s.persist()
	}
	return s.open
}

// Navigated closes the drawer after a menu navigation on mobile.
func (s *Sidebar) Navigated() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mobile {
		s.open = false
	}
}

// Open reports whether the sidebar is open.
func (s *Sidebar) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Mobile reports whether the last known width was below the breakpoint.
func (s *Sidebar) Mobile() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mobile
}

// stored returns the persisted flag, defaulting to open. Must hold mu.
func (s *Sidebar) stored() bool {
	if s.prefs == nil {
		return true
	}
	v, ok, err := s.prefs.Get(SidebarStorageKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("SIDEBAR_PREF_READ_FAILED")
		return true
	}
	if !ok {
		return true
	}
	return v == "true"
}

// persist writes the flag. Must hold mu.
func (s *Sidebar) persist() {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Set(SidebarStorageKey, strconv.FormatBool(s.open)); err != nil {
		s.logger.Warn().Err(err).Msg("SIDEBAR_PREF_WRITE_FAILED")
	}
}
