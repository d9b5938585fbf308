// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/authshell/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastInfo is an informational toast.
	ToastInfo ToastKind = iota
	// ToastSuccess confirms a completed action.
	ToastSuccess
	// ToastError reports a failed action.
	ToastError
)

// String returns the kind name.
func (k ToastKind) String() string {
	switch k {
	case ToastInfo:
		return "info"
	case ToastSuccess:
		return "success"
	case ToastError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	// DefaultToastDuration is the auto-dismiss duration of info and success toasts.
	DefaultToastDuration = 4 * time.Second

	// ErrorToastDuration is longer so errors can be read.
	ErrorToastDuration = 8 * time.Second

	// MaxToasts is the number of toasts kept at once.
	MaxToasts = 3

	toastTickInterval = 250 * time.Millisecond
	toastMaxWidth     = 48
)

// Toast is a single notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// ExpiredAt reports whether the toast should be gone at now.
func (t Toast) ExpiredAt(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager keeps the visible toasts, newest first.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
	now    func() time.Time
}

// NewToastManager creates an empty toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1, now: time.Now}
}

// Add shows a toast of kind and returns its ID.
func (m *ToastManager) Add(kind ToastKind, message string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	duration := DefaultToastDuration
	if kind == ToastError {
		duration = ErrorToastDuration
	}
	toast := Toast{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: m.now(),
		Duration:  duration,
	}
	m.nextID++

	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > MaxToasts {
		m.toasts = m.toasts[:MaxToasts]
	}
	return toast.ID
}

// Info shows an informational toast.
func (m *ToastManager) Info(message string) int { return m.Add(ToastInfo, message) }

// Success shows a success toast.
func (m *ToastManager) Success(message string) int { return m.Add(ToastSuccess, message) }

// Error shows an error toast.
func (m *ToastManager) Error(message string) int { return m.Add(ToastError, message) }

// Remove dismisses the toast with id.
func (m *ToastManager) Remove(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, toast := range m.toasts {
		if toast.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Expire drops toasts whose duration has passed at now and reports whether
// any are left.
func (m *ToastManager) Expire(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.toasts[:0]
	for _, toast := range m.toasts {
		if !toast.ExpiredAt(now) {
			active = append(active, toast)
		}
	}
	m.toasts = active
	return len(m.toasts) > 0
}

// Toasts returns a copy of the visible toasts, newest first.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Len returns the number of visible toasts.
func (m *ToastManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// Clear removes all toasts.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg drives toast expiry.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next expiry check.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders a single toast.
func RenderToast(theme *styles.Theme, toast Toast) string {
	var style lipgloss.Style
	var icon string
	switch toast.Kind {
	case ToastSuccess:
		style, icon = theme.ToastSuccess, styles.StatusIndicators.Success
	case ToastError:
		style, icon = theme.ToastError, styles.StatusIndicators.Error
	default:
		style, icon = theme.ToastInfo, styles.StatusIndicators.Info
	}
	text := icon + " " + toast.Message
	if lipgloss.Width(text) > toastMaxWidth {
		style = style.Width(toastMaxWidth)
	}
	return style.Render(text)
}

// RenderToastStack renders toasts stacked vertically and aligned right
// within width. It returns "" when there is nothing to show.
func RenderToastStack(theme *styles.Theme, toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		rendered = append(rendered, RenderToast(theme, toast))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width <= 0 || lipgloss.Width(stack) >= width {
		return stack
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}
