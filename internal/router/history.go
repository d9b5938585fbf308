// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "sync"

// MaxHistory bounds the back stack.
const MaxHistory = 100

// History is a navigation stack. It is safe for concurrent use.
type History struct {
	mu      sync.Mutex
	entries []string
}

// NewHistory creates a history whose only entry is start.
func NewHistory(start string) *History {
	return &History{entries: []string{Normalize(start)}}
}

// Current returns the top entry.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

// Push adds path on top. Pushing the current path is a no-op.
func (h *History) Push(path string) {
	path = Normalize(path)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.entries[len(h.entries)-1] == path {
		return
	}
	h.entries = append(h.entries, path)
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[len(h.entries)-MaxHistory:]
	}
}

// Replace swaps the top entry for path.
func (h *History) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[len(h.entries)-1] = Normalize(path)
}

// Back pops the top entry and returns the new current path. It reports false
// when there is nothing to go back to.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) < 2 {
		return h.entries[0], false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
