// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local key-value store for UI preferences.
//
// Preferences are small string values keyed by a fixed name, the terminal
// counterpart of browser local storage. The persistent implementation is a
// single SQLite table; MemoryStore backs tests and --ephemeral runs.
//
// # Key Types
//
//   - PrefStore: SQLite-backed store (modernc.org/sqlite, no cgo)
//   - MemoryStore: in-process map with the same interface
//
// # Usage
//
//	path, err := cfg.PreferencesPath()
//	if err != nil {
//	    return err
//	}
//	store, err := storage.Open(path)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	_ = store.Set("sidebar-opened", "false")
//	v, ok, err := store.Get("sidebar-opened")
//
// # Storage Location
//
// Preferences live in ~/.authshell/preferences.db unless [storage] path is set.
package storage
