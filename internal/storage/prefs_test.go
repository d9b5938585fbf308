// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*PrefStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "preferences.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestPrefStore_GetSet(t *testing.T) {
	store, _ := openTemp(t)

	_, ok, err := store.Get("sidebar-opened")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("sidebar-opened", "false"))
	v, ok, err := store.Get("sidebar-opened")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)

	require.NoError(t, store.Set("sidebar-opened", "true"))
	v, _, _ = store.Get("sidebar-opened")
	assert.Equal(t, "true", v)
}

func TestPrefStore_PersistsAcrossOpen(t *testing.T) {
	store, path := openTemp(t)
	require.NoError(t, store.Set("locale", "tr"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("locale")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tr", v)
}

func TestPrefStore_DeleteAndAll(t *testing.T) {
	store, err := Open(MemoryPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set("a", "1"))
	require.NoError(t, store.Set("b", "2"))
	require.NoError(t, store.Delete("a"))
	require.NoError(t, store.Delete("missing"))

	all, err := store.All()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"b": "2"}, all)
}

func TestPrefStore_EmptyKey(t *testing.T) {
	store, _ := openTemp(t)
	assert.ErrorIs(t, store.Set("", "x"), ErrEmptyKey)
	_, _, err := store.Get("")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestPrefStore_Closed(t *testing.T) {
	store, _ := openTemp(t)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Set("k", "v"), ErrClosed)
	_, _, err := store.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPrefStore_Concurrent(t *testing.T) {
	store, _ := openTemp(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Set("sidebar-opened", "true"))
			_, _, err := store.Get("sidebar-opened")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	_, ok, err := m.Get("x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("b", "2"))
	require.NoError(t, m.Set("a", "1"))
	v, ok, _ := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.ErrorIs(t, m.Set("", "x"), ErrEmptyKey)
}
