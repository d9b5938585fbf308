// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AUTHSHELL_HOME", dir)
	for _, key := range []string{
		"AUTHSHELL_API_URL", "AUTHSHELL_API_TIMEOUT", "AUTHSHELL_LOCALE", "AUTHSHELL_THEME",
		"AUTHSHELL_ENFORCE_AUTH", "AUTHSHELL_LOG_LEVEL", "AUTHSHELL_SERVER_ADDR", "AUTHSHELL_JWT_SECRET",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout())
	assert.Equal(t, 8, cfg.UI.CellWidthPx)
	assert.Equal(t, "/", cfg.UI.StartPath)
	assert.False(t, cfg.Router.EnforceAuth)
}

func TestLoad_NoFiles_ReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
}

// =============================================================================
// FILE LOADING
// =============================================================================

func TestLoad_TOML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[api]
base_url = "https://api.example.com/api/"
timeout_secs = 15

[ui]
locale = "tr"
theme = "dark"

[router]
enforce_auth = true
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.API.BaseURL, "trailing slash trimmed")
	assert.Equal(t, 15*time.Second, cfg.API.Timeout())
	assert.Equal(t, "tr", cfg.UI.Locale)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.True(t, cfg.Router.EnforceAuth)
	// Untouched sections keep their defaults.
	assert.Equal(t, 8, cfg.UI.CellWidthPx)
	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr)
}

func TestLoad_JSONFallback(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.json"), `{"ui": {"cell_width_px": 10}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.UI.CellWidthPx)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, `
[api]
base_url = "ftp://nowhere"

[ui]
theme = "neon"
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}

func TestLoadFromPath_Malformed(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[api\nbase_url=")

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("AUTHSHELL_API_URL", "http://backend:9000/api")
	t.Setenv("AUTHSHELL_API_TIMEOUT", "5")
	t.Setenv("AUTHSHELL_LOCALE", "en")
	t.Setenv("AUTHSHELL_ENFORCE_AUTH", "true")
	t.Setenv("AUTHSHELL_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000/api", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSecs)
	assert.Equal(t, "en", cfg.UI.Locale)
	assert.True(t, cfg.Router.EnforceAuth)
	assert.Equal(t, "s3cret", cfg.Server.JWTSecret)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	os.Unsetenv("AUTHSHELL_API_URL")
	t.Cleanup(func() { os.Unsetenv("AUTHSHELL_API_URL") })
	writeFile(t, filepath.Join(dir, ".env"), "AUTHSHELL_API_URL=http://from-dotenv:8000/api\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:8000/api", cfg.API.BaseURL)
}

// =============================================================================
// SAVE
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.UI.Locale = "tr"
	cfg.Router.EnforceAuth = true
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "tr", loaded.UI.Locale)
	assert.True(t, loaded.Router.EnforceAuth)
}

func TestFindConfigFile(t *testing.T) {
	dir := isolate(t)

	_, err := FindConfigFile()
	assert.ErrorIs(t, err, ErrNoConfigFile)

	writeFile(t, filepath.Join(dir, "config.json"), `{}`)
	path, err := FindConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.json"), path)
}

func TestClone_Independent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Server.AllowedOrigins[0] = "http://changed"
	assert.NotEqual(t, cfg.Server.AllowedOrigins[0], clone.Server.AllowedOrigins[0])
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[ui]\nlocale = \"en\"\n")

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, zerolog.Nop(), func(cfg *Config, err error) {
		if err == nil {
			changes <- cfg
		}
	})
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	w.Start()
	defer w.Close()

	writeFile(t, path, "[ui]\nlocale = \"tr\"\n")

	select {
	case cfg := <-changes:
		assert.Equal(t, "tr", cfg.UI.Locale)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "")

	w, err := NewWatcher(path, zerolog.Nop(), nil)
	require.NoError(t, err)
	w.Start()
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
