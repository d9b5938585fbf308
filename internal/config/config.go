// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/authshell/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete authshell configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Session backend
	API APIConfig `toml:"api" json:"api"`

	// Terminal shell presentation
	UI UIConfig `toml:"ui" json:"ui"`

	// Route gating
	Router RouterConfig `toml:"router" json:"router"`

	// Local preference storage
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Logging
	Log LogConfig `toml:"log" json:"log"`

	// Development backend (authshell serve)
	Server ServerConfig `toml:"server" json:"server"`
}

// APIConfig contains the session backend settings.
type APIConfig struct {
	// BaseURL is the backend API root, e.g. http://localhost:8000/api
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs bounds each request. 0 means no timeout: an unresolved
	// request keeps the shell in its loading state until the transport fails.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// Timeout returns TimeoutSecs as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// UIConfig contains terminal shell settings.
type UIConfig struct {
	// Locale selects the resource catalog ("en", "tr"). Empty = from $LANG.
	Locale string `toml:"locale" json:"locale"`
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// CellWidthPx converts terminal columns to logical pixels for the
	// sidebar breakpoint.
	CellWidthPx int `toml:"cell_width_px" json:"cell_width_px"`
	// StartPath is the route shown once the session check completes.
	StartPath string `toml:"start_path" json:"start_path"`
}

// RouterConfig contains route gating settings.
type RouterConfig struct {
	// EnforceAuth redirects anonymous users away from shell routes and
	// signed-in users away from the auth forms. Off by default.
	EnforceAuth bool `toml:"enforce_auth" json:"enforce_auth"`
}

// StorageConfig contains local persistence settings.
type StorageConfig struct {
	// Path is the preference database (empty = ~/.authshell/preferences.db)
	Path string `toml:"path" json:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" json:"level"`
	// Format is "console" or "json".
	Format string `toml:"format" json:"format"`
	// File receives TUI logs (empty = ~/.authshell/authshell.log).
	File string `toml:"file" json:"file"`
}

// ServerConfig contains development backend settings.
type ServerConfig struct {
	Addr string `toml:"addr" json:"addr"`
	// JWTSecret signs session cookies. Empty = random per process.
	JWTSecret string `toml:"jwt_secret" json:"jwt_secret"`
	// AllowedOrigins may send credentialed cross-origin requests.
	AllowedOrigins []string `toml:"allowed_origins" json:"allowed_origins"`
	// RatePerMinute limits requests per client IP (0 = unlimited).
	RatePerMinute int `toml:"rate_per_minute" json:"rate_per_minute"`
	// BcryptCost is the password hashing cost.
	BcryptCost int `toml:"bcrypt_cost" json:"bcrypt_cost"`
	// TokenTTLMinutes is the access cookie lifetime.
	TokenTTLMinutes int `toml:"token_ttl_minutes" json:"token_ttl_minutes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		API: APIConfig{
			BaseURL:     "http://localhost:8000/api",
			TimeoutSecs: 0,
		},

		UI: UIConfig{
			Locale:      "",
			Theme:       "auto",
			CellWidthPx: 8,
			StartPath:   "/",
		},

		Router: RouterConfig{
			EnforceAuth: false,
		},

		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},

		Server: ServerConfig{
			Addr:            "127.0.0.1:8000",
			AllowedOrigins:  []string{"http://localhost:5173", "https://localhost:5173"},
			RatePerMinute:   120,
			BcryptCost:      10,
			TokenTTLMinutes: 60,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the authshell configuration directory.
// AUTHSHELL_HOME overrides the default ~/.authshell.
func ConfigDir() (string, error) {
	if dir := os.Getenv("AUTHSHELL_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".authshell"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// PreferencesPath returns the preference database path.
func (c *Config) PreferencesPath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "preferences.db"), nil
}

// LogPath returns the TUI log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "authshell.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults. .env files in the
// working directory and the config directory are read before environment
// overrides are applied; variables already set in the process win.
func Load() (*Config, error) {
	loadDotEnv()

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Values missing from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// loadDotEnv reads .env files without overriding variables that are already
// set. Missing files are not an error.
func loadDotEnv() {
	candidates := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", path, err)
		}
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# authshell configuration file\n")
	buf.WriteString("# Generated by authshell - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.API.BaseURL),
		})
	}
	if c.API.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "api.timeout_secs", Message: "must not be negative"})
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.CellWidthPx < 1 || c.UI.CellWidthPx > 64 {
		errs = append(errs, ValidationError{
			Field:   "ui.cell_width_px",
			Message: fmt.Sprintf("value %d out of range 1-64", c.UI.CellWidthPx),
		})
	}
	if !strings.HasPrefix(c.UI.StartPath, "/") {
		errs = append(errs, ValidationError{Field: "ui.start_path", Message: "must start with '/'"})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	if f := strings.ToLower(c.Log.Format); f != "console" && f != "json" {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be console or json", c.Log.Format),
		})
	}

	if c.Server.RatePerMinute < 0 {
		errs = append(errs, ValidationError{Field: "server.rate_per_minute", Message: "must not be negative"})
	}
	if c.Server.BcryptCost < 4 || c.Server.BcryptCost > 31 {
		errs = append(errs, ValidationError{
			Field:   "server.bcrypt_cost",
			Message: fmt.Sprintf("value %d out of range 4-31", c.Server.BcryptCost),
		})
	}
	if c.Server.TokenTTLMinutes <= 0 {
		errs = append(errs, ValidationError{Field: "server.token_ttl_minutes", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero-value fields from Default().
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.CellWidthPx == 0 {
		c.UI.CellWidthPx = defaults.UI.CellWidthPx
	}
	if c.UI.StartPath == "" {
		c.UI.StartPath = defaults.UI.StartPath
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.BcryptCost == 0 {
		c.Server.BcryptCost = defaults.Server.BcryptCost
	}
	if c.Server.TokenTTLMinutes == 0 {
		c.Server.TokenTTLMinutes = defaults.Server.TokenTTLMinutes
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - AUTHSHELL_API_URL: overrides api.base_url
//   - AUTHSHELL_API_TIMEOUT: overrides api.timeout_secs
//   - AUTHSHELL_LOCALE: overrides ui.locale
//   - AUTHSHELL_THEME: overrides ui.theme
//   - AUTHSHELL_ENFORCE_AUTH: "1" or "true" enables router.enforce_auth
//   - AUTHSHELL_LOG_LEVEL: overrides log.level
//   - AUTHSHELL_SERVER_ADDR: overrides server.addr
//   - AUTHSHELL_JWT_SECRET: overrides server.jwt_secret
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("AUTHSHELL_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("AUTHSHELL_API_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("AUTHSHELL_LOCALE"); v != "" {
		c.UI.Locale = v
	}
	if v := os.Getenv("AUTHSHELL_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("AUTHSHELL_ENFORCE_AUTH"); v != "" {
		c.Router.EnforceAuth = v == "1" || strings.ToLower(v) == "true"
	}
	if v := os.Getenv("AUTHSHELL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("AUTHSHELL_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("AUTHSHELL_JWT_SECRET"); v != "" {
		c.Server.JWTSecret = v
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// ErrNoConfigFile is returned by FindConfigFile when neither file exists.
var ErrNoConfigFile = errors.New("no config file")

// FindConfigFile returns the config file Load would read.
func FindConfigFile() (string, error) {
	for _, fn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := fn()
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNoConfigFile
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)
	return &clone
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config encode error: %v>", err)
	}
	return buf.String()
}
