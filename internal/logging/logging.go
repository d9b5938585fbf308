// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the zerolog logger shared by authshell.
//
// The TUI owns stdout while it runs, so the shell logs to a file; the
// development backend and one-shot CLI commands log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	// Level is debug, info, warn or error (default info).
	Level string
	// Format is "console" or "json" (default console).
	Format string
	// NoColor disables ANSI colors in console output.
	NoColor bool
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) zerolog.Logger {
	if strings.ToLower(opts.Format) != "json" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    opts.NoColor,
		}
	}
	return zerolog.New(w).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
}

// NewFile opens (or creates) path in append mode and returns a logger on it
// together with the file so the caller can close it on exit.
func NewFile(path string, opts Options) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	opts.NoColor = true
	return New(f, opts), f, nil
}

// Init builds the process logger. An empty file logs to stderr; otherwise
// output goes to file. The returned closer is never nil.
func Init(level, format, file string) (zerolog.Logger, io.Closer, error) {
	opts := Options{Level: level, Format: format}
	if file == "" {
		return New(os.Stderr, opts), io.NopCloser(nil), nil
	}
	return NewFile(file, opts)
}

// ParseLevel maps a level name to a zerolog level. Unknown names map to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
