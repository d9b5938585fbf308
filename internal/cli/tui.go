// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/authshell/internal/api"
	"github.com/jeranaias/authshell/internal/auth"
	"github.com/jeranaias/authshell/internal/config"
	"github.com/jeranaias/authshell/internal/i18n"
	"github.com/jeranaias/authshell/internal/layout"
	"github.com/jeranaias/authshell/internal/logging"
	"github.com/jeranaias/authshell/internal/router"
	"github.com/jeranaias/authshell/internal/storage"
	"github.com/jeranaias/authshell/internal/ui/shell"
	"github.com/jeranaias/authshell/internal/ui/styles"
)

// NewTUICmd creates the tui command.
func NewTUICmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal shell (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	addTUIFlags(cmd, opts)
	return cmd
}

func addTUIFlags(cmd *cobra.Command, opts *globalOptions) {
	cmd.Flags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep preferences in memory only")
}

// openPreferences returns the sidebar preference store and its closer.
func openPreferences(cfg *config.Config, ephemeral bool) (layout.Preferences, io.Closer, error) {
	if ephemeral {
		return storage.NewMemoryStore(), io.NopCloser(nil), nil
	}
	path, err := cfg.PreferencesPath()
	if err != nil {
		return nil, nil, err
	}
	prefs, err := storage.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return prefs, prefs, nil
}

// session bundles the client-side collaborators shared by the shell and the
// register command.
type session struct {
	cfg    *config.Config
	tr     *i18n.Active
	client *api.Client
	store  *auth.Store
}

func newSession(cfg *config.Config, logger zerolog.Logger) (*session, error) {
	client, err := api.NewClient(api.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
	})
	if err != nil {
		return nil, err
	}

	l, err := i18n.New(i18n.DetectLocale(cfg.UI.Locale))
	if err != nil {
		logger.Warn().Err(err).Str("locale", cfg.UI.Locale).Msg("LOCALE_FALLBACK")
		l = i18n.MustNew("")
	}
	tr := i18n.NewActive(l)

	return &session{
		cfg:    cfg,
		tr:     tr,
		client: client,
		store:  auth.NewStore(client, auth.WithLogger(logger), auth.WithLocalizer(tr)),
	}, nil
}

func runTUI(cmd *cobra.Command, opts *globalOptions) error {
	if !IsTTY() || !IsStdoutTTY() {
		return &CommandError{
			Command: "tui",
			Action:  "start",
			Reason:  "a terminal is required (use 'authshell register' for scripted sign-up)",
			Code:    ExitUsageError,
		}
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return NewCommandError("tui", "start", "could not resolve log path", err)
	}
	logger, logCloser, err := logging.Init(cfg.Log.Level, cfg.Log.Format, logPath)
	if err != nil {
		return NewCommandError("tui", "start", "could not open log file", err)
	}
	defer logCloser.Close()

	prefs, prefsCloser, err := openPreferences(cfg, opts.ephemeral)
	if err != nil {
		return NewCommandError("tui", "start", "could not open preferences", err)
	}
	defer closeQuietly(prefsCloser, logger)

	sess, err := newSession(cfg, logger)
	if err != nil {
		return NewCommandError("tui", "start", "could not create API client", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	model := shell.New(shell.Options{
		Store:       sess.store,
		Layout:      layout.NewSidebar(prefs, layout.WithLogger(logger)),
		Localizer:   sess.tr,
		Theme:       styles.NewTheme(cfg.UI.Theme),
		Policy:      router.Policy{EnforceAuth: cfg.Router.EnforceAuth},
		CellWidthPx: cfg.UI.CellWidthPx,
		StartPath:   cfg.UI.StartPath,
		Logger:      logger,
		Context:     ctx,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if file := opts.configFile(); file != "" {
		w, err := config.NewWatcher(file, logger, func(next *config.Config, err error) {
			if err != nil {
				logger.Warn().Err(err).Str("path", file).Msg("CONFIG_RELOAD_FAILED")
				return
			}
			p.Send(shell.ConfigReloadedMsg{Config: next})
		})
		if err != nil {
			logger.Warn().Err(err).Msg("CONFIG_WATCH_DISABLED")
		} else {
			w.Start()
			defer closeQuietly(w, logger)
		}
	}

	logger.Info().
		Str("version", Version).
		Str("api", sess.client.BaseURL()).
		Bool("enforce_auth", cfg.Router.EnforceAuth).
		Msg("TUI_START")

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("shell exited: %w", err)
	}
	logger.Info().Msg("TUI_EXIT")
	return nil
}

func closeQuietly(c io.Closer, logger zerolog.Logger) {
	if err := c.Close(); err != nil {
		logger.Debug().Err(err).Msg("CLOSE_FAILED")
	}
}
