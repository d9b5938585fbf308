// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/authshell/internal/logging"
	"github.com/jeranaias/authshell/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd(opts *globalOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development auth backend",
		Long: `Run an in-memory auth backend exposing /api/auth/register, /login,
/me and /logout. Accounts are lost when the process exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger := logging.New(os.Stderr, logging.Options{
				Level:   cfg.Log.Level,
				Format:  cfg.Log.Format,
				NoColor: !IsStdoutTTY(),
			})
			srv, err := server.New(server.OptionsFromConfig(cfg.Server, logger))
			if err != nil {
				return NewCommandError("serve", "start", "could not create server", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Debug().Str("addr", srv.Addr()).Str("prefix", server.APIPrefix).Msg("SERVE_COMMAND")
			if err := srv.ListenAndServe(ctx); err != nil {
				return NewCommandError("serve", "listen", "server stopped", err)
			}
			logger.Info().Msg("SERVER_STOPPED")
			return nil
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default server.addr)")
	return cmd
}
