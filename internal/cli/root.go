// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/authshell/internal/config"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	// ephemeral keeps preferences in memory for the tui.
	ephemeral bool
}

// loadConfig reads --config when given, otherwise the default config files,
// and applies --log-level on top.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &CommandError{
			Command: "config",
			Action:  "load",
			Reason:  "invalid configuration",
			Code:    ExitConfigError,
			Err:     err,
		}
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

// configFile returns the file to watch for changes, or "" when the defaults
// are in use.
func (o *globalOptions) configFile() string {
	if o.configPath != "" {
		return o.configPath
	}
	path, err := config.FindConfigFile()
	if err != nil {
		return ""
	}
	return path
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "authshell",
		Short: "authshell - terminal client for session-based auth backends",
		Long: `authshell is a terminal application shell with sign-in, sign-up and
password recovery screens backed by a cookie-session auth API.

Run without a subcommand to start the shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	addTUIFlags(rootCmd, opts)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default $AUTHSHELL_HOME/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(NewTUICmd(opts))
	rootCmd.AddCommand(NewRegisterCmd(opts))
	rootCmd.AddCommand(NewServeCmd(opts))
	rootCmd.AddCommand(NewConfigCmd(opts))
	rootCmd.AddCommand(NewVersionCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
