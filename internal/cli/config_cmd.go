// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/authshell/internal/config"
)

const redacted = "<redacted>"

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigPathCmd(opts))
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			shown := cfg.Clone()
			if shown.Server.JWTSecret != "" {
				shown.Server.JWTSecret = redacted
			}
			fmt.Fprint(cmd.OutOrStdout(), shown.String())
			return nil
		},
	}
}

func newConfigPathCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file := opts.configFile(); file != "" {
				fmt.Fprintln(cmd.OutOrStdout(), file)
				return nil
			}
			path, err := config.ConfigPathTOML()
			if err != nil {
				return NewCommandError("config", "path", "could not resolve config directory", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (not created)\n", path)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPathTOML()
			if err != nil {
				return NewCommandError("config", "init", "could not resolve config directory", err)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return &CommandError{
					Command: "config",
					Action:  "init",
					Reason:  fmt.Sprintf("%s already exists (use --force to overwrite)", path),
					Code:    ExitConfigError,
				}
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return NewCommandError("config", "init", "could not inspect config file", err)
			}
			if err := config.EnsureConfigDir(); err != nil {
				return NewCommandError("config", "init", "could not create config directory", err)
			}
			if err := config.SaveTOML(config.Default(), path); err != nil {
				return NewCommandError("config", "init", "could not write config file", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}
