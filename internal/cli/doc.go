// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the authshell command tree.
//
// Running authshell without a subcommand starts the terminal shell. The
// other commands are:
//
//	authshell tui                  Start the terminal shell
//	authshell register [--email]   Create an account from the command line
//	authshell serve [--addr]       Run the development auth backend
//	authshell config show|path|init
//	authshell version
//
// Every command returns its error; main maps it to an exit code with
// ExitCode.
package cli
