// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jeranaias/authshell/internal/auth"
	"github.com/jeranaias/authshell/internal/forms"
	"github.com/jeranaias/authshell/internal/logging"
)

type registerOptions struct {
	email  string
	name   string
	apiURL string
}

// NewRegisterCmd creates the register command.
func NewRegisterCmd(opts *globalOptions) *cobra.Command {
	ro := &registerOptions{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account on the configured auth backend.

Missing values are prompted for. The password is never echoed and is read
twice for confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, opts, ro)
		},
	}
	cmd.Flags().StringVarP(&ro.email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&ro.name, "name", "n", "", "display name")
	cmd.Flags().StringVar(&ro.apiURL, "api-url", "", "override api.base_url")
	return cmd
}

func runRegister(cmd *cobra.Command, opts *globalOptions, ro *registerOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if ro.apiURL != "" {
		cfg.API.BaseURL = ro.apiURL
	}

	logger := logging.New(cmd.ErrOrStderr(), logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	sess, err := newSession(cfg, logger)
	if err != nil {
		return NewCommandError("register", "start", "could not create API client", err)
	}
	tr := sess.tr

	out := cmd.OutOrStdout()
	prompter := newPrompter(cmd.InOrStdin(), out)
	defer prompter.Close()

	form, err := promptSignUp(prompter, tr, ro)
	if err != nil {
		if errors.Is(err, ErrPromptAborted) {
			return &CommandError{Command: "register", Action: "prompt", Reason: "aborted", Code: ExitUsageError}
		}
		return NewCommandError("register", "prompt", "could not read input", err)
	}

	if problems := forms.Check(form); problems != nil {
		printFieldErrors(out, problems.Localize(tr))
		return &CommandError{
			Command: "register",
			Action:  "validate",
			Reason:  "invalid input",
			Code:    ExitUsageError,
		}
	}

	result := sess.store.Register(cmd.Context(), form.Email, form.Password)
	if !result.Success {
		code := ExitAuthError
		if result.Error == tr.T(auth.MsgNetworkError) {
			code = ExitNetworkError
		}
		return &CommandError{
			Command: "register",
			Action:  "submit",
			Reason:  result.Error,
			Code:    code,
		}
	}

	fmt.Fprintln(out, tr.T("signup.success"))
	return nil
}

// promptSignUp asks for every value not supplied by flags.
func promptSignUp(p Prompter, tr forms.Translator, ro *registerOptions) (forms.SignUp, error) {
	form := forms.SignUp{Name: ro.name, Email: ro.email}
	var err error

	if form.Name == "" {
		if form.Name, err = p.Prompt(tr.T("signup.name_label")); err != nil {
			return form, err
		}
	}
	if form.Email == "" {
		if form.Email, err = p.Prompt(tr.T("signup.email_label")); err != nil {
			return form, err
		}
	}
	if form.Password, err = p.Password(tr.T("signup.password_label")); err != nil {
		return form, err
	}
	if form.ConfirmPassword, err = p.Password(tr.T("signup.confirm_label")); err != nil {
		return form, err
	}
	return form, nil
}

func printFieldErrors(w io.Writer, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if field == "" {
			fmt.Fprintf(w, "  %s\n", errs[field])
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", field, errs[field])
	}
}
