// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ErrPromptAborted is returned when the user cancels a prompt.
var ErrPromptAborted = errors.New("prompt aborted")

// Prompter reads answers to interactive questions.
type Prompter interface {
	// Prompt reads a line of visible input.
	Prompt(label string) (string, error)
	// Password reads a line without echoing it.
	Password(label string) (string, error)
	Close() error
}

// newPrompter returns a line editor on a terminal and a plain line reader
// for piped input.
func newPrompter(in io.Reader, out io.Writer) Prompter {
	if isTerminalReader(in) {
		return newLinerPrompter()
	}
	return newLinePrompter(in, out)
}

// =============================================================================
// TERMINAL PROMPTER
// =============================================================================

type linerPrompter struct {
	line *liner.State
}

func newLinerPrompter() *linerPrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &linerPrompter{line: line}
}

func (p *linerPrompter) Prompt(label string) (string, error) {
	answer, err := p.line.Prompt(label + ": ")
	if err != nil {
		return "", promptErr(err)
	}
	return strings.TrimSpace(answer), nil
}

func (p *linerPrompter) Password(label string) (string, error) {
	answer, err := p.line.PasswordPrompt(label + ": ")
	if err != nil {
		return "", promptErr(err)
	}
	return answer, nil
}

func (p *linerPrompter) Close() error {
	return p.line.Close()
}

func promptErr(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return ErrPromptAborted
	}
	return err
}

// =============================================================================
// PIPED PROMPTER
// =============================================================================

type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) Prompt(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrPromptAborted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password reads like Prompt; piped input is never echoed by a terminal.
func (p *linePrompter) Password(label string) (string, error) {
	answer, err := p.Prompt(label)
	fmt.Fprintln(p.out)
	return answer, err
}

func (p *linePrompter) Close() error { return nil }
