// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot message command.
//
// Examples:
//
//	chatterm ask "What is the capital of France?"
//	chatterm ask --json "Summarize this"
//	echo "hello" | chatterm ask
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/chatterm/internal/conversation"
	"github.com/jeranaias/chatterm/internal/transport"
	"github.com/jeranaias/chatterm/internal/util"
)

// askResult is the data payload of ask --json.
type askResult struct {
	Message  string `json:"message"`
	Response string `json:"response,omitempty"`
}

// HandleAsk sends one message and prints the reply. With no query argument
// the message is read from stdin.
func HandleAsk(ctx context.Context, env *Env, args Args) error {
	query := args.Query
	if query == "" && !IsTTY() {
		data, err := io.ReadAll(bufio.NewReader(env.Stdin))
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		query = string(data)
	}

	message, ok := conversation.Normalize(query)
	if !ok {
		return fmt.Errorf("%w: ask needs a message", ErrUsage)
	}
	if n := util.RuneLen(message); n > env.Config.UI.MaxInput {
		return fmt.Errorf("message is %d characters; the limit is %d", n, env.Config.UI.MaxInput)
	}

	client := NewBackendClient(env.Config)
	env.Logger.Debug().Str("base_url", client.BaseURL()).Int("chars", util.RuneLen(message)).Msg("ASK_SEND")

	var detail string
	ctrl := conversation.NewController(conversation.NewState(), client,
		conversation.NotifierFunc(func(d string) { detail = d }),
		conversation.WithLogger(env.Logger))

	out, _ := ctrl.Submit(ctx, message)
	reply := out.Reply
	if args.JSON {
		res := askResult{Message: message, Response: reply}
		if out.Failed() {
			return writeJSONError(env, "ask", res, out.Err)
		}
		return NewJSONResponse("ask", res).Write(env.Stdout)
	}
	if out.Failed() {
		return errors.New(detail)
	}

	if args.Raw || !env.Config.UI.Markdown || !IsStdoutTTY() {
		fmt.Fprintln(env.Stdout, reply)
		return nil
	}
	fmt.Fprintln(env.Stdout, renderMarkdown(reply, GetTerminalWidth()))
	return nil
}

// renderMarkdown renders content for the terminal, falling back to the
// raw text when glamour fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// writeJSONError prints a failed JSON envelope and returns a silent error
// so the exit code is still non-zero.
func writeJSONError(env *Env, command string, data any, err error) error {
	if werr := NewJSONErrorResponse(command, data, transport.DetailOf(err)).Write(env.Stdout); werr != nil {
		return werr
	}
	return &SilentError{Err: err}
}

// SilentError carries a failure that has already been reported to the user.
type SilentError struct {
	Err error
}

func (e *SilentError) Error() string { return e.Err.Error() }
func (e *SilentError) Unwrap() error { return e.Err }
