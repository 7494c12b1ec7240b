// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-oriented chat for plain terminals and pipes.
//
// Interactive commands:
//
//	/help         Show commands
//	/status       Check backend health
//	/history [n]  Print the conversation so far
//	/copy         Copy the last reply to the clipboard
//	/quit         Exit (also /exit, Ctrl+D)
//
// A line starting with // is sent as a message beginning with a single /.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/jeranaias/chatterm/internal/commands"
	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/conversation"
	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/status"
	"github.com/jeranaias/chatterm/internal/util"
)

// historyFileName is the liner history file inside the config directory.
const historyFileName = "chat_history"

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

var (
	youLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	botLabel   = color.New(color.FgCyan, color.Bold).SprintFunc()
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText    = color.New(color.Faint).SprintFunc()
)

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader reads one line of user input.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// linerReader provides history and line editing on a terminal.
type linerReader struct {
	line        *liner.State
	historyFile string
}

func newLinerReader(reg *commands.Registry) *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetCompleter(reg.Complete)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	r := &linerReader{line: line, historyFile: filepath.Join(dir, historyFileName)}

	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

func (r *linerReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with owner-only permissions and restores the terminal.
func (r *linerReader) Close() error {
	var buf bytes.Buffer
	if _, err := r.line.WriteHistory(&buf); err == nil {
		_ = util.WriteFileAtomic(r.historyFile, buf.Bytes(), 0600, 0700)
	}
	return r.line.Close()
}

// scannerReader reads lines from a non-terminal stream.
type scannerReader struct {
	scanner *bufio.Scanner
}

func newScannerReader(in io.Reader) *scannerReader {
	s := bufio.NewScanner(in)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &scannerReader{scanner: s}
}

func (r *scannerReader) ReadLine(string) (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scannerReader) Close() error { return nil }

// =============================================================================
// SESSION
// =============================================================================

// replSession is one line-oriented conversation.
type replSession struct {
	env      *Env
	ctrl     *conversation.Controller
	monitor  *status.Monitor
	registry *commands.Registry
	parser   *commands.Parser
	baseURL  string
	out      io.Writer
}

// HandleChat runs the line-oriented chat until EOF or /quit.
func HandleChat(ctx context.Context, env *Env, args Args) error {
	s := newREPLSession(env)

	var reader lineReader
	if IsTTY() {
		reader = newLinerReader(s.registry)
	} else {
		reader = newScannerReader(env.Stdin)
	}
	defer reader.Close()

	return s.run(ctx, args, reader)
}

func runREPL(ctx context.Context, env *Env, args Args, reader lineReader) error {
	return newREPLSession(env).run(ctx, args, reader)
}

func newREPLSession(env *Env) *replSession {
	client := NewBackendClient(env.Config)
	notifier := conversation.NotifierFunc(func(detail string) {
		fmt.Fprintf(env.Stderr, "%s %s\n", errorLabel("Error:"), detail)
	})
	s := &replSession{
		env:      env,
		ctrl:     conversation.NewController(conversation.NewState(), client, notifier, conversation.WithLogger(env.Logger)),
		monitor:  status.NewMonitor(client, env.Config.API.HealthInterval.Std()),
		registry: commands.NewRegistry(),
		baseURL:  client.BaseURL(),
		out:      env.Stdout,
	}
	s.registerCommands()
	s.parser = commands.NewParser(s.registry)
	return s
}

func (s *replSession) run(ctx context.Context, args Args, reader lineReader) error {
	env := s.env
	out := s.out

	if !args.Quiet {
		fmt.Fprintf(out, "%s %s\n", botLabel("chatterm"), dimText(s.baseURL))
		fmt.Fprintln(out, dimText("Type a message and press Enter. /help for commands, /quit to exit."))
		s.printStatus(ctx)
		fmt.Fprintln(out)
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := reader.ReadLine("You: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		res := s.parser.Parse(input)
		if res.IsCommand {
			quit, err := res.Execute(ctx)
			if err != nil {
				fmt.Fprintf(env.Stderr, "%s %v\n", errorLabel("Error:"), err)
			}
			if quit {
				return nil
			}
			continue
		}

		if n := util.RuneLen(res.RawInput); n > env.Config.UI.MaxInput {
			fmt.Fprintf(env.Stderr, "%s message is %d characters; the limit is %d\n", errorLabel("Error:"), n, env.Config.UI.MaxInput)
			continue
		}

		outcome, accepted := s.ctrl.Submit(ctx, res.RawInput)
		if !accepted {
			continue
		}

		reply, _ := s.ctrl.State().History.LastFrom(model.SenderBot)
		fmt.Fprintf(out, "%s %s\n", botLabel("Assistant:"), reply.Content)
		if args.Verbose {
			fmt.Fprintln(out, dimText(fmt.Sprintf("(%s)", outcome.Elapsed.Round(time.Millisecond))))
		}
		fmt.Fprintln(out)
	}
}

// registerCommands installs the slash commands of the line chat.
func (s *replSession) registerCommands() {
	s.registry.Register(&commands.Command{
		Name:        "/quit",
		Aliases:     []string{"/exit", "/q"},
		Description: "Exit",
		MaxArgs:     -1,
		Handler: func(context.Context, []string) (bool, error) {
			return true, nil
		},
	})
	s.registry.Register(&commands.Command{
		Name:        "/status",
		Aliases:     []string{"/s"},
		Description: "Check backend health",
		Handler: func(ctx context.Context, _ []string) (bool, error) {
			s.printStatus(ctx)
			return false, nil
		},
	})
	s.registry.Register(&commands.Command{
		Name:        "/history",
		Aliases:     []string{"/h"},
		Description: "Show the conversation, or its last n messages",
		Usage:       "/history [n]",
		MaxArgs:     1,
		Handler: func(_ context.Context, args []string) (bool, error) {
			limit := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return false, fmt.Errorf("/history: %q is not a positive number", args[0])
				}
				limit = n
			}
			s.printHistory(limit)
			return false, nil
		},
	})
	s.registry.Register(&commands.Command{
		Name:        "/copy",
		Aliases:     []string{"/c"},
		Description: "Copy the last reply to the clipboard",
		Handler: func(context.Context, []string) (bool, error) {
			reply, ok := s.ctrl.State().History.LastFrom(model.SenderBot)
			if !ok {
				return false, errors.New("nothing to copy yet")
			}
			if err := copyToClipboard(reply.Content); err != nil {
				return false, fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Fprintln(s.out, dimText("Copied last reply."))
			return false, nil
		},
	})
	s.registry.Register(&commands.Command{
		Name:        "/help",
		Aliases:     []string{"/?"},
		Description: "Show commands",
		Handler: func(context.Context, []string) (bool, error) {
			s.registry.WriteHelp(s.out)
			return false, nil
		},
	})
}

func (s *replSession) printStatus(ctx context.Context) {
	r := s.monitor.Check(ctx)
	paint := color.New(color.FgGreen).SprintFunc()
	if r.Connectivity != status.Connected {
		paint = color.New(color.FgRed).SprintFunc()
	}
	fmt.Fprintf(s.out, "%s\n", paint(r.Connectivity.Icon()+" "+r.Label))
}

// printHistory prints the conversation; limit > 0 keeps only the tail.
func (s *replSession) printHistory(limit int) {
	msgs := s.ctrl.State().History.All()
	if len(msgs) == 0 {
		fmt.Fprintln(s.out, dimText("No messages yet."))
		return
	}
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[len(msgs)-limit:]
	}
	for _, m := range msgs {
		label := botLabel(m.Sender.DisplayName() + ":")
		if m.Sender.IsUser() {
			label = youLabel(m.Sender.DisplayName() + ":")
		}
		fmt.Fprintf(s.out, "%s %s %s\n", dimText(m.TimeOfDay()), label, m.Content)
	}
}
