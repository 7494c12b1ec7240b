// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line parsing for chatterm.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdStatus
	CmdServe
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdStatus:
		return "status"
	case CmdServe:
		return "serve"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	APIURL     string
	ConfigPath string
	LogLevel   string
	Verbose    bool
	Quiet      bool
	JSON       bool
	NoColor    bool

	// ask
	Query string
	Raw   bool

	// serve
	Addr        string
	Responder   string
	OllamaURL   string
	OllamaModel string

	// config
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Force      bool

	// Unknown arguments, reported by the handler
	Extra []string
}

const usageText = `chatterm - terminal client for a request/response chat backend

USAGE:
  chatterm [global flags] [command] [args]

COMMANDS:
  tui                   Full-screen chat (default)
  ask <message>         Send one message and print the reply
  chat                  Line-oriented chat (used automatically without a TTY)
  status                Check backend health (exit 1 when not connected)
  serve                 Run the development backend
  config [show|path|init|keys|set <key> <value>]
                        Manage ~/.chatterm/config.toml
  version               Print version information
  help                  Show this help

GLOBAL FLAGS:
  --api-url URL         Backend base URL (default http://localhost:8000)
  --config PATH         Config file path
  --log-level LEVEL     debug, info, warn, error
  -v, --verbose         Shorthand for --log-level debug
  -q, --quiet           Only print results
  --json                Machine-readable output (ask, status)
  --no-color            Disable colored output

ASK FLAGS:
  --raw                 Print the reply without markdown rendering

SERVE FLAGS:
  --addr ADDR           Listen address (default 127.0.0.1:8000)
  --responder NAME      echo or ollama (default echo)
  --ollama-url URL      Ollama address for the ollama responder
  --model NAME          Ollama model for the ollama responder

CONFIG:
  config init --force   Overwrite an existing config file

ENVIRONMENT:
  CHATTERM_API_URL, CHATTERM_LOG_LEVEL, CHATTERM_MAX_INPUT and the other
  CHATTERM_* variables override the config file. A .env file in the working
  directory is loaded first.

VERSION: %s
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "chatterm version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses argv (without the program name) into a command and args.
func Parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	rest := remaining[1:]

	switch cmd {
	case "tui":
		args.Extra = rest
		return CmdTUI, args

	case "ask":
		parseAskArgs(&args, rest)
		return CmdAsk, args

	case "chat":
		args.Extra = rest
		return CmdChat, args

	case "status", "s":
		args.Extra = rest
		return CmdStatus, args

	case "serve":
		parseServeArgs(&args, rest)
		return CmdServe, args

	case "config":
		parseConfigArgs(&args, rest)
		return CmdConfig, args

	case "version":
		return CmdVersion, args

	case "help":
		return CmdHelp, args

	default:
		// Unknown word: treat the whole line as a one-shot message.
		parseAskArgs(&args, remaining)
		return CmdAsk, args
	}
}

// parseGlobalFlags extracts global flags and returns the rest in order.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	takeValue := func(i *int, inline string, hasInline bool) string {
		if hasInline {
			return inline
		}
		if *i+1 < len(argv) {
			*i++
			return argv[*i]
		}
		return ""
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		name, inline, hasInline := strings.Cut(arg, "=")

		switch name {
		case "--api-url":
			args.APIURL = takeValue(&i, inline, hasInline)
		case "--config":
			args.ConfigPath = takeValue(&i, inline, hasInline)
		case "--log-level":
			args.LogLevel = takeValue(&i, inline, hasInline)
		case "-v", "--verbose":
			args.Verbose = true
		case "-q", "--quiet":
			args.Quiet = true
		case "--json":
			args.JSON = true
		case "--no-color":
			args.NoColor = true
		case "-h", "--help":
			remaining = append(remaining, "help")
		case "--version":
			remaining = append(remaining, "version")
		default:
			remaining = append(remaining, arg)
		}
	}

	if args.Verbose && args.LogLevel == "" {
		args.LogLevel = "debug"
	}
	return remaining, args
}

func parseAskArgs(args *Args, rest []string) {
	p := NewArgParser(rest, "raw", "r")
	args.Raw = p.BoolFlag("raw", "r")
	args.Query = strings.Join(p.PositionalFrom(0), " ")
}

func parseServeArgs(args *Args, rest []string) {
	p := NewArgParser(rest)
	args.Addr = p.Flag("addr")
	args.Responder = p.Flag("responder")
	args.OllamaURL = p.Flag("ollama-url")
	args.OllamaModel = p.Flag("model", "m")
	args.Extra = p.PositionalFrom(0)
}

func parseConfigArgs(args *Args, rest []string) {
	p := NewArgParser(rest, "force", "f")
	args.Subcommand = p.Subcommand()
	if args.Subcommand == "" {
		args.Subcommand = "show"
	}
	args.ConfigKey = p.Positional(1)
	args.ConfigVal = strings.Join(p.PositionalFrom(2), " ")
	args.Force = p.BoolFlag("force", "f")
}
