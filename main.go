// chatterm - A terminal client for request/response chat backends.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/jeranaias/chatterm/internal/cli"
	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cmd, args := cli.Parse(argv)

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return 0
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return 0
	}

	cli.ConfigureColor(args.NoColor)

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	config.SetGlobal(cfg)

	logger, closeLog, err := newLogger(cmd, cfg, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := cli.NewEnv(cfg, logger)

	var handler func(context.Context, *cli.Env, cli.Args) error
	switch cmd {
	case cli.CmdTUI:
		handler = cli.HandleTUI
	case cli.CmdAsk:
		handler = cli.HandleAsk
	case cli.CmdChat:
		handler = cli.HandleChat
	case cli.CmdStatus:
		handler = cli.HandleStatus
	case cli.CmdServe:
		handler = cli.HandleServe
	case cli.CmdConfig:
		handler = cli.HandleConfig
	default:
		cli.PrintUsage(os.Stderr)
		return 2
	}

	if err := handler(ctx, env, args); err != nil {
		var silent *cli.SilentError
		if !errors.As(err, &silent) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(args cli.Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
	}
	if args.LogLevel != "" {
		cfg.Log.Level = args.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger picks the log destination for cmd. The TUI owns the terminal,
// so it logs to a file; everything else logs to stderr, quietly unless a
// level was asked for.
func newLogger(cmd cli.Command, cfg *config.Config, args cli.Args) (zerolog.Logger, func() error, error) {
	switch cmd {
	case cli.CmdTUI:
		logger, closeFn, err := logging.New(logging.FromConfig(cfg))
		if err != nil {
			return zerolog.Nop(), closeFn, err
		}
		return logger, closeFn, nil
	case cli.CmdServe:
		return logging.Stderr(cfg.Log.Level), func() error { return nil }, nil
	default:
		level := "warn"
		if args.LogLevel != "" {
			level = args.LogLevel
		}
		return logging.Stderr(level), func() error { return nil }, nil
	}
}
