// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the structured logger used across chatterm.
//
// The TUI owns stdout, so interactive commands log to a file under the
// config directory. The development server logs to stderr. Messages use
// upper-snake event names (CHAT_SEND, HEALTH_CHECK, SERVER_START) so the
// file stays greppable.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/chatterm/internal/config"
)

// DefaultFileName is the log file created inside the config directory.
const DefaultFileName = "chatterm.log"

// Options selects where and how much to log.
type Options struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string

	// File is the destination path. Ignored when Writer is set.
	File string

	// Writer overrides File when non-nil.
	Writer io.Writer

	// Console renders human-readable lines instead of JSON.
	Console bool
}

// FromConfig derives file-logging options from the configuration.
func FromConfig(cfg *config.Config) Options {
	return Options{Level: cfg.Log.Level, File: cfg.Log.File}
}

// New creates a logger. The returned close function releases the log file
// and is safe to call when no file was opened.
func New(opts Options) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	out := opts.Writer
	closer := noop
	if out == nil {
		path, err := resolvePath(opts.File)
		if err != nil {
			return zerolog.Nop(), noop, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f.Close
	}

	if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: opts.Writer == nil}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

// Stderr creates a console logger writing to stderr.
func Stderr(level string) zerolog.Logger {
	logger, _, _ := New(Options{Level: level, Writer: os.Stderr, Console: true})
	return logger
}

func resolvePath(file string) (string, error) {
	if file != "" {
		return file, nil
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultFileName), nil
}
