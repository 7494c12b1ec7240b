// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/transport"
)

// ErrNotConnected is returned by status when the backend is not healthy.
var ErrNotConnected = errors.New("backend not connected")

// ErrUsage marks an invalid invocation.
var ErrUsage = errors.New("usage error")

// Env is what a command handler runs against.
type Env struct {
	Config *config.Config
	Logger zerolog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewEnv returns an Env bound to the process's standard streams.
func NewEnv(cfg *config.Config, logger zerolog.Logger) *Env {
	return &Env{
		Config: cfg,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// NewBackendClient builds the chat backend client from configuration.
func NewBackendClient(cfg *config.Config) *transport.Client {
	tc := transport.DefaultConfig()
	tc.BaseURL = cfg.API.BaseURL
	tc.Timeout = cfg.API.RequestTimeout.Std()
	tc.UserAgent = "chatterm/" + Version
	return transport.NewClientWithConfig(tc)
}
