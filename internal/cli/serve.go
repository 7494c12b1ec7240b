// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - Development backend command.
//
// Examples:
//
//	chatterm serve
//	chatterm serve --addr :9000
//	chatterm serve --responder ollama --model llama3.2
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/jeranaias/chatterm/internal/server"
)

// shutdownGrace bounds how long in-flight requests may finish on exit.
const shutdownGrace = 10 * time.Second

// serveRateLimit is the per-IP request budget of the dev backend.
const serveRateLimit = 120

// HandleServe runs the chat backend until ctx is cancelled.
func HandleServe(ctx context.Context, env *Env, args Args) error {
	if len(args.Extra) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, args.Extra[0])
	}

	cfg := env.Config.Clone()
	overrides := map[string]string{
		"server.addr":         args.Addr,
		"server.responder":    args.Responder,
		"server.ollama_url":   args.OllamaURL,
		"server.ollama_model": args.OllamaModel,
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := cfg.Set(key, value); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	responder, err := server.NewResponder(cfg.Server)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Responder:      responder,
		ReplyTimeout:   cfg.API.RequestTimeout.Std(),
		RateLimit:      serveRateLimit,
		RateWindow:     time.Minute,
		Logger:         env.Logger.With().Str("component", "server").Logger(),
	})

	if !args.Quiet {
		bold := color.New(color.Bold).SprintFunc()
		fmt.Fprintf(env.Stderr, "%s listening on http://%s (responder: %s)\n",
			bold("chatterm serve"), cfg.Server.Addr, srv.Responder().Name())
		fmt.Fprintln(env.Stderr, "Press Ctrl+C to stop.")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
