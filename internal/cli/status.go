// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend health command.
//
// Examples:
//
//	chatterm status
//	chatterm status --json
//
// Exits 1 when the backend is not connected.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/jeranaias/chatterm/internal/status"
	"github.com/jeranaias/chatterm/internal/transport"
)

// statusResult is the data payload of status --json.
type statusResult struct {
	BaseURL   string `json:"base_url"`
	State     string `json:"state"`
	Label     string `json:"label"`
	Detail    string `json:"detail,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
	CheckedAt string `json:"checked_at"`
}

// HandleStatus runs one health check and reports it.
func HandleStatus(ctx context.Context, env *Env, args Args) error {
	client := NewBackendClient(env.Config)
	monitor := status.NewMonitor(client, env.Config.API.HealthInterval.Std())

	start := time.Now()
	r := monitor.Check(ctx)
	latency := time.Since(start)

	res := statusResult{
		BaseURL:   client.BaseURL(),
		State:     r.Connectivity.String(),
		Label:     r.Label,
		LatencyMS: latency.Milliseconds(),
		CheckedAt: r.CheckedAt.UTC().Format(time.RFC3339),
	}
	if r.Err != nil {
		res.Detail = transport.DetailOf(r.Err)
	}

	env.Logger.Debug().
		Str("state", res.State).
		Dur("latency", latency).
		Err(r.Err).
		Msg("STATUS_CHECK")

	connected := r.Connectivity == status.Connected

	if args.JSON {
		var err error
		if connected {
			err = NewJSONResponse("status", res).Write(env.Stdout)
		} else {
			err = NewJSONErrorResponse("status", res, res.Label).Write(env.Stdout)
		}
		if err != nil {
			return err
		}
		if !connected {
			return &SilentError{Err: ErrNotConnected}
		}
		return nil
	}

	paint := color.New(color.FgGreen, color.Bold).SprintFunc()
	if !connected {
		paint = color.New(color.FgRed, color.Bold).SprintFunc()
	}

	fmt.Fprintf(env.Stdout, "%s %s\n", paint(r.Connectivity.Icon()), paint(r.Label))
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "  Backend:  %s\n", res.BaseURL)
		fmt.Fprintf(env.Stdout, "  Latency:  %s\n", latency.Round(time.Millisecond))
		if res.Detail != "" {
			fmt.Fprintf(env.Stdout, "  Detail:   %s\n", res.Detail)
		}
	}

	if !connected {
		return &SilentError{Err: ErrNotConnected}
	}
	return nil
}
