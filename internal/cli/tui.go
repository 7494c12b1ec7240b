// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen chat command.
package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/ui/chat"
)

// HandleTUI runs the Bubble Tea chat until the user quits. Without a
// terminal it falls back to the line-oriented chat.
func HandleTUI(ctx context.Context, env *Env, args Args) error {
	if !CanRunTUI() {
		env.Logger.Info().Msg("TUI_FALLBACK | no terminal, using line chat")
		return HandleChat(ctx, env, args)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := chat.Build(ctx, env.Config, NewBackendClient(env.Config), env.Logger)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	watchConfig(ctx, env, args, p)

	env.Logger.Info().Str("base_url", env.Config.API.BaseURL).Msg("TUI_START")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run chat: %w", err)
	}
	env.Logger.Info().Msg("TUI_EXIT")
	return nil
}

// watchConfig forwards config file changes into the running program.
// Command-line overrides are reapplied so a reload never undoes them.
func watchConfig(ctx context.Context, env *Env, args Args, p *tea.Program) {
	path := args.ConfigPath
	if path == "" {
		def, err := config.ConfigPathTOML()
		if err != nil {
			return
		}
		path = def
	}

	err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
		if err == nil {
			applyArgOverrides(cfg, args)
		}
		p.Send(chat.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		env.Logger.Warn().Err(err).Str("path", path).Msg("CONFIG_WATCH_FAILED")
	}
}

// applyArgOverrides copies global flag values onto cfg.
func applyArgOverrides(cfg *config.Config, args Args) {
	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
	}
	if args.LogLevel != "" {
		cfg.Log.Level = args.LogLevel
	}
}
