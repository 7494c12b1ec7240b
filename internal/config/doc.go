// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatterm.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Backend address, request timeout, health interval
//   - UIConfig: Input limit, markdown, notifications
//   - ServerConfig: Settings for the bundled development backend
//
// # Configuration Precedence
//
// Configuration is loaded from (highest precedence first):
//   - Command-line flags (applied by the caller)
//   - Environment variables (CHATTERM_*), including those from ./.env
//   - ~/.chatterm/config.toml
//   - Built-in defaults
//
// # Usage
//
//	if err := config.LoadDotEnv(); err != nil {
//	    log.Printf("warning: %v", err)
//	}
//	cfg := config.Global()
//	client := transport.NewClientWithConfig(&transport.ClientConfig{
//	    BaseURL: cfg.API.BaseURL,
//	    Timeout: cfg.API.RequestTimeout.Std(),
//	})
//
// Watch reloads the file on change so a running TUI can pick up a new
// backend address without restarting.
package config
