// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and command handlers for chatterm.
//
// # Commands
//
//   - tui (default): full-screen chat
//   - ask: send one message and print the reply
//   - chat: line-oriented chat for plain terminals and pipes
//   - status: probe the backend health endpoint
//   - serve: run the development backend
//   - config: show, locate, initialize or edit the config file
//   - version, help
//
// Handlers return errors; main prints them and sets the exit code.
package cli
