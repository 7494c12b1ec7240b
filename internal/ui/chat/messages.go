// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/conversation"
	"github.com/jeranaias/chatterm/internal/status"
)

// HealthResultMsg carries the result of one health check.
type HealthResultMsg struct {
	Result status.Result
	Manual bool
}

// HealthTickMsg fires when the next scheduled health check is due.
// Ticks from a superseded schedule carry an old generation and are dropped.
type HealthTickMsg struct {
	Gen int
}

// SendResultMsg carries the outcome of a send started from Update.
type SendResultMsg struct {
	Outcome conversation.Outcome
}

// ConfigReloadedMsg is delivered by the config file watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// ClipboardResultMsg reports the result of a copy request.
type ClipboardResultMsg struct {
	Err error
}
