// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the chatterm TUI.
//
// The model owns no conversation logic. Submissions go through a
// conversation.Controller in three steps so the UI never blocks:
//
//	ex, ok := ctrl.Begin(draft)      // Update: gate, append user message
//	out := ctrl.Run(ctx, ex)         // tea.Cmd: HTTP round trip
//	ctrl.Complete(out)               // Update: append reply or fallback
//
// Health checks run the same way: a tea.Cmd calls status.Monitor.Check and
// the result is applied to the status.Indicator from Update. The indicator
// discards health results while a send is in flight.
package chat
