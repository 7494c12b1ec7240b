// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation implements the request state machine of the chat
// client.
//
// A Controller owns the processing gate. At most one exchange is in flight;
// submissions made while one is pending are dropped, not queued. An accepted
// submission moves through three steps:
//
//  1. Begin: validate, lock, append the user message.
//  2. Run: the transport call. This is the only step that blocks, and the
//     TUI runs it inside a tea.Cmd.
//  3. Complete: append the reply (or FallbackReply), notify on failure,
//     unlock.
//
// Submit chains all three for callers without an event loop.
package conversation
