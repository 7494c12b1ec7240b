// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
//
// # Key Types
//
//   - Message: Single immutable turn with sender, content, and timestamp
//   - Sender: Who produced a message (user or bot)
//   - Store: Append-only, ordered log of messages for one session
//
// # Usage
//
//	store := model.NewStore()
//	store.Append(model.NewUserMessage("hello"))
//	for _, msg := range store.All() {
//	    fmt.Printf("[%s] %s: %s\n", msg.TimeOfDay(), msg.Sender.DisplayName(), msg.Content)
//	}
//
// The store has no delete or edit API. History lives only as long as the
// process does.
package model
