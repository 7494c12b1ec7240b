// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "sync"

// Store is the append-only message log for one session.
//
// The Store is safe for concurrent use, although in the TUI all writes
// happen on the update loop.
type Store struct {
	mu       sync.RWMutex
	messages []Message
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{messages: make([]Message, 0, 32)}
}

// Append adds a message to the end of the log.
func (s *Store) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// All returns the messages in log order.
// The returned slice is a copy; changing it does not affect the store.
func (s *Store) All() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// IsEmpty returns true if nothing has been appended yet.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// LastFrom returns the most recent message from the given sender.
func (s *Store) LastFrom(sender Sender) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Sender == sender {
			return s.messages[i], true
		}
	}
	return Message{}, false
}
