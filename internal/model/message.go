// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/chatterm/internal/util"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// IsUser reports whether the message came from the local user.
func (s Sender) IsUser() bool {
	return s == SenderUser
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// TimeOfDayLayout is the layout used when rendering message times.
const TimeOfDayLayout = "15:04"

// Message is a single turn in the conversation.
// Messages are values; once appended to a Store they are never modified.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message stamped with the current time.
func NewMessage(sender Sender, content string) Message {
	return NewMessageAt(sender, content, time.Now())
}

// NewMessageAt creates a message with an explicit timestamp.
func NewMessageAt(sender Sender, content string, ts time.Time) Message {
	return Message{
		ID:        "msg_" + uuid.NewString(),
		Sender:    sender,
		Content:   content,
		Timestamp: ts,
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(SenderUser, content)
}

// NewBotMessage creates a new bot message.
func NewBotMessage(content string) Message {
	return NewMessage(SenderBot, content)
}

// TimeOfDay returns the message time formatted as HH:MM in local time.
func (m Message) TimeOfDay() string {
	return m.Timestamp.Local().Format(TimeOfDayLayout)
}

// Preview returns the content cut to maxLen characters for log lines.
func (m Message) Preview(maxLen int) string {
	return util.TruncateRunes(m.Content, maxLen)
}
