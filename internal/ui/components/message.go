// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript entry.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	Markdown      *MarkdownRenderer
	theme         *styles.Theme
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// Header returns the unstyled "Sender HH:MM" line.
func (b *MessageBubble) Header() string {
	h := b.Message.Sender.DisplayName()
	if b.ShowTimestamp {
		h += " " + b.Message.TimeOfDay()
	}
	return h
}

// View renders the bubble.
func (b *MessageBubble) View() string {
	if b.Message.Sender.IsUser() {
		return b.renderUser()
	}
	return b.renderBot()
}

func (b *MessageBubble) contentWidth() int {
	w := b.Width - 8
	if w < 20 {
		w = 20
	}
	return w
}

// User bubbles are right-aligned.
func (b *MessageBubble) renderUser() string {
	body := wordWrap(b.Message.Content, b.contentWidth())
	bubble := b.theme.UserBubble.Render(body)

	header := b.renderHeader()
	block := lipgloss.JoinVertical(lipgloss.Right, header, bubble)

	return lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Right).
		Render(block)
}

func (b *MessageBubble) renderBot() string {
	width := b.contentWidth()
	var body string
	if b.Markdown != nil {
		body = b.Markdown.Render(b.Message.Content, width)
	} else {
		body = wordWrap(b.Message.Content, width)
	}
	bubble := b.theme.BotBubble.Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, b.renderHeader(), bubble)
}

func (b *MessageBubble) renderHeader() string {
	parts := []string{b.theme.SenderLabel.Render(b.Message.Sender.DisplayName())}
	if b.ShowTimestamp {
		parts = append(parts, b.theme.Timestamp.Render(b.Message.TimeOfDay()))
	}
	return strings.Join(parts, " ")
}

// RenderTranscript renders all messages separated by blank lines.
func RenderTranscript(theme *styles.Theme, messages []model.Message, width int, showTimestamps bool, md *MarkdownRenderer) string {
	blocks := make([]string, 0, len(messages))
	for _, m := range messages {
		b := NewMessageBubble(m, theme)
		b.Width = width
		b.ShowTimestamp = showTimestamps
		b.Markdown = md
		blocks = append(blocks, b.View())
	}
	return strings.Join(blocks, "\n\n")
}
