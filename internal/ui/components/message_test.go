// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/ui/styles"
)

func TestMessageBubble_Header(t *testing.T) {
	ts := time.Date(2025, 3, 4, 9, 5, 0, 0, time.Local)

	user := NewMessageBubble(model.NewMessageAt(model.SenderUser, "hi", ts), styles.NewTheme())
	if got := user.Header(); got != "You 09:05" {
		t.Errorf("user header = %q, want %q", got, "You 09:05")
	}

	bot := NewMessageBubble(model.NewMessageAt(model.SenderBot, "hello", ts), styles.NewTheme())
	bot.ShowTimestamp = false
	if got := bot.Header(); got != "Assistant" {
		t.Errorf("bot header = %q, want %q", got, "Assistant")
	}
}

func TestRenderTranscript(t *testing.T) {
	theme := styles.NewTheme()
	ts := time.Date(2025, 3, 4, 14, 30, 0, 0, time.Local)
	msgs := []model.Message{
		model.NewMessageAt(model.SenderUser, "ping", ts),
		model.NewMessageAt(model.SenderBot, "pong", ts),
	}

	out := RenderTranscript(theme, msgs, 80, true, nil)
	for _, want := range []string{"ping", "pong", "14:30", "You", "Assistant"} {
		if !strings.Contains(out, want) {
			t.Errorf("transcript missing %q", want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("wordWrap = %q, want %q", got, want)
	}

	if got := wordWrap("a\n\nb", 10); got != "a\n\nb" {
		t.Errorf("wordWrap should keep blank lines, got %q", got)
	}
}

func TestMarkdownRenderer_PlainTextSurvives(t *testing.T) {
	r := NewMarkdownRenderer()
	out := r.Render("hello **world**", 40)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("rendered markdown lost content: %q", out)
	}
}
