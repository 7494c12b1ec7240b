// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/chatterm/internal/ui/styles"
)

func newTestCenter(ttl time.Duration, clock *time.Time) *NotificationCenter {
	c := NewNotificationCenter(ttl)
	c.now = func() time.Time { return *clock }
	return c
}

func TestNotificationCenter_ErrorsAreStickyByDefault(t *testing.T) {
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCenter(0, &clock)

	c.AddError("Message cannot be empty")
	clock = clock.Add(time.Hour)
	c.Prune()

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected sticky notification to survive, got %d items", len(items))
	}
	if items[0].Message != "Message cannot be empty" {
		t.Errorf("Message = %q", items[0].Message)
	}
	if items[0].Kind != NotificationError {
		t.Errorf("Kind = %v, want error", items[0].Kind)
	}
}

func TestNotificationCenter_TimedExpiry(t *testing.T) {
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCenter(5*time.Second, &clock)

	c.AddError("boom")
	if !c.Prune() {
		t.Error("Prune should report a pending timed notification")
	}

	clock = clock.Add(5 * time.Second)
	if c.Prune() {
		t.Error("Prune should report nothing pending after expiry")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestNotificationCenter_Dismiss(t *testing.T) {
	c := NewNotificationCenter(0)

	c.AddError("first")
	c.AddError("second")

	if !c.DismissNewest() {
		t.Error("DismissNewest should remove the newest item")
	}

	items := c.Items()
	if len(items) != 1 || items[0].Message != "first" {
		t.Fatalf("unexpected items after dismiss: %+v", items)
	}

	if !c.DismissNewest() {
		t.Error("DismissNewest should remove the remaining item")
	}
	if c.DismissNewest() {
		t.Error("DismissNewest on empty center should return false")
	}
}

func TestNotificationCenter_NewestFirstAndCapped(t *testing.T) {
	c := NewNotificationCenter(0)
	for i := 0; i < maxNotifications+3; i++ {
		c.AddError(strings.Repeat("x", i+1))
	}

	items := c.Items()
	if len(items) != maxNotifications {
		t.Fatalf("Len = %d, want %d", len(items), maxNotifications)
	}
	if items[0].Message != strings.Repeat("x", maxNotifications+3) {
		t.Errorf("newest notification should be first, got %q", items[0].Message)
	}
}

func TestRenderNotifications(t *testing.T) {
	theme := styles.NewTheme()
	if RenderNotifications(theme, nil, 80) != "" {
		t.Error("no notifications should render empty")
	}

	out := RenderNotifications(theme, []Notification{{ID: 1, Message: "Failed to send message"}}, 80)
	if !strings.Contains(out, "Failed to send message") {
		t.Error("rendered notification should include its message")
	}
	if !strings.Contains(out, "[esc] dismiss") {
		t.Error("rendered notification should name esc, which dismisses regardless of the draft")
	}
	if strings.Contains(out, "[x]") {
		t.Error("hint should not advertise x, which only works with an empty draft")
	}
}
