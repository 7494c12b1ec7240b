// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// =============================================================================
// NOTIFICATION TYPES
// =============================================================================

// NotificationKind represents the type of notification.
type NotificationKind int

const (
	// NotificationError is raised for a failed send.
	NotificationError NotificationKind = iota
	// NotificationInfo is a transient status note (clipboard, config reload).
	NotificationInfo
)

// InfoTTL is how long info notifications stay visible.
const InfoTTL = 3 * time.Second

// maxNotifications caps the visible stack.
const maxNotifications = 5

// Notification is a dismissible banner. A zero TTL means it stays until
// the user dismisses it.
type Notification struct {
	ID        int
	Message   string
	Kind      NotificationKind
	CreatedAt time.Time
	TTL       time.Duration
}

// Sticky reports whether the notification waits for manual dismissal.
func (n Notification) Sticky() bool {
	return n.TTL <= 0
}

// ExpiredAt reports whether the notification should be gone at now.
func (n Notification) ExpiredAt(now time.Time) bool {
	if n.Sticky() {
		return false
	}
	return now.Sub(n.CreatedAt) >= n.TTL
}

// =============================================================================
// NOTIFICATION CENTER
// =============================================================================

// NotificationCenter holds the active notifications, newest first.
type NotificationCenter struct {
	mu       sync.Mutex
	items    []Notification
	nextID   int
	errorTTL time.Duration
	now      func() time.Time
}

// NewNotificationCenter creates a center. errorTTL of zero keeps error
// notifications until dismissed.
func NewNotificationCenter(errorTTL time.Duration) *NotificationCenter {
	return &NotificationCenter{
		nextID:   1,
		errorTTL: errorTTL,
		now:      time.Now,
	}
}

// SetErrorTTL changes the lifetime applied to future error notifications.
func (c *NotificationCenter) SetErrorTTL(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorTTL = ttl
}

// Add inserts a notification and returns its ID.
func (c *NotificationCenter) Add(message string, kind NotificationKind, ttl time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := Notification{
		ID:        c.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: c.now(),
		TTL:       ttl,
	}
	c.nextID++

	c.items = append([]Notification{n}, c.items...)
	if len(c.items) > maxNotifications {
		c.items = c.items[:maxNotifications]
	}
	return n.ID
}

// AddError raises an error notification carrying detail.
func (c *NotificationCenter) AddError(detail string) int {
	c.mu.Lock()
	ttl := c.errorTTL
	c.mu.Unlock()
	return c.Add(detail, NotificationError, ttl)
}

// AddInfo raises a short-lived info notification.
func (c *NotificationCenter) AddInfo(message string) int {
	return c.Add(message, NotificationInfo, InfoTTL)
}

// DismissNewest removes the most recent notification.
func (c *NotificationCenter) DismissNewest() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return false
	}
	c.items = c.items[1:]
	return true
}

// Clear removes all notifications.
func (c *NotificationCenter) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Prune drops expired notifications and reports whether any remain that
// will still need pruning later.
func (c *NotificationCenter) Prune() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	active := c.items[:0]
	timed := false
	for _, n := range c.items {
		if n.ExpiredAt(now) {
			continue
		}
		if !n.Sticky() {
			timed = true
		}
		active = append(active, n)
	}
	c.items = active
	return timed
}

// Items returns a copy of the active notifications, newest first.
func (c *NotificationCenter) Items() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of active notifications.
func (c *NotificationCenter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// =============================================================================
// MESSAGES
// =============================================================================

// NotificationTickMsg drives expiry of timed notifications.
type NotificationTickMsg struct {
	Time time.Time
}

// NotificationTickCmd schedules the next expiry check.
func NotificationTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return NotificationTickMsg{Time: t}
	})
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderNotifications renders the stack as full-width banners.
func RenderNotifications(theme *styles.Theme, items []Notification, width int) string {
	if len(items) == 0 {
		return ""
	}

	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	rendered := make([]string, 0, len(items))
	for _, n := range items {
		rendered = append(rendered, renderNotification(theme, n, inner))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func renderNotification(theme *styles.Theme, n Notification, inner int) string {
	icon := styles.StatusIndicators.Error
	box := theme.Notification
	if n.Kind == NotificationInfo {
		icon = styles.StatusIndicators.Info
		box = box.
			Foreground(styles.TextPrimary).
			UnsetBackground().
			BorderForeground(styles.Cyan)
	}

	body := wordWrap(icon+" "+n.Message, inner)
	hint := theme.NotificationHint.Render("[esc] dismiss  [ctrl+x] all")
	return box.Width(inner).Render(body + "\n" + hint)
}
