// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/chatterm/internal/status"
	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is a key hint shown on the right of the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are the hints shown in the chat view.
var DefaultShortcuts = []Shortcut{
	{Key: "enter", Desc: "send"},
	{Key: "ctrl+r", Desc: "refresh"},
	{Key: "ctrl+y", Desc: "copy"},
	{Key: "ctrl+c", Desc: "quit"},
}

// StatusBar renders the connectivity indicator and shortcuts.
type StatusBar struct {
	State     status.Connectivity
	Label     string
	Width     int
	Shortcuts []Shortcut
	theme     *styles.Theme
}

// NewStatusBar creates a status bar in the unknown state.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		State:     status.Unknown,
		Label:     status.LabelChecking,
		Width:     80,
		Shortcuts: DefaultShortcuts,
		theme:     theme,
	}
}

// SetWidth sets the available width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetState updates the displayed connectivity.
func (s *StatusBar) SetState(state status.Connectivity, label string) {
	s.State = state
	if label == "" {
		label = state.DefaultLabel()
	}
	s.Label = label
}

// Indicator returns the unstyled "icon label" text.
func (s *StatusBar) Indicator() string {
	return s.State.Icon() + " " + s.Label
}

// View renders the status bar.
func (s *StatusBar) View() string {
	inner := s.Width - 2
	if inner < 10 {
		inner = 10
	}

	left := s.stateStyle().Render(s.Indicator())
	leftWidth := lipgloss.Width(left)

	right := s.renderShortcuts(inner - leftWidth - 2)
	gap := inner - leftWidth - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	line := left + strings.Repeat(" ", gap) + right
	return s.theme.StatusBar.Width(s.Width).Render(line)
}

func (s *StatusBar) stateStyle() lipgloss.Style {
	switch s.State {
	case status.Connected:
		return s.theme.StatusConnected
	case status.Processing:
		return s.theme.StatusProcessing
	case status.Error:
		return s.theme.StatusError
	default:
		return s.theme.StatusUnknown
	}
}

// renderShortcuts renders as many hints as fit in width cells.
func (s *StatusBar) renderShortcuts(width int) string {
	if width <= 0 {
		return ""
	}

	var parts []string
	used := 0
	for _, sc := range s.Shortcuts {
		plain := sc.Key + " " + sc.Desc
		need := runewidth.StringWidth(plain)
		if len(parts) > 0 {
			need += 2
		}
		if used+need > width {
			break
		}
		used += need
		parts = append(parts, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(parts, "  ")
}
