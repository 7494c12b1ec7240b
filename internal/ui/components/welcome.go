// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// WelcomeTitle heads the empty-transcript panel.
const WelcomeTitle = "Welcome to chatterm"

// welcomeLines describe how to get started.
var welcomeLines = []string{
	"Type a message below and press Enter to send it.",
	"Messages are limited to the character count shown under the input.",
	"Press Ctrl+R to re-check the connection, Ctrl+C to quit.",
}

// Welcome renders the panel shown before the first message.
type Welcome struct {
	Width  int
	Height int
	theme  *styles.Theme
}

// NewWelcome creates a welcome panel.
func NewWelcome(theme *styles.Theme) *Welcome {
	return &Welcome{Width: 80, Height: 10, theme: theme}
}

// SetSize sets the area the panel is centered in.
func (w *Welcome) SetSize(width, height int) {
	w.Width = width
	w.Height = height
}

// View renders the panel centered in its area.
func (w *Welcome) View() string {
	inner := w.Width - 8
	if inner < 20 {
		inner = 20
	}

	body := make([]string, 0, len(welcomeLines))
	for _, l := range welcomeLines {
		body = append(body, w.theme.WelcomeBody.Render(wordWrap(l, inner)))
	}

	panel := lipgloss.JoinVertical(lipgloss.Center,
		w.theme.WelcomeTitle.Render(WelcomeTitle),
		"",
		strings.Join(body, "\n"),
	)

	if w.Width <= 0 || w.Height <= 0 {
		return panel
	}
	return lipgloss.Place(w.Width, w.Height, lipgloss.Center, lipgloss.Center, panel)
}
