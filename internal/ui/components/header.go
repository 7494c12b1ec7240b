// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/ui/styles"
)

// AppTitle is shown on the left of the header.
const AppTitle = "chatterm"

// Header is the top bar showing the title and backend URL.
type Header struct {
	Width   int
	BaseURL string
	theme   *styles.Theme
}

// NewHeader creates a header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// SetWidth sets the available width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetBaseURL sets the backend URL shown on the right.
func (h *Header) SetBaseURL(url string) {
	h.BaseURL = url
}

// View renders the header.
func (h *Header) View() string {
	inner := h.Width - 2
	title := h.theme.HeaderTitle.Render(AppTitle)
	titleWidth := lipgloss.Width(title)

	url := ""
	if h.BaseURL != "" {
		url = truncateWithEllipsis(h.BaseURL, inner-titleWidth-2)
	}
	right := h.theme.HeaderHint.Render(url)

	gap := inner - titleWidth - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return h.theme.Header.Width(h.Width).Render(title + strings.Repeat(" ", gap) + right)
}
