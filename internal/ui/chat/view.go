// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatterm/internal/status"
	"github.com/jeranaias/chatterm/internal/ui/components"
)

// View renders the chat view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.header.View()}
	if notes := m.renderNotifications(); notes != "" {
		sections = append(sections, notes)
	}
	sections = append(sections,
		m.viewport.View(),
		m.renderInput(),
		m.renderStatusBar(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// layout sizes the components for the current window and refreshes the
// transcript when it changed.
func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)

	inputWidth := m.width - 6 - len(m.input.Prompt)
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	vpHeight := m.height - headerHeight - inputAreaHeight - statusBarHeight - m.notificationHeight()
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = vpHeight
	m.welcome.SetSize(m.width, vpHeight)

	history := m.ctrl.State().History
	count := history.Len()
	if count == 0 {
		m.viewport.SetContent(m.welcome.View())
		m.renderedCount = 0
		return
	}
	if count == m.renderedCount {
		return
	}

	var md *components.MarkdownRenderer
	if m.useMarkdown {
		md = m.markdown
	}
	m.viewport.SetContent(components.RenderTranscript(m.theme, history.All(), m.width-2, m.showTimestamps, md))
	if count > m.renderedCount {
		m.viewport.GotoBottom()
	}
	m.renderedCount = count
}

func (m Model) notificationHeight() int {
	notes := m.renderNotifications()
	if notes == "" {
		return 0
	}
	return lipgloss.Height(notes)
}

func (m Model) renderNotifications() string {
	return components.RenderNotifications(m.theme, m.notes.Items(), m.width)
}

func (m Model) renderInput() string {
	n := len([]rune(m.input.Value()))
	counter := m.counter.View(n)

	line := m.input.View()
	if m.ctrl.Processing() {
		line = m.theme.InputDisabled.Render(line)
	}

	inner := m.width - 2
	if inner < 10 {
		inner = 10
	}
	counterLine := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).Render(counter)

	return m.theme.InputContainer.Width(m.width).Render(
		strings.Join([]string{line, counterLine}, "\n"),
	)
}

func (m Model) renderStatusBar() string {
	state, label := m.statusSnapshot()
	if state == status.Processing {
		label = strings.TrimSpace(m.spinner.View()) + " " + label
	}
	m.statusBar.SetState(state, label)
	return m.statusBar.View()
}
