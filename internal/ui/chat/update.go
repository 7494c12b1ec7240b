// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatterm/internal/conversation"
	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/status"
	"github.com/jeranaias/chatterm/internal/ui/components"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.layout()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.renderedCount = -1
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case HealthTickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m, tea.Batch(m.checkHealthCmd(false), m.healthTickCmd())

	case HealthResultMsg:
		return m.handleHealth(msg)

	case SendResultMsg:
		return m.handleSendResult(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case ClipboardResultMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("CLIPBOARD_FAILED")
			m.notes.AddInfo("Clipboard unavailable")
		} else {
			m.notes.AddInfo("Copied last reply")
		}
		cmd := m.ensureNoteTick()
		return m, cmd

	case components.NotificationTickMsg:
		if m.notes.Prune() {
			return m, components.NotificationTickCmd()
		}
		m.noteTicking = false
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Processing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// INPUT
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Dismiss):
		m.notes.DismissNewest()
		return m, nil

	case key.Matches(msg, m.keys.DismissAll):
		m.notes.Clear()
		return m, nil

	case msg.Type == tea.KeyRunes && string(msg.Runes) == "x" && m.input.Value() == "" && m.notes.Len() > 0:
		m.notes.DismissNewest()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if !m.monitor.AllowManual() {
			m.logger.Debug().Msg("HEALTH_REFRESH_LIMITED")
			return m, nil
		}
		return m, m.checkHealthCmd(true)

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLastReplyCmd()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	// A left click outside the notification band dismisses the newest
	// notification; clicks on the band itself are ignored.
	if msg.Type == tea.MouseLeft && m.notes.Len() > 0 {
		top := headerHeight
		bottom := top + m.notificationHeight()
		if msg.Y < top || msg.Y >= bottom {
			m.notes.DismissNewest()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// submit hands the draft to the controller. The draft is cleared only when
// the controller accepts it.
func (m Model) submit() (Model, tea.Cmd) {
	ex, ok := m.ctrl.Begin(m.input.Value())
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.input.Placeholder = placeholderProcessing
	m.viewport.GotoBottom()

	return m, tea.Batch(m.sendCmd(ex), m.spinner.Tick)
}

func (m Model) sendCmd(ex *conversation.Exchange) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return SendResultMsg{Outcome: ctrl.Run(ctx, ex)}
	}
}

func (m Model) handleSendResult(msg SendResultMsg) (Model, tea.Cmd) {
	m.ctrl.Complete(msg.Outcome)
	m.input.Placeholder = placeholderIdle
	cmd := m.ensureNoteTick()
	return m, cmd
}

// =============================================================================
// HEALTH
// =============================================================================

func (m Model) checkHealthCmd(manual bool) tea.Cmd {
	monitor, ctx := m.monitor, m.ctx
	return func() tea.Msg {
		return HealthResultMsg{Result: monitor.Check(ctx), Manual: manual}
	}
}

func (m Model) healthTickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.monitor.Interval(), func(_ time.Time) tea.Msg {
		return HealthTickMsg{Gen: gen}
	})
}

// handleHealth applies a health result. Failures only change the status
// indicator; they never raise a notification.
func (m Model) handleHealth(msg HealthResultMsg) (Model, tea.Cmd) {
	indicator := m.ctrl.State().Status
	applied := indicator.ApplyHealth(msg.Result)

	ev := m.logger.Debug()
	if msg.Result.Err != nil {
		ev = m.logger.Warn().Err(msg.Result.Err)
	}
	ev.Str("state", msg.Result.Connectivity.String()).
		Bool("applied", applied).
		Bool("manual", msg.Manual).
		Msg("HEALTH_CHECK")
	return m, nil
}

// =============================================================================
// CLIPBOARD
// =============================================================================

func (m Model) copyLastReplyCmd() tea.Cmd {
	last, ok := m.ctrl.State().History.LastFrom(model.SenderBot)
	if !ok {
		return nil
	}
	content := last.Content
	return func() tea.Msg {
		return ClipboardResultMsg{Err: copyToClipboard(content)}
	}
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func (m Model) handleConfigReload(msg ConfigReloadedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Msg("CONFIG_RELOAD_FAILED")
		m.notes.AddInfo("Config reload failed; keeping previous settings")
		cmd := m.ensureNoteTick()
		return m, cmd
	}
	cfg := msg.Config

	if s, ok := m.transport.(baseURLSetter); ok {
		s.SetBaseURL(cfg.API.BaseURL)
		m.header.SetBaseURL(cfg.API.BaseURL)
	}

	m.counter.SetMax(cfg.UI.MaxInput)
	m.input.CharLimit = cfg.UI.MaxInput
	m.notes.SetErrorTTL(cfg.UI.NotificationTTL.Std())
	m.showTimestamps = cfg.UI.ShowTimestamps
	m.useMarkdown = cfg.UI.Markdown
	m.renderedCount = -1

	var cmds []tea.Cmd
	if interval := cfg.API.HealthInterval.Std(); interval != m.monitor.Interval() {
		m.monitor.SetInterval(interval)
		m.tickGen++
		cmds = append(cmds, m.healthTickCmd())
	}

	m.logger.Info().
		Str("base_url", cfg.API.BaseURL).
		Dur("health_interval", cfg.API.HealthInterval.Std()).
		Msg("CONFIG_RELOADED")
	m.notes.AddInfo("Configuration reloaded")
	cmds = append(cmds, m.ensureNoteTick())
	return m, tea.Batch(cmds...)
}

// ensureNoteTick starts the expiry ticker if a timed notification exists.
func (m *Model) ensureNoteTick() tea.Cmd {
	if m.noteTicking || !m.notes.Prune() {
		return nil
	}
	m.noteTicking = true
	return components.NotificationTickCmd()
}

// statusSnapshot returns what the status bar should show.
func (m Model) statusSnapshot() (status.Connectivity, string) {
	ind := m.ctrl.State().Status
	return ind.Current(), ind.Label()
}
