// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/conversation"
	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/status"
	"github.com/jeranaias/chatterm/internal/transport"
)

// fakeBackend implements both the transport and health checker.
type fakeBackend struct {
	mu      sync.Mutex
	reply   string
	sendErr error
	health  error
	sent    []string
	baseURL string
}

func (f *fakeBackend) Send(_ context.Context, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, message)
	return f.reply, f.sendErr
}

func (f *fakeBackend) CheckHealth(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.health
}

func (f *fakeBackend) BaseURL() string       { return f.baseURL }
func (f *fakeBackend) SetBaseURL(url string) { f.baseURL = url }

func newTestModel(t *testing.T, backend *fakeBackend) Model {
	t.Helper()
	m := Build(context.Background(), config.Default(), backend, zerolog.Nop())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

// runCmd executes cmd and flattens batches, skipping nil commands.
// It must only be used on commands that return immediately.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findSendResult(t *testing.T, msgs []tea.Msg) SendResultMsg {
	t.Helper()
	for _, msg := range msgs {
		if r, ok := msg.(SendResultMsg); ok {
			return r
		}
	}
	t.Fatal("no SendResultMsg produced")
	return SendResultMsg{}
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func TestSubmit_SuccessFlow(t *testing.T) {
	backend := &fakeBackend{reply: "Hi there"}
	m := newTestModel(t, backend)

	m.SetDraft("  Hello  ")
	m, cmd := press(t, m, enter())

	require.Equal(t, "", m.Draft(), "accepted draft should be cleared")
	require.True(t, m.Controller().Processing())

	history := m.Controller().State().History.All()
	require.Len(t, history, 1, "user message is appended before the reply")
	require.Equal(t, "Hello", history[0].Content)
	require.Equal(t, model.SenderUser, history[0].Sender)

	result := findSendResult(t, runCmd(cmd))
	next, _ := m.Update(result)
	m = next.(Model)

	require.False(t, m.Controller().Processing())
	history = m.Controller().State().History.All()
	require.Len(t, history, 2)
	require.Equal(t, "Hi there", history[1].Content)
	require.Equal(t, model.SenderBot, history[1].Sender)
	require.Equal(t, 0, m.Notifications().Len())
	require.Equal(t, []string{"Hello"}, backend.sent)
}

func TestSubmit_FailureRaisesNotification(t *testing.T) {
	backend := &fakeBackend{sendErr: &transport.TransportError{
		Kind:   transport.KindRejected,
		Detail: "Message exceeds 2000 characters",
		Status: http.StatusBadRequest,
	}}
	m := newTestModel(t, backend)

	m.SetDraft("hello")
	m, cmd := press(t, m, enter())
	next, _ := m.Update(findSendResult(t, runCmd(cmd)))
	m = next.(Model)

	require.False(t, m.Controller().Processing())

	history := m.Controller().State().History.All()
	require.Len(t, history, 2)
	require.Equal(t, conversation.FallbackReply, history[1].Content)

	items := m.Notifications().Items()
	require.Len(t, items, 1)
	require.Equal(t, "Message exceeds 2000 characters", items[0].Message)
	require.True(t, strings.Contains(m.View(), "Message exceeds 2000 characters"))
}

func TestSubmit_WhitespaceIgnored(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})

	m.SetDraft("   ")
	m, cmd := press(t, m, enter())

	require.Nil(t, cmd)
	require.False(t, m.Controller().Processing())
	require.True(t, m.Controller().State().History.IsEmpty())
}

func TestSubmit_DroppedWhileProcessing(t *testing.T) {
	backend := &fakeBackend{reply: "ok"}
	m := newTestModel(t, backend)

	m.SetDraft("first")
	m, first := press(t, m, enter())

	m.SetDraft("second")
	m, second := press(t, m, enter())
	require.Nil(t, second, "submission during processing must be dropped")
	require.Equal(t, "second", m.Draft(), "dropped draft stays in the input")
	require.Equal(t, 1, m.Controller().State().History.Len())

	next, _ := m.Update(findSendResult(t, runCmd(first)))
	m = next.(Model)
	require.False(t, m.Controller().Processing())
	require.Equal(t, []string{"first"}, backend.sent)
}

func TestHealth_NeverNotifies(t *testing.T) {
	backend := &fakeBackend{health: errors.New("connection refused")}
	m := newTestModel(t, backend)

	msgs := runCmd(m.checkHealthCmd(false))
	require.Len(t, msgs, 1)
	next, _ := m.Update(msgs[0])
	m = next.(Model)

	state, label := m.statusSnapshot()
	require.Equal(t, status.Error, state)
	require.Equal(t, status.LabelConnectError, label)
	require.Equal(t, 0, m.Notifications().Len())
}

func TestHealth_DiscardedWhileProcessing(t *testing.T) {
	backend := &fakeBackend{reply: "ok"}
	m := newTestModel(t, backend)

	m.SetDraft("hi")
	m, cmd := press(t, m, enter())

	next, _ := m.Update(HealthResultMsg{Result: status.ResultFor(errors.New("down"))})
	m = next.(Model)

	state, _ := m.statusSnapshot()
	require.Equal(t, status.Processing, state, "health must not override processing")

	next, _ = m.Update(findSendResult(t, runCmd(cmd)))
	m = next.(Model)
	state, label := m.statusSnapshot()
	require.Equal(t, status.Connected, state)
	require.Equal(t, status.LabelConnected, label)
}

func TestHealthTick_StaleGenerationIgnored(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m.tickGen = 3

	next, cmd := m.Update(HealthTickMsg{Gen: 2})
	require.Nil(t, cmd)
	require.Equal(t, 3, next.(Model).tickGen)
}

func TestDismissNotification(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m.Notifications().AddError("one")
	m.Notifications().AddError("two")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, 1, m.Notifications().Len())

	// "x" dismisses only with an empty draft.
	m.SetDraft("a")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.Equal(t, 1, m.Notifications().Len())
	require.Equal(t, "ax", m.Draft())

	m.SetDraft("")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.Equal(t, 0, m.Notifications().Len())
}

func TestMouse_ClickOutsideNotificationDismisses(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m.Notifications().AddError("backend said no")
	band := m.notificationHeight()
	require.Greater(t, band, 0)

	// Clicks on the notification itself keep it.
	for _, y := range []int{headerHeight, headerHeight + band - 1} {
		next, _ := m.Update(tea.MouseMsg{X: 10, Y: y, Type: tea.MouseLeft})
		m = next.(Model)
		require.Equal(t, 1, m.Notifications().Len(), "click at y=%d is inside the notification", y)
	}

	// Wheel scrolling outside it is not a dismissal.
	next, _ := m.Update(tea.MouseMsg{X: 10, Y: 20, Type: tea.MouseWheelDown})
	m = next.(Model)
	require.Equal(t, 1, m.Notifications().Len())

	// A click in the transcript dismisses.
	next, _ = m.Update(tea.MouseMsg{X: 10, Y: 20, Type: tea.MouseLeft})
	m = next.(Model)
	require.Equal(t, 0, m.Notifications().Len())
}

func TestMouse_ClickOnHeaderDismisses(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m.Notifications().AddError("one")

	next, _ := m.Update(tea.MouseMsg{X: 3, Y: 0, Type: tea.MouseLeft})
	require.Equal(t, 0, next.(Model).Notifications().Len())
}

func TestDismissAllNotifications(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m.Notifications().AddError("one")
	m.Notifications().AddError("two")
	m.Notifications().AddError("three")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.Equal(t, 0, m.Notifications().Len())
}

func TestCopyLastReply(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	m := newTestModel(t, &fakeBackend{reply: "copy me"})

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Nil(t, cmd, "nothing to copy before the first reply")

	m.SetDraft("hi")
	m, send := press(t, m, enter())
	next, _ := m.Update(findSendResult(t, runCmd(send)))
	m = next.(Model)

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	require.Equal(t, ClipboardResultMsg{}, msgs[0])
	require.Equal(t, "copy me", copied)
}

func TestConfigReload(t *testing.T) {
	backend := &fakeBackend{baseURL: "http://localhost:8000"}
	m := newTestModel(t, backend)

	cfg := config.Default()
	cfg.API.BaseURL = "http://example.test:9000"
	cfg.API.HealthInterval = config.Duration(time.Minute)
	cfg.UI.MaxInput = 500

	next, cmd := m.Update(ConfigReloadedMsg{Config: cfg})
	m = next.(Model)

	require.NotNil(t, cmd, "interval change must reschedule the health tick")
	require.Equal(t, "http://example.test:9000", backend.baseURL)
	require.Equal(t, time.Minute, m.monitor.Interval())
	require.Equal(t, 1, m.tickGen)
	require.Equal(t, 500, m.input.CharLimit)
	require.Equal(t, 500, m.counter.Max())
}

func TestConfigReload_ErrorKeepsSettings(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})

	next, _ := m.Update(ConfigReloadedMsg{Err: errors.New("invalid config")})
	m = next.(Model)

	require.Equal(t, config.DefaultMaxInput, m.counter.Max())
	require.Equal(t, config.DefaultHealthInterval, m.monitor.Interval())
}

func TestView_WelcomeAndCounter(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})

	out := m.View()
	require.Contains(t, out, "Welcome to chatterm")
	require.Contains(t, out, "0/2000")
	require.Contains(t, out, status.LabelChecking)

	m.SetDraft(strings.Repeat("a", 1801))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	require.Contains(t, next.(Model).View(), "1801/2000")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Equal(t, "", m.View())
	require.Error(t, m.ctx.Err(), "quitting cancels in-flight work")
}
