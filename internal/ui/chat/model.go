// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/conversation"
	"github.com/jeranaias/chatterm/internal/status"
	"github.com/jeranaias/chatterm/internal/ui/components"
	"github.com/jeranaias/chatterm/internal/ui/styles"
)

const (
	placeholderIdle       = "Type your message..."
	placeholderProcessing = "Waiting for reply..."
)

// Layout rows outside the viewport.
const (
	headerHeight    = 1
	inputAreaHeight = 3 // separator + input line + char count
	statusBarHeight = 1
)

// baseURLer is implemented by transports that know their endpoint.
type baseURLer interface {
	BaseURL() string
}

// baseURLSetter is implemented by transports that can be repointed.
type baseURLSetter interface {
	SetBaseURL(url string)
}

// Options holds the collaborators for a Model.
type Options struct {
	Controller    *conversation.Controller
	Monitor       *status.Monitor
	Notifications *components.NotificationCenter
	Transport     conversation.Transport
	Config        *config.Config
	Logger        zerolog.Logger
	Context       context.Context
}

// Model is the chat view.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	ctrl      *conversation.Controller
	monitor   *status.Monitor
	notes     *components.NotificationCenter
	transport conversation.Transport
	logger    zerolog.Logger

	theme     *styles.Theme
	keys      KeyMap
	header    *components.Header
	statusBar *components.StatusBar
	counter   *components.CharCounter
	welcome   *components.Welcome
	markdown  *components.MarkdownRenderer

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	showTimestamps bool
	useMarkdown    bool

	width, height int
	ready         bool
	tickGen       int
	noteTicking   bool
	renderedCount int
	quitting      bool
}

// Build wires a Model from configuration and a backend that can both send
// and report health, usually a *transport.Client.
func Build(ctx context.Context, cfg *config.Config, backend interface {
	conversation.Transport
	status.HealthChecker
}, logger zerolog.Logger) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	notes := components.NewNotificationCenter(cfg.UI.NotificationTTL.Std())
	notifier := conversation.NotifierFunc(func(detail string) {
		notes.AddError(detail)
	})

	ctrl := conversation.NewController(
		conversation.NewState(),
		backend,
		notifier,
		conversation.WithLogger(logger),
	)

	return New(Options{
		Controller:    ctrl,
		Monitor:       status.NewMonitor(backend, cfg.API.HealthInterval.Std()),
		Notifications: notes,
		Transport:     backend,
		Config:        cfg,
		Logger:        logger,
		Context:       ctx,
	})
}

// New creates a chat model from its collaborators.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	notes := opts.Notifications
	if notes == nil {
		notes = components.NewNotificationCenter(cfg.UI.NotificationTTL.Std())
	}

	theme := styles.NewTheme()

	ti := textinput.New()
	ti.Placeholder = placeholderIdle
	ti.CharLimit = cfg.UI.MaxInput
	ti.Prompt = "> "
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Cyan)
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = theme.StatusProcessing

	header := components.NewHeader(theme)
	if b, ok := opts.Transport.(baseURLer); ok {
		header.SetBaseURL(b.BaseURL())
	}

	return Model{
		ctx:            ctx,
		cancel:         cancel,
		ctrl:           opts.Controller,
		monitor:        opts.Monitor,
		notes:          notes,
		transport:      opts.Transport,
		logger:         opts.Logger,
		theme:          theme,
		keys:           DefaultKeyMap(),
		header:         header,
		statusBar:      components.NewStatusBar(theme),
		counter:        components.NewCharCounter(theme, cfg.UI.MaxInput),
		welcome:        components.NewWelcome(theme),
		markdown:       components.NewMarkdownRenderer(),
		input:          ti,
		viewport:       viewport.New(80, 20),
		spinner:        sp,
		showTimestamps: cfg.UI.ShowTimestamps,
		useMarkdown:    cfg.UI.Markdown,
		width:          80,
		height:         24,
	}
}

// Controller returns the conversation controller behind the model.
func (m Model) Controller() *conversation.Controller {
	return m.ctrl
}

// Notifications returns the notification center.
func (m Model) Notifications() *components.NotificationCenter {
	return m.notes
}

// Draft returns the current input text.
func (m Model) Draft() string {
	return m.input.Value()
}

// SetDraft replaces the input text.
func (m *Model) SetDraft(s string) {
	m.input.SetValue(s)
}

// Init starts the first health check and the check schedule.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.checkHealthCmd(false),
		m.healthTickCmd(),
	)
}
