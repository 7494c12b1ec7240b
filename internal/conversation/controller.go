// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/transport"
	"github.com/jeranaias/chatterm/internal/util"
)

// FallbackReply is appended to the log in place of a reply when a send fails.
// The raw error detail goes to the notification only.
const FallbackReply = "Sorry, I encountered an error processing your message. Please try again."

// logPreviewRunes caps message text in debug logs.
const logPreviewRunes = 40

// =============================================================================
// COLLABORATORS
// =============================================================================

// Transport performs one request/response exchange with the backend.
type Transport interface {
	Send(ctx context.Context, message string) (string, error)
}

// Notifier surfaces a failure to the user without blocking.
type Notifier interface {
	Notify(detail string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(detail string)

// Notify calls f(detail).
func (f NotifierFunc) Notify(detail string) { f(detail) }

// =============================================================================
// EXCHANGE
// =============================================================================

// Exchange is an accepted submission waiting for its reply.
type Exchange struct {
	Message model.Message
	Started time.Time
}

// Outcome is the result of running an Exchange.
type Outcome struct {
	Exchange *Exchange
	Reply    string
	Err      error
	Elapsed  time.Duration
}

// Failed reports whether the exchange produced an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the conversation state machine.
type Controller struct {
	state     *State
	transport Transport
	notifier  Notifier
	logger    zerolog.Logger

	mu       sync.Mutex
	inflight *Exchange
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for exchange events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates a controller over state.
// A nil notifier discards notifications.
func NewController(state *State, t Transport, n Notifier, opts ...Option) *Controller {
	if n == nil {
		n = NotifierFunc(func(string) {})
	}
	c := &Controller{
		state:     state,
		transport: t,
		notifier:  n,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the state the controller mutates.
func (c *Controller) State() *State {
	return c.state
}

// Processing reports whether a send is in flight.
func (c *Controller) Processing() bool {
	return c.state.Processing()
}

// Normalize trims raw input and converts it to NFC.
// The second result is false when nothing is left to send.
func Normalize(raw string) (string, bool) {
	text := norm.NFC.String(strings.TrimSpace(raw))
	return text, text != ""
}

// Begin accepts a submission.
//
// It returns false, changing nothing, when a send is already in flight or
// the trimmed input is empty. Callers clear their input field only when
// Begin returns true. On acceptance the user message is appended before
// the transport is called.
func (c *Controller) Begin(raw string) (*Exchange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight != nil || c.state.Processing() {
		c.logger.Debug().Msg("CHAT_SUBMIT_DROPPED | reason=processing")
		return nil, false
	}

	text, ok := Normalize(raw)
	if !ok {
		return nil, false
	}

	ex := &Exchange{
		Message: model.NewUserMessage(text),
		Started: time.Now(),
	}
	c.inflight = ex
	c.state.Status.SetProcessing(true)
	c.state.History.Append(ex.Message)

	c.logger.Info().
		Str("id", ex.Message.ID).
		Int("chars", util.RuneLen(text)).
		Msg("CHAT_SEND")
	c.logger.Debug().
		Str("id", ex.Message.ID).
		Str("preview", ex.Message.Preview(logPreviewRunes)).
		Msg("CHAT_SEND_PREVIEW")
	return ex, true
}

// Run performs the transport call for ex. It blocks until the backend
// answers or the transport gives up, and never panics.
func (c *Controller) Run(ctx context.Context, ex *Exchange) (out Outcome) {
	out.Exchange = ex
	defer func() {
		out.Elapsed = time.Since(ex.Started)
		if r := recover(); r != nil {
			out.Reply = ""
			out.Err = fmt.Errorf("transport panic: %v", r)
		}
	}()

	out.Reply, out.Err = c.transport.Send(ctx, ex.Message.Content)
	return out
}

// Complete records the outcome of the in-flight exchange and releases the
// processing gate. Outcomes for any other exchange are ignored.
func (c *Controller) Complete(out Outcome) {
	c.mu.Lock()
	if out.Exchange == nil || out.Exchange != c.inflight {
		c.mu.Unlock()
		c.logger.Warn().Msg("CHAT_COMPLETE_STALE | outcome does not match in-flight exchange")
		return
	}
	c.inflight = nil
	c.mu.Unlock()

	defer c.state.Status.SetProcessing(false)

	c.state.Status.ReportSend(out.Err)

	if out.Err == nil {
		c.state.History.Append(model.NewBotMessage(out.Reply))
		c.logger.Info().
			Str("id", out.Exchange.Message.ID).
			Dur("elapsed", out.Elapsed).
			Msg("CHAT_REPLY")
		return
	}

	c.state.History.Append(model.NewBotMessage(FallbackReply))
	c.logger.Error().
		Err(out.Err).
		Str("id", out.Exchange.Message.ID).
		Bool("unreachable", transport.IsUnreachable(out.Err)).
		Dur("elapsed", out.Elapsed).
		Msg("CHAT_FAILED")
	c.notifier.Notify(transport.DetailOf(out.Err))
}

// Submit runs a whole exchange synchronously.
// The second result is false when the submission was dropped.
func (c *Controller) Submit(ctx context.Context, raw string) (Outcome, bool) {
	ex, ok := c.Begin(raw)
	if !ok {
		return Outcome{}, false
	}
	out := c.Run(ctx, ex)
	c.Complete(out)
	return out, true
}
