// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/chatterm/internal/config"
	"github.com/jeranaias/chatterm/internal/ollama"
)

// Responder produces the bot reply for one user message.
type Responder interface {
	Name() string
	Reply(ctx context.Context, message string) (string, error)
}

// ============================================================================
// ECHO
// ============================================================================

// EchoResponder answers every message by quoting it back.
type EchoResponder struct{}

// Name implements Responder.
func (EchoResponder) Name() string { return "echo" }

// Reply implements Responder.
func (EchoResponder) Reply(_ context.Context, message string) (string, error) {
	return "You said: " + message, nil
}

// ============================================================================
// OLLAMA
// ============================================================================

// SystemPrompt frames every model conversation.
const SystemPrompt = "You are a helpful and friendly AI assistant. Provide clear, concise, and informative responses."

// Generation limits applied to every Ollama request.
const (
	ReplyMaxTokens   = 500
	ReplyTemperature = 0.7
)

// ChatClient is the part of the Ollama client the responder needs.
type ChatClient interface {
	ChatWithOptions(ctx context.Context, model string, messages []ollama.Message, opts *ollama.Options) (*ollama.ChatResponse, error)
}

// OllamaResponder asks a local model for each reply. Every request is a
// fresh single-turn conversation.
type OllamaResponder struct {
	client ChatClient
	model  string
}

// NewOllamaResponder creates a responder using client and model. An empty
// model lets the client pick its default.
func NewOllamaResponder(client ChatClient, model string) *OllamaResponder {
	return &OllamaResponder{client: client, model: model}
}

// Name implements Responder.
func (r *OllamaResponder) Name() string { return "ollama" }

// Model returns the configured model name.
func (r *OllamaResponder) Model() string { return r.model }

// Reply implements Responder.
func (r *OllamaResponder) Reply(ctx context.Context, message string) (string, error) {
	resp, err := r.client.ChatWithOptions(ctx, r.model, []ollama.Message{
		ollama.NewSystemMessage(SystemPrompt),
		ollama.NewUserMessage(message),
	}, &ollama.Options{
		NumPredict:  ReplyMaxTokens,
		Temperature: ReplyTemperature,
	})
	if err != nil {
		return "", err
	}

	reply := strings.TrimSpace(resp.Message.Content)
	if reply == "" {
		return "", errors.New("model returned an empty reply")
	}
	return reply, nil
}

// ============================================================================
// SELECTION
// ============================================================================

// NewResponder builds the responder named in cfg.Responder.
func NewResponder(cfg config.ServerConfig) (Responder, error) {
	switch strings.ToLower(cfg.Responder) {
	case "", "echo":
		return EchoResponder{}, nil
	case "ollama":
		client := ollama.NewClientWithConfig(&ollama.ClientConfig{
			BaseURL:      cfg.OllamaURL,
			DefaultModel: cfg.OllamaModel,
		})
		return NewOllamaResponder(client, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unknown responder %q (want echo or ollama)", cfg.Responder)
	}
}
