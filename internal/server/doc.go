// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server implements the chat backend that chatterm talks to.
//
// It is mainly a development companion: run `chatterm serve` and point the
// TUI at it without any other service. The wire contract is the one the
// client expects:
//
//   - GET  /        API information
//   - GET  /health  {"status":"healthy","timestamp":...}
//   - POST /chat    {"message":...} -> {"response":...,"timestamp":...}
//   - GET  /stats   request counters
//
// Failures carry a "detail" field, which the client surfaces verbatim in its
// error notification.
//
// Replies come from a Responder. EchoResponder works offline; OllamaResponder
// forwards to a local Ollama server.
package server
