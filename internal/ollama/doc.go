// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama is a small non-streaming client for a local Ollama server.
//
// The dev backend (chatterm serve --responder ollama) uses it to answer
// /chat requests with a local model instead of echoing input back.
//
// # Usage
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
//	    BaseURL:      "http://127.0.0.1:11434",
//	    DefaultModel: "llama3.2",
//	})
//	resp, err := client.ChatWithOptions(ctx, "", []ollama.Message{
//	    ollama.NewSystemMessage(prompt),
//	    ollama.NewUserMessage("Hello"),
//	}, &ollama.Options{NumPredict: 500, Temperature: 0.7})
package ollama
