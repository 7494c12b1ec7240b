// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transport provides the HTTP client for the chat backend.
//
// The backend exposes two endpoints:
//
//   - POST /chat   {"message": "..."} -> {"response": "..."}
//   - GET  /health 2xx means healthy
//
// Every failure is returned as a *TransportError whose Kind is either
// KindUnreachable (network, DNS, timeout) or KindRejected (the backend
// answered with a non-2xx status). Rejected errors carry a Detail suitable
// for showing to the user.
//
// The client never retries. Retry policy, if any, belongs to the caller.
//
// Example:
//
//	client := transport.NewClientWithConfig(&transport.ClientConfig{
//	    BaseURL: "http://localhost:8000",
//	})
//	reply, err := client.Send(ctx, "hello")
//	if transport.IsRejected(err) {
//	    fmt.Println(transport.DetailOf(err))
//	}
package transport
