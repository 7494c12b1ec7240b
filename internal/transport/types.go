// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transport

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatRequest is the request body for POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the success body of POST /chat. Response is nil when the
// field is missing or null.
type ChatResponse struct {
	Response  *string `json:"response"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// ErrorResponse is the failure body returned by the backend.
// Detail is left raw because validation failures may carry a list
// instead of a string.
type ErrorResponse struct {
	Error     string `json:"error,omitempty"`
	Detail    any    `json:"detail,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// DetailText returns Detail when it is a non-empty string.
func (r *ErrorResponse) DetailText() string {
	if s, ok := r.Detail.(string); ok {
		return s
	}
	return ""
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
}
