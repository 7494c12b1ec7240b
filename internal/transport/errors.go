// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes transport failures.
type ErrorKind int

const (
	// KindUnreachable means no HTTP response was received.
	KindUnreachable ErrorKind = iota
	// KindRejected means the backend answered with a non-success status.
	KindRejected
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

const (
	// GenericDetail is used when a rejected response carries no usable detail.
	GenericDetail = "Failed to send message"

	// UnreachableDetail is shown when the backend cannot be reached.
	UnreachableDetail = "Unable to reach the chat service. Check that the backend is running."

	// TimeoutDetail is shown when the backend does not answer in time.
	TimeoutDetail = "The chat service did not respond in time."
)

// TransportError represents a failed exchange with the backend.
type TransportError struct {
	Kind ErrorKind

	// Detail is the user-facing message.
	Detail string

	// Status is the HTTP status code for rejected requests, 0 otherwise.
	Status int

	Cause error
}

func (e *TransportError) Error() string {
	msg := e.Kind.String() + ": " + e.Detail
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// unreachable wraps a network-level failure.
func unreachable(cause error) *TransportError {
	detail := UnreachableDetail
	if isTimeoutCause(cause) {
		detail = TimeoutDetail
	}
	return &TransportError{Kind: KindUnreachable, Detail: detail, Cause: cause}
}

// rejected builds a rejection with the given status and detail.
func rejected(status int, detail string) *TransportError {
	if detail == "" {
		detail = GenericDetail
	}
	return &TransportError{Kind: KindRejected, Detail: detail, Status: status}
}

func isTimeoutCause(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// =============================================================================
// PREDICATES
// =============================================================================

// IsUnreachable checks if an error indicates the backend could not be reached.
func IsUnreachable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind == KindUnreachable
	}
	return false
}

// IsRejected checks if an error is a non-success response from the backend.
func IsRejected(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind == KindRejected
	}
	return false
}

// IsTimeout checks if an error is an unreachable error caused by a deadline.
func IsTimeout(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind == KindUnreachable && isTimeoutCause(te.Cause)
	}
	return false
}

// DetailOf returns the user-facing detail for err.
// Errors that did not come from this package map to GenericDetail.
func DetailOf(err error) string {
	if err == nil {
		return ""
	}
	var te *TransportError
	if errors.As(err, &te) && te.Detail != "" {
		return te.Detail
	}
	return GenericDetail
}
