// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

// Connectivity is the state shown by the status indicator.
type Connectivity int

const (
	// Unknown is the state before the first health check completes.
	Unknown Connectivity = iota
	Connected
	Processing
	Error
)

// Default labels for each state.
const (
	LabelChecking     = "Checking..."
	LabelConnected    = "Connected"
	LabelProcessing   = "Processing..."
	LabelUnavailable  = "Service Unavailable"
	LabelConnectError = "Connection Failed"
)

// String returns the string representation of the state.
func (c Connectivity) String() string {
	switch c {
	case Connected:
		return "connected"
	case Processing:
		return "processing"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultLabel returns the label used when no more specific one is known.
func (c Connectivity) DefaultLabel() string {
	switch c {
	case Connected:
		return LabelConnected
	case Processing:
		return LabelProcessing
	case Error:
		return LabelConnectError
	default:
		return LabelChecking
	}
}

// Icon returns an ASCII indicator for the state.
func (c Connectivity) Icon() string {
	switch c {
	case Connected:
		return "[OK]"
	case Processing:
		return "[*]"
	case Error:
		return "[X]"
	default:
		return "[ ]"
	}
}
