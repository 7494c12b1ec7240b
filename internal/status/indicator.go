// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"sync"

	"github.com/jeranaias/chatterm/internal/transport"
)

// Indicator holds the connectivity shown to the user.
//
// The processing flag takes precedence over everything else: while it is
// set, Current reports Processing and health results are dropped.
type Indicator struct {
	mu         sync.RWMutex
	state      Connectivity
	label      string
	processing bool
}

// NewIndicator creates an indicator in the Unknown state.
func NewIndicator() *Indicator {
	return &Indicator{state: Unknown, label: LabelChecking}
}

// Current returns the connectivity to display.
func (i *Indicator) Current() Connectivity {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.processing {
		return Processing
	}
	return i.state
}

// Label returns the text to display next to the indicator.
func (i *Indicator) Label() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.processing {
		return LabelProcessing
	}
	return i.label
}

// Processing reports whether a send is in flight.
func (i *Indicator) Processing() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.processing
}

// SetProcessing marks the start or end of a send.
func (i *Indicator) SetProcessing(processing bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.processing = processing
}

// ApplyHealth records a health result.
// Returns false if the result was discarded because a send is in flight.
func (i *Indicator) ApplyHealth(r Result) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.processing {
		return false
	}
	i.state = r.Connectivity
	i.label = r.Label
	return true
}

// ReportSend records the outcome of a chat exchange.
// A rejected send still proves the backend is reachable.
func (i *Indicator) ReportSend(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	switch {
	case err == nil, transport.IsRejected(err):
		i.state, i.label = Connected, LabelConnected
	default:
		i.state, i.label = Error, LabelConnectError
	}
}
