// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"github.com/jeranaias/chatterm/internal/model"
	"github.com/jeranaias/chatterm/internal/status"
)

// State is the conversation state for one session.
// The Controller writes History and the processing flag; the health
// monitor writes only connectivity through Status.
type State struct {
	History *model.Store
	Status  *status.Indicator
}

// NewState creates an empty session state.
func NewState() *State {
	return &State{
		History: model.NewStore(),
		Status:  status.NewIndicator(),
	}
}

// Processing reports whether a send is in flight.
func (s *State) Processing() bool {
	return s.Status.Processing()
}
