// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package status tracks backend connectivity for the chat client.
//
// A Monitor probes the backend health endpoint and turns the outcome into
// a Result. An Indicator holds the connectivity shown to the user. While a
// send is in flight the Indicator reports Processing and discards health
// results, so a periodic check can never hide the processing state.
package status
