// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/chatterm/internal/transport"
)

// DefaultInterval is the time between scheduled health checks.
const DefaultInterval = 30 * time.Second

// manualRefreshBurst bounds how many forced checks can run back to back.
const manualRefreshBurst = 2

// HealthChecker probes the backend. A nil error means healthy.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// Result is the outcome of a single health check.
type Result struct {
	Connectivity Connectivity
	Label        string
	Err          error
	CheckedAt    time.Time
}

// ResultFor maps a health check error to a Result.
func ResultFor(err error) Result {
	r := Result{Err: err, CheckedAt: time.Now()}
	switch {
	case err == nil:
		r.Connectivity, r.Label = Connected, LabelConnected
	case transport.IsRejected(err):
		r.Connectivity, r.Label = Error, LabelUnavailable
	default:
		r.Connectivity, r.Label = Error, LabelConnectError
	}
	return r
}

// Monitor runs health checks against the backend.
// Scheduling is left to the caller; the TUI drives it with tea.Tick.
type Monitor struct {
	checker HealthChecker

	mu       sync.RWMutex
	interval time.Duration
	manual   *rate.Limiter
}

// NewMonitor creates a monitor. A zero interval selects DefaultInterval.
func NewMonitor(checker HealthChecker, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		checker:  checker,
		interval: interval,
		manual:   rate.NewLimiter(rate.Every(5*time.Second), manualRefreshBurst),
	}
}

// Check performs one health check. It never fails; errors become an
// Error result.
func (m *Monitor) Check(ctx context.Context) Result {
	return ResultFor(m.checker.CheckHealth(ctx))
}

// Interval returns the time between scheduled checks.
func (m *Monitor) Interval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.interval
}

// SetInterval changes the schedule. It takes effect from the next tick.
func (m *Monitor) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interval = d
}

// AllowManual reports whether a user-forced check may run now.
func (m *Monitor) AllowManual() bool {
	return m.manual.Allow()
}
