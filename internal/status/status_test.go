// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jeranaias/chatterm/internal/transport"
)

// scriptedChecker returns the queued errors in order.
type scriptedChecker struct {
	results []error
	calls   int
}

func (s *scriptedChecker) CheckHealth(ctx context.Context) error {
	err := s.results[s.calls%len(s.results)]
	s.calls++
	return err
}

var (
	errRejected    = &transport.TransportError{Kind: transport.KindRejected, Detail: "503", Status: 503}
	errUnreachable = &transport.TransportError{Kind: transport.KindUnreachable, Detail: transport.UnreachableDetail}
)

// =============================================================================
// RESULT MAPPING
// =============================================================================

func TestResultFor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantConn  Connectivity
		wantLabel string
	}{
		{"healthy", nil, Connected, LabelConnected},
		{"non-success status", errRejected, Error, LabelUnavailable},
		{"unreachable", errUnreachable, Error, LabelConnectError},
		{"foreign error", errors.New("boom"), Error, LabelConnectError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := ResultFor(tc.err)
			if r.Connectivity != tc.wantConn {
				t.Errorf("Connectivity = %v, want %v", r.Connectivity, tc.wantConn)
			}
			if r.Label != tc.wantLabel {
				t.Errorf("Label = %q, want %q", r.Label, tc.wantLabel)
			}
			if r.CheckedAt.IsZero() {
				t.Error("CheckedAt should be set")
			}
		})
	}
}

func TestConnectivity_Strings(t *testing.T) {
	tests := []struct {
		c         Connectivity
		wantStr   string
		wantLabel string
	}{
		{Unknown, "unknown", LabelChecking},
		{Connected, "connected", LabelConnected},
		{Processing, "processing", LabelProcessing},
		{Error, "error", LabelConnectError},
	}

	for _, tc := range tests {
		if got := tc.c.String(); got != tc.wantStr {
			t.Errorf("String() = %q, want %q", got, tc.wantStr)
		}
		if got := tc.c.DefaultLabel(); got != tc.wantLabel {
			t.Errorf("DefaultLabel() = %q, want %q", got, tc.wantLabel)
		}
		if tc.c.Icon() == "" {
			t.Errorf("%v.Icon() is empty", tc.c)
		}
	}
}

// =============================================================================
// INDICATOR TESTS
// =============================================================================

func TestIndicator_StartsChecking(t *testing.T) {
	ind := NewIndicator()
	if ind.Current() != Unknown {
		t.Errorf("Current() = %v, want %v", ind.Current(), Unknown)
	}
	if ind.Label() != LabelChecking {
		t.Errorf("Label() = %q, want %q", ind.Label(), LabelChecking)
	}
}

func TestIndicator_ConsecutiveChecksAreIndependent(t *testing.T) {
	checker := &scriptedChecker{results: []error{errUnreachable, nil, errRejected}}
	mon := NewMonitor(checker, time.Second)
	ind := NewIndicator()

	want := []struct {
		conn  Connectivity
		label string
	}{
		{Error, LabelConnectError},
		{Connected, LabelConnected},
		{Error, LabelUnavailable},
	}

	for i, w := range want {
		if !ind.ApplyHealth(mon.Check(context.Background())) {
			t.Fatalf("check %d: ApplyHealth discarded result while idle", i)
		}
		if ind.Current() != w.conn {
			t.Errorf("check %d: Current() = %v, want %v", i, ind.Current(), w.conn)
		}
		if ind.Label() != w.label {
			t.Errorf("check %d: Label() = %q, want %q", i, ind.Label(), w.label)
		}
	}
}

func TestIndicator_ProcessingMasksHealth(t *testing.T) {
	checker := &scriptedChecker{results: []error{nil, errUnreachable, errRejected}}
	mon := NewMonitor(checker, time.Second)
	ind := NewIndicator()
	ind.SetProcessing(true)

	for i := 0; i < 3; i++ {
		if ind.ApplyHealth(mon.Check(context.Background())) {
			t.Errorf("check %d: ApplyHealth accepted result while processing", i)
		}
		if ind.Current() != Processing {
			t.Errorf("check %d: Current() = %v, want %v", i, ind.Current(), Processing)
		}
		if ind.Label() != LabelProcessing {
			t.Errorf("check %d: Label() = %q, want %q", i, ind.Label(), LabelProcessing)
		}
	}

	ind.SetProcessing(false)
	if ind.Current() != Unknown {
		t.Errorf("after processing Current() = %v, want results dropped (%v)", ind.Current(), Unknown)
	}
}

func TestIndicator_ReportSend(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantConn  Connectivity
		wantLabel string
	}{
		{"success", nil, Connected, LabelConnected},
		{"rejected", errRejected, Connected, LabelConnected},
		{"unreachable", errUnreachable, Error, LabelConnectError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ind := NewIndicator()
			ind.SetProcessing(true)
			ind.ReportSend(tc.err)
			ind.SetProcessing(false)

			if ind.Current() != tc.wantConn {
				t.Errorf("Current() = %v, want %v", ind.Current(), tc.wantConn)
			}
			if ind.Label() != tc.wantLabel {
				t.Errorf("Label() = %q, want %q", ind.Label(), tc.wantLabel)
			}
		})
	}
}

// =============================================================================
// MONITOR TESTS
// =============================================================================

func TestMonitor_AgainstServer(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	client := transport.NewClientWithConfig(&transport.ClientConfig{BaseURL: srv.URL})
	mon := NewMonitor(client, 0)

	if r := mon.Check(context.Background()); r.Connectivity != Connected {
		t.Errorf("Check() = %v, want %v", r.Connectivity, Connected)
	}

	status.Store(http.StatusInternalServerError)
	r := mon.Check(context.Background())
	if r.Connectivity != Error || r.Label != LabelUnavailable {
		t.Errorf("Check() = %v %q, want %v %q", r.Connectivity, r.Label, Error, LabelUnavailable)
	}

	srv.Close()
	r = mon.Check(context.Background())
	if r.Connectivity != Error || r.Label != LabelConnectError {
		t.Errorf("Check() = %v %q, want %v %q", r.Connectivity, r.Label, Error, LabelConnectError)
	}
}

func TestMonitor_Interval(t *testing.T) {
	mon := NewMonitor(&scriptedChecker{results: []error{nil}}, 0)
	if mon.Interval() != DefaultInterval {
		t.Errorf("Interval() = %v, want %v", mon.Interval(), DefaultInterval)
	}

	mon.SetInterval(10 * time.Second)
	if mon.Interval() != 10*time.Second {
		t.Errorf("Interval() = %v, want 10s", mon.Interval())
	}

	mon.SetInterval(-1)
	if mon.Interval() != 10*time.Second {
		t.Errorf("SetInterval(-1) changed Interval() to %v", mon.Interval())
	}
}

func TestMonitor_AllowManualIsRateLimited(t *testing.T) {
	mon := NewMonitor(&scriptedChecker{results: []error{nil}}, 0)

	allowed := 0
	for i := 0; i < 10; i++ {
		if mon.AllowManual() {
			allowed++
		}
	}
	if allowed != manualRefreshBurst {
		t.Errorf("allowed %d manual checks in a burst, want %d", allowed, manualRefreshBurst)
	}
}
