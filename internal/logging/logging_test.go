// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/chatterm/internal/config"
)

func TestNew_WriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closeFn()

	logger.Debug().Msg("HIDDEN")
	logger.Info().Str("id", "msg_1").Msg("CHAT_SEND")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1 (debug filtered): %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "CHAT_SEND" {
		t.Errorf("message = %v, want CHAT_SEND", entry["message"])
	}
	if entry["id"] != "msg_1" {
		t.Errorf("id = %v, want msg_1", entry["id"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("log entry has no timestamp")
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "chatty", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug().Msg("debug")
	logger.Info().Msg("info")

	if strings.Contains(buf.String(), `"message":"debug"`) {
		t.Error("debug line written at fallback level")
	}
	if !strings.Contains(buf.String(), `"message":"info"`) {
		t.Error("info line missing at fallback level")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")
	logger, closeFn, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info().Msg("HEALTH_CHECK")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "HEALTH_CHECK") {
		t.Errorf("log file = %q, want HEALTH_CHECK entry", data)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "warn"
	cfg.Log.File = "/tmp/x.log"

	opts := FromConfig(cfg)
	if opts.Level != "warn" || opts.File != "/tmp/x.log" {
		t.Errorf("FromConfig() = %+v", opts)
	}
}
