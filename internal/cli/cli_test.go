// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		cmd  Command
		want func(t *testing.T, a Args)
	}{
		{"no args", nil, CmdTUI, nil},
		{"tui", []string{"tui"}, CmdTUI, nil},
		{"ask", []string{"ask", "hello", "there"}, CmdAsk, func(t *testing.T, a Args) {
			if a.Query != "hello there" {
				t.Errorf("Query = %q, want %q", a.Query, "hello there")
			}
		}},
		{"ask raw", []string{"ask", "--raw", "hi"}, CmdAsk, func(t *testing.T, a Args) {
			if !a.Raw || a.Query != "hi" {
				t.Errorf("Raw = %v Query = %q, want true \"hi\"", a.Raw, a.Query)
			}
		}},
		{"bare words become ask", []string{"what", "is", "go"}, CmdAsk, func(t *testing.T, a Args) {
			if a.Query != "what is go" {
				t.Errorf("Query = %q, want %q", a.Query, "what is go")
			}
		}},
		{"chat", []string{"chat"}, CmdChat, nil},
		{"status alias", []string{"s"}, CmdStatus, nil},
		{"status json", []string{"--json", "status"}, CmdStatus, func(t *testing.T, a Args) {
			if !a.JSON {
				t.Error("JSON = false, want true")
			}
		}},
		{"serve flags", []string{"serve", "--addr", ":9000", "--responder=ollama", "-m", "tiny"}, CmdServe, func(t *testing.T, a Args) {
			if a.Addr != ":9000" || a.Responder != "ollama" || a.OllamaModel != "tiny" {
				t.Errorf("serve args = %+v", a)
			}
		}},
		{"config default", []string{"config"}, CmdConfig, func(t *testing.T, a Args) {
			if a.Subcommand != "show" {
				t.Errorf("Subcommand = %q, want show", a.Subcommand)
			}
		}},
		{"config set", []string{"config", "set", "api.base_url", "http://x:1"}, CmdConfig, func(t *testing.T, a Args) {
			if a.Subcommand != "set" || a.ConfigKey != "api.base_url" || a.ConfigVal != "http://x:1" {
				t.Errorf("config args = %+v", a)
			}
		}},
		{"config init force", []string{"config", "init", "--force"}, CmdConfig, func(t *testing.T, a Args) {
			if !a.Force {
				t.Error("Force = false, want true")
			}
		}},
		{"version flag", []string{"--version"}, CmdVersion, nil},
		{"help flag", []string{"-h"}, CmdHelp, nil},
		{"global flags", []string{"--api-url=http://b:1", "--config", "/tmp/c.toml", "-v", "--no-color", "status"}, CmdStatus, func(t *testing.T, a Args) {
			if a.APIURL != "http://b:1" {
				t.Errorf("APIURL = %q", a.APIURL)
			}
			if a.ConfigPath != "/tmp/c.toml" {
				t.Errorf("ConfigPath = %q", a.ConfigPath)
			}
			if a.LogLevel != "debug" {
				t.Errorf("LogLevel = %q, want debug (implied by -v)", a.LogLevel)
			}
			if !a.NoColor {
				t.Error("NoColor = false, want true")
			}
		}},
		{"explicit level beats verbose", []string{"-v", "--log-level", "warn"}, CmdTUI, func(t *testing.T, a Args) {
			if a.LogLevel != "warn" {
				t.Errorf("LogLevel = %q, want warn", a.LogLevel)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := Parse(tt.argv)
			if cmd != tt.cmd {
				t.Fatalf("Parse(%v) command = %v, want %v", tt.argv, cmd, tt.cmd)
			}
			if tt.want != nil {
				tt.want(t, args)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	for cmd, want := range map[Command]string{CmdTUI: "tui", CmdAsk: "ask", CmdServe: "serve", CmdConfig: "config"} {
		if got := cmd.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", cmd, got, want)
		}
	}
}

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"set", "--json", "key", "--name=value", "-x", "1", "--", "--literal"}, "json")

	if got := p.Subcommand(); got != "set" {
		t.Errorf("Subcommand() = %q, want set", got)
	}
	if !p.BoolFlag("json") {
		t.Error("BoolFlag(json) = false, want true")
	}
	if got := p.Flag("name"); got != "value" {
		t.Errorf("Flag(name) = %q, want value", got)
	}
	if got := p.Flag("missing", "x"); got != "1" {
		t.Errorf("Flag(missing, x) = %q, want 1", got)
	}
	if got, want := p.PositionalFrom(1), []string{"key", "--literal"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PositionalFrom(1) = %v, want %v", got, want)
	}
	if got := p.Positional(9); got != "" {
		t.Errorf("Positional(9) = %q, want empty", got)
	}
	if p.PositionalCount() != 3 {
		t.Errorf("PositionalCount() = %d, want 3", p.PositionalCount())
	}
}

func TestArgParserTrailingFlagIsBool(t *testing.T) {
	p := NewArgParser([]string{"init", "--force"})
	if !p.BoolFlag("force") {
		t.Error("trailing --force should be treated as a bool flag")
	}
}

// =============================================================================
// OUTPUT TESTS
// =============================================================================

func TestPrintUsageMentionsCommands(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)
	for _, word := range []string{"ask", "chat", "status", "serve", "config", Version} {
		if !strings.Contains(buf.String(), word) {
			t.Errorf("usage missing %q", word)
		}
	}
}

func TestJSONResponse(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONErrorResponse("ask", nil, "boom").Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"success": false`) || !strings.Contains(out, `"error": "boom"`) {
		t.Errorf("unexpected envelope: %s", out)
	}

	buf.Reset()
	_ = NewJSONResponse("status", map[string]int{"n": 1}).Write(&buf)
	if !strings.Contains(buf.String(), `"error": null`) {
		t.Errorf("success envelope should carry a null error: %s", buf.String())
	}
}
