// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func testRegistry() (*Registry, *[]string) {
	var calls []string
	reg := NewRegistry()
	reg.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/exit", "/q"},
		Description: "Exit",
		MaxArgs:     -1,
		Handler: func(context.Context, []string) (bool, error) {
			calls = append(calls, "quit")
			return true, nil
		},
	})
	reg.Register(&Command{
		Name:        "/history",
		Aliases:     []string{"/h"},
		Description: "Show the conversation",
		Usage:       "/history [n]",
		MaxArgs:     1,
		Handler: func(_ context.Context, args []string) (bool, error) {
			calls = append(calls, "history:"+strings.Join(args, ","))
			return false, nil
		},
	})
	reg.Register(&Command{Name: "/debug", Hidden: true})
	return reg, &calls
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistryGet(t *testing.T) {
	reg, _ := testRegistry()

	tests := []struct {
		name string
		want string
	}{
		{"/quit", "/quit"},
		{"/EXIT", "/quit"},
		{"/h", "/history"},
		{"/nope", ""},
	}
	for _, tt := range tests {
		cmd := reg.Get(tt.name)
		got := ""
		if cmd != nil {
			got = cmd.Name
		}
		if got != tt.want {
			t.Errorf("Get(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRegistryAllSorted(t *testing.T) {
	reg, _ := testRegistry()
	var names []string
	for _, cmd := range reg.All() {
		names = append(names, cmd.Name)
	}
	want := []string{"/debug", "/history", "/quit"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("All() = %v, want %v", names, want)
	}
}

func TestRegistryComplete(t *testing.T) {
	reg, _ := testRegistry()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"/", []string{"/exit", "/h", "/history", "/q", "/quit"}},
		{"/q", []string{"/q", "/quit"}},
		{"/HI", []string{"/history"}},
		{"/de", nil},
		{"/history 3", nil},
		{"//", nil},
		{"hello", nil},
	}
	for _, tt := range tests {
		if got := reg.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}

func TestWriteHelpSkipsHidden(t *testing.T) {
	reg, _ := testRegistry()
	var buf bytes.Buffer
	reg.WriteHelp(&buf)

	out := buf.String()
	if !strings.Contains(out, "/history [n]") || !strings.Contains(out, "/quit") {
		t.Errorf("help missing commands:\n%s", out)
	}
	if strings.Contains(out, "/debug") {
		t.Errorf("help lists hidden command:\n%s", out)
	}
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParse(t *testing.T) {
	reg, _ := testRegistry()
	p := NewParser(reg)

	res := p.Parse("  hello there ")
	if res.IsCommand || res.RawInput != "hello there" {
		t.Errorf("Parse(plain) = %+v", res)
	}

	res = p.Parse("/h 5")
	if !res.IsCommand || res.Command == nil || res.Command.Name != "/history" {
		t.Fatalf("Parse(/h 5) = %+v", res)
	}
	if !reflect.DeepEqual(res.Args, []string{"5"}) {
		t.Errorf("Args = %v, want [5]", res.Args)
	}

	res = p.Parse("  //etc/hosts is what? ")
	if res.IsCommand || res.RawInput != "/etc/hosts is what?" {
		t.Errorf("Parse(//etc/hosts ...) = %+v, want message %q", res, "/etc/hosts is what?")
	}

	res = p.Parse("/missing")
	if !res.IsCommand || res.Command != nil || res.CommandName != "/missing" {
		t.Errorf("Parse(/missing) = %+v", res)
	}
}

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"/a b  c", []string{"/a", "b", "c"}},
		{`/a "b c" 'd e'`, []string{"/a", "b c", "d e"}},
		{`/a "say \"hi\""`, []string{"/a", `say "hi"`}},
		{"/a héllo wörld", []string{"/a", "héllo", "wörld"}},
		{"   ", nil},
	}
	for _, tt := range tests {
		if got := splitCommandLine(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitCommandLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExecute(t *testing.T) {
	reg, calls := testRegistry()
	p := NewParser(reg)
	ctx := context.Background()

	quit, err := p.Parse("/history 2").Execute(ctx)
	if quit || err != nil {
		t.Errorf("Execute(/history 2) = %v, %v", quit, err)
	}

	_, err = p.Parse("/history 1 2").Execute(ctx)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Execute(/history 1 2) error = %v, want ValidationError", err)
	}

	_, err = p.Parse("/nope").Execute(ctx)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Execute(/nope) error = %v, want ErrUnknownCommand", err)
	}

	quit, err = p.Parse("/q now please").Execute(ctx)
	if !quit || err != nil {
		t.Errorf("Execute(/q now please) = %v, %v, want true, nil", quit, err)
	}

	if quit, err := p.Parse("/debug").Execute(ctx); quit || err != nil {
		t.Errorf("command without handler = %v, %v", quit, err)
	}

	want := []string{"history:2", "quit"}
	if !reflect.DeepEqual(*calls, want) {
		t.Errorf("calls = %v, want %v", *calls, want)
	}
}

func TestIsCommand(t *testing.T) {
	if !IsCommand("  /help") || IsCommand("help") || IsCommand("") || IsCommand("//tmp") {
		t.Error("IsCommand misclassified input")
	}
}
