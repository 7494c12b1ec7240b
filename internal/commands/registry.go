// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Handler runs a command. It reports whether the session should end.
type Handler func(ctx context.Context, args []string) (quit bool, err error)

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/history [n]")
	Usage string

	// MaxArgs limits positional arguments; negative means unlimited.
	MaxArgs int

	Handler Handler

	// Hidden commands don't appear in help
	Hidden bool
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands. Lookups are case-insensitive.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
}

// Register adds a command to the registry, replacing any command with the
// same name.
func (r *Registry) Register(cmd *Command) {
	r.commands[strings.ToLower(cmd.Name)] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[strings.ToLower(alias)] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	name = strings.ToLower(name)
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Complete returns command names and aliases starting with prefix, sorted.
// Input that is not a command, or already has arguments, has no completions.
func (r *Registry) Complete(prefix string) []string {
	if !IsCommand(prefix) || strings.ContainsAny(strings.TrimSpace(prefix), " \t") {
		return nil
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	var out []string
	for name, cmd := range r.commands {
		if !cmd.Hidden && strings.HasPrefix(name, prefix) {
			out = append(out, cmd.Name)
		}
	}
	for alias, cmd := range r.aliases {
		if !cmd.Hidden && strings.HasPrefix(alias, prefix) && alias != strings.ToLower(cmd.Name) {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// WriteHelp prints one line per visible command.
func (r *Registry) WriteHelp(w io.Writer) {
	width := 0
	for _, cmd := range r.All() {
		if l := len(usageOf(cmd)); l > width {
			width = l
		}
	}
	for _, cmd := range r.All() {
		if cmd.Hidden {
			continue
		}
		fmt.Fprintf(w, "  %-*s  %s\n", width, usageOf(cmd), cmd.Description)
	}
}

func usageOf(cmd *Command) string {
	if cmd.Usage != "" {
		return cmd.Usage
	}
	return cmd.Name
}
