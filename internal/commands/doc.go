// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the line chat.
//
// Input starting with "/" is looked up in a Registry instead of being sent
// to the backend. Commands carry their own handler, so the package knows
// nothing about what a command does.
//
// # Usage
//
//	reg := commands.NewRegistry()
//	reg.Register(&commands.Command{
//	    Name:        "/status",
//	    Aliases:     []string{"/s"},
//	    Description: "Check backend health",
//	    Handler:     func(ctx context.Context, args []string) (bool, error) { ... },
//	})
//
//	if res := commands.NewParser(reg).Parse(input); res.IsCommand {
//	    quit, err := res.Execute(ctx)
//	}
package commands
