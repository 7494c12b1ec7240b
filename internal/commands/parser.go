// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnknownCommand is returned when a slash command is not registered.
var ErrUnknownCommand = errors.New("unknown command")

// escapePrefix starts a chat message that itself begins with "/".
const escapePrefix = "//"

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing user input.
type ParseResult struct {
	// IsCommand is true if the input starts with /
	IsCommand bool

	// Command is the matched command (nil if not found)
	Command *Command

	// CommandName is the raw command name (e.g., "/help")
	CommandName string

	// Args are the parsed arguments
	Args []string

	// RawInput is the trimmed input. For an escaped message ("//...") it
	// holds the message with the escape slash removed.
	RawInput string
}

// Execute validates the arguments and runs the matched command.
func (r ParseResult) Execute(ctx context.Context) (bool, error) {
	if r.Command == nil {
		return false, fmt.Errorf("%w: %s (try /help, or start with // to send it as a message)", ErrUnknownCommand, r.CommandName)
	}
	if err := ValidateArgs(r.Command, r.Args); err != nil {
		return false, err
	}
	if r.Command.Handler == nil {
		return false, nil
	}
	return r.Command.Handler(ctx, r.Args)
}

// =============================================================================
// PARSER
// =============================================================================

// Parser handles parsing of slash commands and their arguments.
type Parser struct {
	registry *Registry
}

// NewParser creates a new parser with the given registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse parses user input. IsCommand is false if the input doesn't start
// with /, in which case RawInput is a chat message. A leading "//" sends the
// rest of the line, starting with a single /, as a message.
func (p *Parser) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	result := ParseResult{RawInput: input}

	if strings.HasPrefix(input, escapePrefix) {
		result.RawInput = input[1:]
		return result
	}
	if !strings.HasPrefix(input, "/") {
		return result
	}
	result.IsCommand = true

	parts := splitCommandLine(input)
	if len(parts) == 0 {
		return result
	}
	result.CommandName = parts[0]
	if len(parts) > 1 {
		result.Args = parts[1:]
	}
	result.Command = p.registry.Get(result.CommandName)
	return result
}

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// splitCommandLine splits a command line into tokens, respecting single and
// double quotes.
func splitCommandLine(input string) []string {
	var tokens []string
	var current strings.Builder
	var inSingleQuote, inDoubleQuote bool

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		char := runes[i]

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote

		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote

		case char == '\\' && i+1 < len(runes) && (inDoubleQuote || inSingleQuote):
			next := runes[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				current.WriteRune(next)
				i++
			} else {
				current.WriteRune(char)
			}

		case unicode.IsSpace(char) && !inSingleQuote && !inDoubleQuote:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// IsCommand returns true if the input appears to be a command.
func IsCommand(input string) bool {
	input = strings.TrimSpace(input)
	return strings.HasPrefix(input, "/") && !strings.HasPrefix(input, escapePrefix)
}

// ValidateArgs checks args against the command's argument limit.
func ValidateArgs(cmd *Command, args []string) error {
	if cmd == nil || cmd.MaxArgs < 0 || len(args) <= cmd.MaxArgs {
		return nil
	}
	return &ValidationError{
		Command:  cmd.Name,
		Message:  "too many arguments",
		Got:      strings.Join(args, " "),
		Expected: usageOf(cmd),
	}
}

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError represents an argument validation error.
type ValidationError struct {
	Command  string
	Message  string
	Got      string
	Expected string
}

func (e *ValidationError) Error() string {
	msg := e.Command + ": " + e.Message
	if e.Got != "" {
		msg += " (got: " + e.Got + ")"
	}
	if e.Expected != "" {
		msg += ", usage: " + e.Expected
	}
	return msg
}
