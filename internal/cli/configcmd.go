// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// configcmd.go - Configuration management command.
//
// Examples:
//
//	chatterm config                 Show the effective configuration
//	chatterm config path            Print the config file location
//	chatterm config init [--force]  Write a default config file
//	chatterm config set ui.markdown false
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/chatterm/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(_ context.Context, env *Env, args Args) error {
	path := args.ConfigPath
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		path = p
	}

	switch args.Subcommand {
	case "show":
		fmt.Fprint(env.Stdout, env.Config.String())
		return nil

	case "path":
		fmt.Fprintln(env.Stdout, path)
		return nil

	case "init":
		if _, err := os.Stat(path); err == nil && !args.Force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.SaveTOML(config.Default(), path); err != nil {
			return err
		}
		if !args.Quiet {
			fmt.Fprintf(env.Stdout, "Wrote %s\n", path)
		}
		return nil

	case "set":
		return setConfigValue(env, args, path)

	case "keys":
		fmt.Fprintln(env.Stdout, strings.Join(config.Keys(), "\n"))
		return nil

	default:
		return fmt.Errorf("%w: unknown config subcommand %q (show, path, init, set, keys)", ErrUsage, args.Subcommand)
	}
}

// setConfigValue updates one key in the file at path. Environment
// overrides are deliberately not loaded so they never end up on disk.
func setConfigValue(env *Env, args Args, path string) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return fmt.Errorf("%w: config set <key> <value>", ErrUsage)
	}

	cfg := config.Default()
	if err := config.LoadTOML(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return err
	}

	env.Logger.Info().Str("key", args.ConfigKey).Str("path", path).Msg("CONFIG_SET")
	if !args.Quiet {
		fmt.Fprintf(env.Stdout, "%s = %s\n", args.ConfigKey, args.ConfigVal)
	}
	return nil
}
