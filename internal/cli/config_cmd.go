// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration inspection for the planetchat CLI.
//
// Command: config [show|path]
package cli

import (
	"fmt"

	"github.com/jeranaias/planetchat/internal/config"
)

// HandleConfigCommand handles the "config" command.
func HandleConfigCommand(args Args) error {
	switch args.Subcommand {
	case "path":
		path := args.ConfigPath
		if path == "" {
			path = config.DefaultPath()
		}
		fmt.Println(path)
		return nil

	case "", "show":
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		printConfig(cfg)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand: %s (try show, path)", args.Subcommand)
	}
}

// printConfig writes the resolved configuration, including defaults and
// environment overrides, in config file syntax.
func printConfig(cfg *config.Config) {
	fmt.Println("[backend]")
	fmt.Printf("base_url = %q\n", cfg.Backend.BaseURL)
	fmt.Printf("timeout_seconds = %d\n", cfg.Backend.TimeoutSeconds)
	fmt.Println()
	fmt.Println("[storage]")
	fmt.Printf("backend = %q\n", cfg.Storage.Backend)
	fmt.Printf("dir = %q\n", cfg.StateDir())
	fmt.Println()
	fmt.Println("[ui]")
	fmt.Printf("reveal_interval_ms = %d\n", cfg.UI.RevealIntervalMs)
	fmt.Printf("glamour_style = %q\n", cfg.UI.GlamourStyle)
	fmt.Println()
	fmt.Println("[watch]")
	fmt.Printf("dir = %q\n", cfg.Watch.Dir)
	fmt.Printf("debounce_seconds = %d\n", cfg.Watch.DebounceSeconds)
}
