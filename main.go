// planetchat - chat with your PDF from the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/planetchat/internal/backend"
	"github.com/jeranaias/planetchat/internal/cli"
	"github.com/jeranaias/planetchat/internal/config"
	"github.com/jeranaias/planetchat/internal/session"
	"github.com/jeranaias/planetchat/internal/store"
	"github.com/jeranaias/planetchat/internal/ui/chat"
	"github.com/jeranaias/planetchat/internal/watch"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdAsk:
		err = cli.HandleAskCommand(args)
	case cli.CmdChat:
		err = cli.HandleChatCommand(args)
	case cli.CmdDocs:
		err = cli.HandleDocsCommand(args)
	case cli.CmdConfig:
		err = cli.HandleConfigCommand(args)
	case cli.CmdVersion:
		err = cli.HandleVersionCommand()
	case cli.CmdHelp:
		cli.PrintUsage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI assembles the session and starts the Bubble Tea program.
func runTUI(args cli.Args) error {
	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return err
	}
	if args.BaseURL != "" {
		cfg.Backend.BaseURL = args.BaseURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	// The terminal belongs to the TUI; logs go to a file in the state dir.
	restoreLog, err := redirectLog(cfg.StateDir())
	if err == nil {
		defer restoreLog()
	}

	kv, closeKV, err := cli.BuildKV(cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	client := backend.New(cfg.Backend.BaseURL).WithTimeout(cfg.Timeout())
	ctrl := session.NewController(client, store.New(kv))

	var drops <-chan string
	if cfg.WatchEnabled() {
		watcher, err := watch.New(cfg.Watch.Dir, cfg.Debounce())
		if err != nil {
			return fmt.Errorf("failed to create drop-folder watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.Watch.Dir, err)
		}
		defer watcher.Close()
		drops = watcher.Files()
	}

	model := chat.New(chat.Options{
		Controller:     ctrl,
		Timeout:        cfg.Timeout(),
		RevealInterval: cfg.RevealInterval(),
		GlamourStyle:   cfg.UI.GlamourStyle,
		Drops:          drops,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}

// redirectLog points the standard logger at a file so background failures
// (persistence, watcher) do not corrupt the TUI.
func redirectLog(stateDir string) (func(), error) {
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(stateDir, "planetchat.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
