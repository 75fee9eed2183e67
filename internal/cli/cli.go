// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for planetchat.
package cli

import (
	"fmt"
	"os"
	"runtime"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdDocs
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string // --config PATH
	BaseURL    string // --base-url URL (overrides config)
	Quiet      bool   // -q, --quiet
	JSON       bool   // --json

	// Command-specific
	Query      string // question text for ask
	File       string // -f, --file PATH (PDF to upload)
	DocID      string // --doc ID (existing document handle)
	Subcommand string

	// Raw args remaining after the command word
	Raw []string
}

const usageText = `planetchat - chat with your PDF from the terminal

Upload a PDF to a planetchat backend and ask questions about it. Answers
are grounded in the document and rendered as markdown.

Usage:
  planetchat                       Start the TUI (default)
  planetchat ask "question"        Ask a single question
  planetchat chat                  Interactive REPL chat
  planetchat docs [list|delete]    Manage uploaded documents
  planetchat config [show|path]    Configuration
  planetchat version               Show version
  planetchat help                  Show this help

Ask:
  planetchat ask -f report.pdf "What is the conclusion?"
  planetchat ask --doc 4f9c21 "Summarize section 3"
  cat question.txt | planetchat ask -f report.pdf

Docs:
  planetchat docs                  List uploaded documents
  planetchat docs delete <id>      Delete a document
    --json                         Machine-readable output

Global flags:
  --config PATH     Use an alternate config file
  --base-url URL    Backend base URL (overrides config)
  -q, --quiet       Minimal output
  --json            JSON output where supported

Environment:
  PLANETCHAT_BASE_URL    Backend base URL
  PLANETCHAT_STORAGE     Session storage backend (file|sqlite)
  PLANETCHAT_STATE_DIR   Session state directory
`

// Parse interprets os.Args-style arguments (without the program name).
func Parse(argv []string) (Command, Args) {
	args := Args{}

	if len(argv) == 0 {
		return CmdTUI, args
	}

	command := argv[0]
	rest := argv[1:]

	parser := NewArgParser(rest)
	args.ConfigPath = parser.Flag("config")
	args.BaseURL = parser.Flag("base-url")
	args.Quiet = parser.BoolFlag("quiet", "q")
	args.JSON = parser.BoolFlag("json")
	args.Raw = rest

	switch command {
	case "ask":
		args.File = parser.Flag("file", "f")
		args.DocID = parser.Flag("doc")
		args.Query = parser.JoinPositionalFrom(0)
		return CmdAsk, args

	case "chat":
		return CmdChat, args

	case "docs", "documents":
		args.Subcommand = parser.Subcommand()
		args.DocID = parser.Positional(1)
		return CmdDocs, args

	case "config":
		args.Subcommand = parser.Subcommand()
		return CmdConfig, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		// Leading flags without a command still launch the TUI.
		if command[0] == '-' {
			parser = NewArgParser(argv)
			args.ConfigPath = parser.Flag("config")
			args.BaseURL = parser.Flag("base-url")
			args.Quiet = parser.BoolFlag("quiet", "q")
			args.Raw = argv
			return CmdTUI, args
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		return CmdHelp, args
	}
}

// HandleVersionCommand prints version information.
func HandleVersionCommand() error {
	fmt.Printf("planetchat %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}

// PrintUsage prints the usage text.
func PrintUsage() {
	fmt.Print(usageText)
}
