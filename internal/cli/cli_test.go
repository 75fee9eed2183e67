// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, _ := Parse(nil)
	if cmd != CmdTUI {
		t.Errorf("Expected CmdTUI, got %v", cmd)
	}
}

func TestParseAskCommand(t *testing.T) {
	cmd, args := Parse([]string{"ask", "-f", "report.pdf", "what", "is", "this?"})
	if cmd != CmdAsk {
		t.Fatalf("Expected CmdAsk, got %v", cmd)
	}
	if args.File != "report.pdf" {
		t.Errorf("Expected file report.pdf, got %q", args.File)
	}
	if args.Query != "what is this?" {
		t.Errorf("Expected joined question, got %q", args.Query)
	}
}

func TestParseAskWithDocID(t *testing.T) {
	cmd, args := Parse([]string{"ask", "--doc", "4f9c21", "summarize"})
	if cmd != CmdAsk {
		t.Fatalf("Expected CmdAsk, got %v", cmd)
	}
	if args.DocID != "4f9c21" {
		t.Errorf("Expected doc ID 4f9c21, got %q", args.DocID)
	}
}

func TestParseDocsDelete(t *testing.T) {
	cmd, args := Parse([]string{"docs", "delete", "4f9c21"})
	if cmd != CmdDocs {
		t.Fatalf("Expected CmdDocs, got %v", cmd)
	}
	if args.Subcommand != "delete" {
		t.Errorf("Expected delete subcommand, got %q", args.Subcommand)
	}
	if args.DocID != "4f9c21" {
		t.Errorf("Expected doc ID positional, got %q", args.DocID)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := Parse([]string{"docs", "--json", "--base-url", "http://backend:9000", "-q"})
	if cmd != CmdDocs {
		t.Fatalf("Expected CmdDocs, got %v", cmd)
	}
	if !args.JSON || !args.Quiet {
		t.Error("Expected --json and -q to be set")
	}
	if args.BaseURL != "http://backend:9000" {
		t.Errorf("Unexpected base URL: %q", args.BaseURL)
	}
}

func TestParseVersionAliases(t *testing.T) {
	for _, argv := range [][]string{{"version"}, {"-v"}, {"--version"}} {
		if cmd, _ := Parse(argv); cmd != CmdVersion {
			t.Errorf("Parse(%v) != CmdVersion", argv)
		}
	}
}

func TestParseUnknownCommandShowsHelp(t *testing.T) {
	if cmd, _ := Parse([]string{"frobnicate"}); cmd != CmdHelp {
		t.Error("Unknown command must fall back to help")
	}
}

func TestParseLeadingFlagsLaunchTUI(t *testing.T) {
	cmd, args := Parse([]string{"--config", "/tmp/alt.toml"})
	if cmd != CmdTUI {
		t.Fatalf("Expected CmdTUI, got %v", cmd)
	}
	if args.ConfigPath != "/tmp/alt.toml" {
		t.Errorf("Expected config path override, got %q", args.ConfigPath)
	}
}

func TestArgParserFormats(t *testing.T) {
	p := NewArgParser([]string{"show", "--lines", "50", "--since=2024-01-01", "--json", "-q"})

	if p.Subcommand() != "show" {
		t.Errorf("Unexpected subcommand: %q", p.Subcommand())
	}
	if p.Flag("lines") != "50" {
		t.Errorf("Unexpected --lines: %q", p.Flag("lines"))
	}
	if p.Flag("since") != "2024-01-01" {
		t.Errorf("Unexpected --since: %q", p.Flag("since"))
	}
	if !p.BoolFlag("json") || !p.BoolFlag("q") {
		t.Error("Boolean flags not detected")
	}
	if p.HasFlag("missing") {
		t.Error("HasFlag must be false for absent flags")
	}
}

func TestArgParserExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--json=false", "--quiet=true"})
	if p.BoolFlag("json") {
		t.Error("--json=false must parse as false")
	}
	if !p.BoolFlag("quiet") {
		t.Error("--quiet=true must parse as true")
	}
}

func TestJoinPositionalFrom(t *testing.T) {
	p := NewArgParser([]string{"what", "is", "chapter", "3", "about?"})
	if got := p.JoinPositionalFrom(0); got != "what is chapter 3 about?" {
		t.Errorf("Unexpected join: %q", got)
	}
	if got := p.JoinPositionalFrom(10); got != "" {
		t.Errorf("Out-of-range join must be empty, got %q", got)
	}
}
