// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command for the planetchat CLI.
//
// Handles "planetchat ask", which binds a question to a document and
// prints the complete answer. With -f/--file the document is uploaded
// first; with --doc an already-uploaded document is reused.
//
// Examples:
//   planetchat ask -f report.pdf "What is the conclusion?"
//   planetchat ask --doc 4f9c21 "Summarize section 3"
//   cat q.txt | planetchat ask -f report.pdf
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/planetchat/internal/backend"
	"github.com/jeranaias/planetchat/internal/config"
	"github.com/jeranaias/planetchat/internal/render"
	"github.com/jeranaias/planetchat/internal/ui/styles"
)

var (
	noteStyle  = lipgloss.NewStyle().Foreground(styles.Cyan)
	errorStyle = lipgloss.NewStyle().Foreground(styles.Rose)
)

// askJSONOutput is the machine-readable shape of an ask result.
type askJSONOutput struct {
	DocumentID string `json:"documentId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// HandleAskCommand handles the "ask" command.
func HandleAskCommand(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	question := strings.TrimSpace(args.Query)
	if question == "" {
		question = readStdinQuestion(args.Quiet)
	}
	if question == "" {
		return fmt.Errorf("no question provided. Usage: planetchat ask \"your question\"")
	}

	client := backend.New(cfg.Backend.BaseURL).WithTimeout(cfg.Timeout())
	ctx := context.Background()

	docID := strings.TrimSpace(args.DocID)
	if args.File != "" {
		f, err := os.Open(args.File)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", args.File, err)
		}
		defer f.Close()

		if !args.Quiet && !args.JSON {
			fmt.Fprintf(os.Stderr, "%s Uploading %s...\n",
				noteStyle.Render("[+]"), filepath.Base(args.File))
		}
		result, err := client.Upload(ctx, filepath.Base(args.File), f)
		if err != nil {
			return fmt.Errorf("upload failed: %s", backend.Detail(err, err.Error()))
		}
		docID = result.ID
		if !args.Quiet && !args.JSON {
			fmt.Fprintf(os.Stderr, "%s Document ID: %s\n", noteStyle.Render("[+]"), docID)
		}
	}
	if docID == "" {
		return fmt.Errorf("no document. Provide --file to upload one or --doc with an existing ID")
	}

	answer, err := client.Ask(ctx, docID, question)
	if err != nil {
		return fmt.Errorf("ask failed: %s", backend.Detail(err, err.Error()))
	}

	if args.JSON {
		out := askJSONOutput{DocumentID: docID, Question: question, Answer: answer}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	displayAnswer(answer, cfg)
	return nil
}

// readStdinQuestion reads a piped question from stdin. Returns "" when
// stdin is a terminal.
func readStdinQuestion(quiet bool) string {
	stat, err := os.Stdin.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
		return ""
	}

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil || len(data) == 0 {
		return ""
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "%s Read question from stdin (%d bytes)\n",
			noteStyle.Render("[+]"), len(data))
	}
	return strings.TrimSpace(string(data))
}

// displayAnswer prints the answer, rendered as markdown on a TTY and
// plain for pipes.
func displayAnswer(answer string, cfg *config.Config) {
	if IsStdoutTTY() {
		if r, err := render.NewRenderer(GetTerminalWidth(), cfg.UI.GlamourStyle); err == nil {
			fmt.Print(r.Render(answer))
			return
		}
	}
	fmt.Println(answer)
}

// loadConfig loads configuration with CLI overrides applied.
func loadConfig(args Args) (*config.Config, error) {
	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return nil, err
	}
	if args.BaseURL != "" {
		cfg.Backend.BaseURL = args.BaseURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
