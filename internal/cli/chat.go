// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive REPL chat for the planetchat CLI.
//
// A readline-style alternative to the TUI for environments where a full
// alternate-screen interface is unwanted (SSH sessions, screen readers,
// logging). Shares the session controller and persisted message log with
// the TUI.
//
// Commands inside the REPL:
//   /upload <path>   Upload a PDF and start a fresh conversation
//   /doc             Show the active document
//   /docs            List documents on the backend
//   /remove          Remove the active document
//   /history         Reprint the conversation
//   /help            Show commands
//   /quit, exit      Leave
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/planetchat/internal/backend"
	"github.com/jeranaias/planetchat/internal/config"
	"github.com/jeranaias/planetchat/internal/render"
	"github.com/jeranaias/planetchat/internal/session"
	"github.com/jeranaias/planetchat/internal/store"
	"github.com/jeranaias/planetchat/internal/ui/styles"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(styles.Violet).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(styles.TextSecondary)
	commandStyle = lipgloss.NewStyle().Foreground(styles.Emerald)
	userStyle    = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for the REPL.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with history persisted in the state dir.
func NewChatCLI(stateDir string) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(stateDir, "chat_history"),
	}
	cli.loadHistory()
	return cli
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with history navigation.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and releases the terminal.
func (c *ChatCLI) Close() {
	if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
		c.line.WriteHistory(f)
		f.Close()
	}
	c.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand handles the "chat" command.
func HandleChatCommand(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	ctrl, closeStore, err := buildController(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Notifications print inline instead of as toasts.
	ctrl.SetNotifier(session.NotifierFunc(func(severity session.Severity, message string) {
		switch severity {
		case session.SeveritySuccess:
			fmt.Println(styles.RenderSuccess(message))
		case session.SeverityWarning:
			fmt.Println(styles.RenderWarning(message))
		case session.SeverityError:
			fmt.Println(styles.RenderError(message))
		default:
			fmt.Println(styles.RenderInfo(message))
		}
	}))

	renderer, _ := render.NewRenderer(GetTerminalWidth(), cfg.UI.GlamourStyle)

	if !args.Quiet {
		printWelcome(ctrl)
	}

	input := NewChatCLI(cfg.StateDir())
	defer input.Close()

	ctx := context.Background()
	for {
		line, err := input.ReadInput(promptStyle.Render("planetchat> "))
		if err != nil {
			// Ctrl+C, Ctrl+D, or a closed terminal all end the session.
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := handleReplCommand(ctx, ctrl, renderer, line); quit {
				return nil
			}
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			return nil
		}

		askOnce(ctx, ctrl, renderer, line)
	}
}

// askOnce submits one question and prints the complete answer.
func askOnce(ctx context.Context, ctrl *session.Controller, renderer *render.Renderer, question string) {
	if err := ctrl.SubmitQuestion(ctx, question); err != nil {
		// The notifier already printed the reason.
		return
	}

	// The REPL has no tick loop; flush the reveal and print everything.
	ctrl.CancelReveal()
	printAnswer(renderer, ctrl.LastAnswer())
}

func printAnswer(renderer *render.Renderer, answer string) {
	if renderer != nil && IsStdoutTTY() {
		fmt.Print(renderer.Render(answer))
		return
	}
	fmt.Println(answer)
}

// =============================================================================
// REPL COMMANDS
// =============================================================================

// handleReplCommand executes a slash command. Returns true to quit.
func handleReplCommand(ctx context.Context, ctrl *session.Controller, renderer *render.Renderer, line string) bool {
	fields := strings.Fields(line)
	command := strings.ToLower(fields[0])

	switch command {
	case "/quit", "/exit", "/q":
		return true

	case "/upload", "/u":
		if len(fields) < 2 {
			fmt.Println(styles.RenderWarning("Usage: /upload <path-to-pdf>"))
			return false
		}
		// Paths may contain spaces.
		path := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		ctrl.UploadFile(ctx, path)

	case "/doc":
		if doc := ctrl.ActiveDocument(); doc.Valid() {
			fmt.Printf("%s %s (id %s)\n", commandStyle.Render("Active:"), doc.Name, doc.ID)
		} else {
			fmt.Println(infoStyle.Render("No document uploaded. Use /upload <path>."))
		}

	case "/docs":
		docs, err := ctrl.ListDocuments(ctx)
		if err != nil {
			fmt.Println(styles.RenderError(backend.Detail(err, "Failed to list documents")))
			return false
		}
		if len(docs) == 0 {
			fmt.Println(infoStyle.Render("No documents on the backend."))
			return false
		}
		for _, d := range docs {
			fmt.Printf("  %s  %s\n", commandStyle.Render(d.ID), d.Name)
		}

	case "/remove", "/rm":
		ctrl.DeleteActiveDocument(ctx)

	case "/history", "/h":
		for _, msg := range ctrl.Messages() {
			if msg.IsUser {
				fmt.Printf("%s %s\n", userStyle.Render("you:"), msg.Text)
			} else {
				printAnswer(renderer, msg.Text)
			}
		}

	case "/help", "/?":
		printReplHelp()

	default:
		fmt.Println(styles.RenderWarning("Unknown command: " + command + " (try /help)"))
	}
	return false
}

func printWelcome(ctrl *session.Controller) {
	fmt.Println(promptStyle.Render("planetchat") + infoStyle.Render(" - chat with your PDF"))
	if doc := ctrl.ActiveDocument(); doc.Valid() {
		fmt.Println(infoStyle.Render("Active document: " + doc.Name))
	} else {
		fmt.Println(infoStyle.Render("Upload a PDF with /upload <path>, then ask away."))
	}
	fmt.Println(infoStyle.Render("Type /help for commands, exit to leave."))
	fmt.Println()
}

func printReplHelp() {
	help := [][2]string{
		{"/upload <path>", "Upload a PDF and start a fresh conversation"},
		{"/doc", "Show the active document"},
		{"/docs", "List documents on the backend"},
		{"/remove", "Remove the active document"},
		{"/history", "Reprint the conversation"},
		{"/help", "Show this help"},
		{"/quit", "Leave (also: exit, Ctrl+D)"},
	}
	for _, h := range help {
		fmt.Printf("  %-16s %s\n", commandStyle.Render(h[0]), h[1])
	}
}

// =============================================================================
// WIRING
// =============================================================================

// buildController assembles the controller the same way the TUI does, so
// the REPL and the TUI share one persisted session.
func buildController(cfg *config.Config) (*session.Controller, func(), error) {
	kv, closeKV, err := BuildKV(cfg)
	if err != nil {
		return nil, nil, err
	}

	st := store.New(kv)
	client := backend.New(cfg.Backend.BaseURL).WithTimeout(cfg.Timeout())
	return session.NewController(client, st), closeKV, nil
}

// BuildKV creates the configured KV backend. The returned func releases
// any held resources.
func BuildKV(cfg *config.Config) (store.KV, func(), error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		if err := os.MkdirAll(cfg.StateDir(), 0700); err != nil {
			return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		kv, err := store.NewSQLiteKV(filepath.Join(cfg.StateDir(), "session.db"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open session database: %w", err)
		}
		return kv, func() { kv.Close() }, nil

	default:
		kv, err := store.NewFileKV(cfg.StateDir())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open state directory: %w", err)
		}
		return kv, func() {}, nil
	}
}
