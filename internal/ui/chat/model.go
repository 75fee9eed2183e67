// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main chat view for the planetchat TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/planetchat/internal/render"
	"github.com/jeranaias/planetchat/internal/reveal"
	"github.com/jeranaias/planetchat/internal/session"
	"github.com/jeranaias/planetchat/internal/ui/components"
	"github.com/jeranaias/planetchat/internal/ui/styles"
)

// =============================================================================
// INPUT MODES
// =============================================================================

// inputMode selects what the single input line currently edits.
type inputMode int

const (
	// modeQuestion is the normal state: the input is the question draft.
	modeQuestion inputMode = iota
	// modeUploadPath repurposes the input as a file path prompt after
	// Ctrl+U. Esc returns to modeQuestion with the draft restored.
	modeUploadPath
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctrl   *session.Controller
	theme  *styles.Theme
	keyMap KeyMap

	// Rendering
	renderer  *render.Renderer
	header    *components.Header
	statusBar *components.StatusBar
	toasts    *components.ToastManager

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Dimensions
	width  int
	height int
	ready  bool

	// Input mode
	mode       inputMode
	savedDraft string

	// Timing
	timeout        time.Duration
	revealInterval time.Duration

	// Drop-folder watcher feed. Nil when the watcher is disabled.
	drops <-chan string
}

// Options configures the chat model.
type Options struct {
	Controller *session.Controller
	// Timeout bounds each backend request.
	Timeout time.Duration
	// RevealInterval is the pause between revealed answer characters.
	RevealInterval time.Duration
	// GlamourStyle selects the markdown style ("auto", "dark", "light", ...).
	GlamourStyle string
	// Drops receives file paths from the drop-folder watcher. Optional.
	Drops <-chan string
}

// New creates the chat model and wires the controller's notifications into
// the toast stack.
func New(opts Options) *Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask a question about your PDF..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	revealInterval := opts.RevealInterval
	if revealInterval <= 0 {
		revealInterval = reveal.DefaultInterval
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	renderer, err := render.NewRenderer(76, opts.GlamourStyle)
	if err != nil {
		// Markdown falls back to plain text; the chat still works.
		renderer = nil
	}

	toasts := components.NewToastManager()
	opts.Controller.SetNotifier(session.NotifierFunc(func(severity session.Severity, message string) {
		toasts.Add(components.KindForSeverity(severity), message)
	}))

	return &Model{
		ctrl:           opts.Controller,
		theme:          theme,
		keyMap:         DefaultKeyMap(),
		renderer:       renderer,
		header:         components.NewHeader(theme),
		statusBar:      components.NewStatusBar(theme),
		toasts:         toasts,
		input:          input,
		spinner:        sp,
		timeout:        timeout,
		revealInterval: revealInterval,
		drops:          opts.Drops,
	}
}

// Init starts the background tickers.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		components.ToastTickCmd(),
	}
	if cmd := waitForDropCmd(m.drops); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// busy reports whether a backend request is in flight.
func (m *Model) busy() bool {
	return m.ctrl.AskInFlight() || m.ctrl.UploadInFlight()
}
