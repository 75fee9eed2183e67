// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/planetchat/internal/ui/components"
)

// Update routes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case askResultMsg:
		// Failures are already on the toast stack; a success kicked off
		// the reveal.
		m.refreshViewport(true)
		if msg.err == nil {
			return m, m.revealTickCmd()
		}
		return m, nil

	case uploadResultMsg:
		m.header.SetDocument(m.ctrl.ActiveDocument())
		m.refreshViewport(true)
		return m, nil

	case deleteResultMsg:
		m.header.SetDocument(m.ctrl.ActiveDocument())
		return m, nil

	case revealTickMsg:
		more := m.ctrl.AdvanceReveal()
		m.refreshViewport(true)
		if more {
			return m, m.revealTickCmd()
		}
		return m, nil

	case dropFileMsg:
		// A file landed in the watched folder; upload it and re-arm.
		return m, tea.Batch(m.uploadCmd(msg.path), waitForDropCmd(m.drops))
	}

	return m.updateComponents(msg)
}

// =============================================================================
// RESIZE
// =============================================================================

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)
	m.statusBar.SetWidth(msg.Width)
	m.input.Width = msg.Width - 6

	chatHeight := msg.Height - m.chromeHeight()
	if chatHeight < 3 {
		chatHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(msg.Width, chatHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = chatHeight
	}
	m.refreshViewport(false)
	return m, nil
}

// =============================================================================
// KEYS
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		// A flushed reveal leaves the log complete for the next run.
		m.ctrl.CancelReveal()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.Upload):
		if m.mode == modeQuestion {
			m.enterUploadMode()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.RemoveDoc):
		if m.mode == modeQuestion && !m.busy() {
			return m, m.deleteCmd()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Cancel):
		if m.mode == modeUploadPath {
			m.exitUploadMode()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	return m.updateComponents(msg)
}

func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.mode {
	case modeUploadPath:
		path := strings.TrimSpace(value)
		m.exitUploadMode()
		if path == "" {
			return m, nil
		}
		return m, m.uploadCmd(path)

	default:
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.ctrl.SetDraft("")
		return m, m.submitCmd(value)
	}
}

// enterUploadMode repurposes the input line as a file path prompt.
func (m *Model) enterUploadMode() {
	m.mode = modeUploadPath
	m.savedDraft = m.input.Value()
	m.input.SetValue("")
	m.input.Placeholder = "Path to PDF file..."
	m.input.Prompt = "upload> "
}

// exitUploadMode restores the question draft.
func (m *Model) exitUploadMode() {
	m.mode = modeQuestion
	m.input.SetValue(m.savedDraft)
	m.savedDraft = ""
	m.input.Placeholder = "Ask a question about your PDF..."
	m.input.Prompt = "> "
}

// =============================================================================
// COMPONENT FAN-OUT
// =============================================================================

// updateComponents forwards a message to the focused input and viewport.
func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.mode == modeQuestion {
		m.ctrl.SetDraft(m.input.Value())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
