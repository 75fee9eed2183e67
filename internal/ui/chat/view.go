// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/planetchat/internal/ui/components"
)

// View renders the full chat screen: header, message log, input, status
// bar, with any active toasts stacked above the input.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	sections := []string{
		m.header.View(),
		m.viewport.View(),
	}

	if toasts := m.toasts.Toasts(); len(toasts) > 0 {
		sections = append(sections, components.RenderToastStack(toasts, m.width, 0))
	}

	sections = append(sections, m.renderInput(), m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// chromeHeight is the number of rows used by everything except the
// message viewport.
func (m *Model) chromeHeight() int {
	// header (2 with border) + input (3 with border) + status bar (1)
	return 6
}

// =============================================================================
// SECTIONS
// =============================================================================

func (m *Model) renderInput() string {
	line := m.input.View()
	if m.busy() {
		line = m.spinner.View() + " " + line
	}
	return m.theme.InputContainer.Render(line)
}

func (m *Model) renderStatusBar() string {
	m.statusBar.SetStatus(components.DeriveStatus(
		m.ctrl.UploadInFlight(),
		m.ctrl.AskInFlight(),
		m.ctrl.RevealActive(),
	))
	return m.statusBar.View()
}

// =============================================================================
// MESSAGE LOG
// =============================================================================

// refreshViewport rebuilds the viewport content from the message log.
// When follow is true the viewport snaps to the newest message.
func (m *Model) refreshViewport(follow bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	if follow {
		m.viewport.GotoBottom()
	}
}

// renderMessages renders every log entry as a bubble.
func (m *Model) renderMessages() string {
	msgs := m.ctrl.Messages()
	if len(msgs) == 0 {
		return m.renderEmptyState()
	}

	revealing := m.ctrl.RevealActive()
	revealID := m.ctrl.RevealMessageID()

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		bubble := components.NewMessageBubble(msg, m.theme, m.renderer)
		bubble.SetWidth(m.width)
		bubble.Revealing = revealing && !msg.IsUser && msg.ID == revealID
		blocks = append(blocks, bubble.View())
	}
	return strings.Join(blocks, "\n\n")
}

// renderEmptyState shows first-run guidance in the empty log area.
func (m *Model) renderEmptyState() string {
	var hint string
	if m.ctrl.ActiveDocument().Valid() {
		hint = "Document ready. Ask your first question below."
	} else {
		hint = "Press Ctrl+U to upload a PDF, then ask away."
	}

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.viewport.Height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}).
		Italic(true)
	return style.Render(hint)
}
