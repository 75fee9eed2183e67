// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Bubble Tea messages and commands for the chat view. Every backend call
// runs inside a command goroutine and reports back as a result message;
// Update never blocks.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// MESSAGES
// =============================================================================

// askResultMsg reports a finished question request. A nil error means an
// answer reveal has started.
type askResultMsg struct {
	err error
}

// uploadResultMsg reports a finished upload request.
type uploadResultMsg struct {
	path string
	err  error
}

// deleteResultMsg reports a finished document removal.
type deleteResultMsg struct {
	err error
}

// revealTickMsg advances the answer reveal by one character.
type revealTickMsg struct {
	time time.Time
}

// dropFileMsg carries a file path picked up by the drop-folder watcher.
type dropFileMsg struct {
	path string
}

// =============================================================================
// COMMANDS
// =============================================================================

// submitCmd sends the question through the controller.
func (m *Model) submitCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return askResultMsg{err: m.ctrl.SubmitQuestion(ctx, text)}
	}
}

// uploadCmd uploads the file at path through the controller.
func (m *Model) uploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return uploadResultMsg{path: path, err: m.ctrl.UploadFile(ctx, path)}
	}
}

// deleteCmd removes the active document through the controller.
func (m *Model) deleteCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return deleteResultMsg{err: m.ctrl.DeleteActiveDocument(ctx)}
	}
}

// revealTickCmd schedules the next reveal advance.
func (m *Model) revealTickCmd() tea.Cmd {
	return tea.Tick(m.revealInterval, func(t time.Time) tea.Msg {
		return revealTickMsg{time: t}
	})
}

// waitForDropCmd blocks on the watcher channel and converts the next
// dropped file into a message. Re-armed after every delivery.
func waitForDropCmd(drops <-chan string) tea.Cmd {
	if drops == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-drops
		if !ok {
			return nil
		}
		return dropFileMsg{path: path}
	}
}
