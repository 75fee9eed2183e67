// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/planetchat/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status is the application phase shown in the bottom bar.
type Status int

const (
	StatusReady Status = iota
	StatusAsking
	StatusUploading
	StatusRevealing
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusAsking:
		return "Thinking..."
	case StatusUploading:
		return "Uploading..."
	case StatusRevealing:
		return "Answering..."
	default:
		return "Unknown"
	}
}

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// defaultShortcuts are the always-available key bindings.
var defaultShortcuts = []Shortcut{
	{Key: "enter", Desc: "send"},
	{Key: "ctrl+u", Desc: "upload"},
	{Key: "ctrl+d", Desc: "remove doc"},
	{Key: "ctrl+c", Desc: "quit"},
}

// StatusBar is the bottom bar: current status on the left, key hints on
// the right.
type StatusBar struct {
	Width  int
	Status Status

	theme *styles.Theme
}

// NewStatusBar creates a status bar for the given theme.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth sets the available width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the displayed phase.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// View renders the status bar.
func (s *StatusBar) View() string {
	var parts []string
	parts = append(parts, s.Status.String())

	for _, sc := range defaultShortcuts {
		parts = append(parts,
			s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}

	return s.theme.StatusBar.Render(strings.Join(parts, "  |  "))
}

// =============================================================================
// STATUS DERIVATION
// =============================================================================

// DeriveStatus picks the phase to display from the session flags. Uploads
// win over questions; an active reveal shows as answering.
func DeriveStatus(uploading, asking, revealing bool) Status {
	switch {
	case uploading:
		return StatusUploading
	case asking:
		return StatusAsking
	case revealing:
		return StatusRevealing
	default:
		return StatusReady
	}
}
