// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/planetchat/internal/model"
	"github.com/jeranaias/planetchat/internal/ui/styles"
	"github.com/jeranaias/planetchat/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the top bar: the app title on the left and the active document
// badge on the right.
type Header struct {
	Width    int
	Document *model.Document

	theme *styles.Theme
}

// NewHeader creates a header for the given theme.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// SetWidth sets the available width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetDocument updates the active document badge. Nil means no document.
func (h *Header) SetDocument(doc *model.Document) {
	h.Document = doc
}

// View renders the header bar.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render("PlanetChat")

	var badge string
	if h.Document.Valid() {
		name := util.TruncateWidth(h.Document.Name, maxBadgeWidth(h.Width))
		badge = h.theme.HeaderDocument.Render("[" + name + "]")
	} else {
		badge = h.theme.HeaderNoDoc.Render("no document")
	}

	gap := h.Width - 4 - runewidth.StringWidth("PlanetChat") - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return h.theme.Header.Render(lipgloss.JoinHorizontal(lipgloss.Center, title, spacer, badge))
}

// maxBadgeWidth bounds the document badge so a long filename cannot push
// the title off screen.
func maxBadgeWidth(width int) int {
	max := width / 2
	if max < 12 {
		max = 12
	}
	return max
}
