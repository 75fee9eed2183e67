// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/planetchat/internal/model"
	"github.com/jeranaias/planetchat/internal/render"
	"github.com/jeranaias/planetchat/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// revealCursor trails the last revealed character of an in-progress answer.
const revealCursor = "_"

// MessageBubble renders one chat log entry as a styled bubble. User
// questions lean right in blue; bot answers lean left in violet and are
// rendered as markdown once their reveal completes.
type MessageBubble struct {
	Message       model.ChatMessage
	Width         int
	ShowTimestamp bool
	// Revealing marks the bot message whose text is still being disclosed.
	// A revealing bubble shows raw text with a trailing cursor; markdown
	// rendering waits until the text is final.
	Revealing bool

	theme    *styles.Theme
	renderer *render.Renderer
}

// NewMessageBubble creates a bubble for the given message.
func NewMessageBubble(msg model.ChatMessage, theme *styles.Theme, renderer *render.Renderer) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
		renderer:      renderer,
	}
}

// SetWidth sets the available width for the bubble.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsUser {
		return b.renderUserBubble()
	}
	return b.renderBotBubble()
}

func (b *MessageBubble) renderUserBubble() string {
	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(b.Message.Text, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(contentWidth).Render(wrapped)

	meta := b.theme.MessageMeta.Render("you" + b.timestampSuffix())
	block := lipgloss.JoinVertical(lipgloss.Right, bubble, meta)

	// Right-aligned within the full width, like a chat app's own messages.
	return lipgloss.NewStyle().
		Width(b.Width).
		Align(lipgloss.Right).
		Render(block)
}

func (b *MessageBubble) renderBotBubble() string {
	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	var content string
	switch {
	case b.Message.IsEmpty() && b.Revealing:
		content = revealCursor
	case b.Revealing:
		content = wordWrap(b.Message.Text, maxContentWidth) + revealCursor
	case b.renderer != nil:
		content = strings.TrimRight(b.renderer.Render(b.Message.Text), "\n")
	default:
		content = wordWrap(b.Message.Text, maxContentWidth)
	}

	contentWidth := minInt(maxLineWidth(content)+4, b.Width-8)
	if contentWidth < 10 {
		contentWidth = 10
	}
	bubble := b.theme.BotBubble.Width(contentWidth).Render(content)

	meta := b.theme.MessageMeta.Render("planetchat" + b.timestampSuffix())
	return lipgloss.JoinVertical(lipgloss.Left, bubble, meta)
}

func (b *MessageBubble) timestampSuffix() string {
	if !b.ShowTimestamp || b.Message.Timestamp.IsZero() {
		return ""
	}
	return " " + b.Message.Timestamp.Format("15:04")
}
