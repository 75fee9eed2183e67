// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages and documents.
package model

import (
	"sync"
	"time"
)

// =============================================================================
// CHAT MESSAGE TYPE
// =============================================================================

// ChatMessage represents a single entry in the chat log. There are exactly
// two variants, distinguished by IsUser: a user question and a bot answer.
//
// A bot message is created empty and its Text is filled in incrementally by
// the reveal scheduler that owns its ID. No other component mutates Text.
type ChatMessage struct {
	// ID is unique and monotonically increasing; ID order matches
	// insertion order.
	ID int64 `json:"id"`

	// Text is the markdown-formatted message body.
	Text string `json:"text"`

	// IsUser distinguishes user questions from bot answers.
	IsUser bool `json:"isUser"`

	// Timestamp is the creation time, immutable after creation.
	// Serialized as RFC 3339 (ISO-8601).
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage creates a user message with the given text.
func NewUserMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        NextID(),
		Text:      text,
		IsUser:    true,
		Timestamp: time.Now(),
	}
}

// NewBotMessage creates an empty bot message. The reveal scheduler fills in
// the text one character at a time.
func NewBotMessage() ChatMessage {
	return ChatMessage{
		ID:        NextID(),
		IsUser:    false,
		Timestamp: time.Now(),
	}
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m ChatMessage) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content yet.
func (m ChatMessage) IsEmpty() bool {
	return len(m.Text) == 0
}

// =============================================================================
// ID ALLOCATION
// =============================================================================

// Message IDs are derived from the creation-time millisecond clock. Two
// messages created within the same millisecond must still get distinct,
// strictly increasing IDs, so the allocator bumps past the last issued ID
// on collision.
var (
	idMu   sync.Mutex
	lastID int64
)

// NextID returns the next message ID. IDs are strictly increasing within a
// process, so insertion order and ID order never disagree.
func NextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
