// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/jeranaias/planetchat/internal/model"
)

// MessagesKey is the single well-known key holding the serialized chat log.
// There is no schema version: stored data that fails to decode is discarded
// and treated as an empty log.
const MessagesKey = "chat_messages"

// Store is the ordered, append-only chat message log.
//
// Every mutation synchronously serializes the entire log through the KV.
// A failed write is logged and otherwise ignored: the in-memory log stays
// authoritative for the rest of the process, so a storage problem never
// interrupts the chat flow.
type Store struct {
	mu   sync.Mutex
	kv   KV
	msgs []model.ChatMessage

	// logf records persistence failures. Defaults to log.Printf.
	logf func(format string, args ...any)
}

// New creates a store backed by kv and restores any previously persisted
// log. Malformed or missing data silently falls back to an empty log.
func New(kv KV) *Store {
	s := &Store{kv: kv, logf: log.Printf}
	s.restore()
	return s
}

// SetLogf replaces the failure logger (used by tests).
func (s *Store) SetLogf(logf func(format string, args ...any)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logf = logf
}

// restore loads the persisted log, tolerating every failure mode.
func (s *Store) restore() {
	data, ok, err := s.kv.Get(MessagesKey)
	if err != nil {
		s.logf("store: failed to load messages: %v", err)
		return
	}
	if !ok {
		return
	}

	var msgs []model.ChatMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		s.logf("store: discarding malformed message log: %v", err)
		return
	}
	s.msgs = msgs
}

// Append adds a message to the end of the log and persists.
func (s *Store) Append(msg model.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.msgs = append(s.msgs, msg)
	s.persistLocked()
}

// ReplaceText updates the text of the message with the given ID in place
// and persists. Only the reveal scheduler calls this, and only for the
// single bot message it owns. Unknown IDs are ignored.
func (s *Store) ReplaceText(id int64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.msgs {
		if s.msgs[i].ID == id {
			s.msgs[i].Text = text
			s.persistLocked()
			return
		}
	}
}

// Clear empties the log and resets ALL persisted session state, not just
// the messages. Invoked when a new document is uploaded.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.msgs = nil
	if err := s.kv.Reset(); err != nil {
		s.logf("store: failed to reset persisted state: %v", err)
	}
}

// Messages returns a copy of the log in insertion order.
func (s *Store) Messages() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ChatMessage, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

// persistLocked serializes the whole log. Caller must hold s.mu.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.msgs)
	if err != nil {
		s.logf("store: failed to serialize messages: %v", err)
		return
	}
	if err := s.kv.Set(MessagesKey, data); err != nil {
		s.logf("store: failed to persist messages: %v", err)
	}
}
