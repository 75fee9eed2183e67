// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the ordered chat message log and its persistence.
//
// Persistence is modeled as a small key-value capability so the log never
// depends on a concrete storage location: the TUI uses a file- or
// SQLite-backed KV under the state directory, tests use an in-memory one.
package store

import "sync"

// KV is the persistence capability the message store writes through.
//
// Implementations persist whole values under string keys. Get reports
// whether the key existed. Reset discards every key: it backs the full
// session reset that happens when a new document is uploaded.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Reset() error
}

// =============================================================================
// IN-MEMORY KV
// =============================================================================

// MemoryKV is a KV held entirely in memory. Used under test and as the
// fallback when no state directory is writable.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

// Reset discards all keys.
func (m *MemoryKV) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string][]byte)
	return nil
}
