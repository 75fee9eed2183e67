// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/planetchat/internal/model"
)

// failingKV rejects every write, for exercising the log-and-continue path.
type failingKV struct{ MemoryKV }

func (f *failingKV) Set(key string, value []byte) error {
	return errors.New("disk full")
}

func TestAppendPreservesOrder(t *testing.T) {
	s := New(NewMemoryKV())

	first := model.NewUserMessage("one")
	second := model.NewBotMessage()
	third := model.NewUserMessage("three")
	s.Append(first)
	s.Append(second)
	s.Append(third)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, first.ID, msgs[0].ID)
	assert.Equal(t, second.ID, msgs[1].ID)
	assert.Equal(t, third.ID, msgs[2].ID)
	assert.True(t, msgs[0].ID < msgs[1].ID && msgs[1].ID < msgs[2].ID,
		"IDs must be ordered like insertions")
}

func TestRoundTripPersistence(t *testing.T) {
	kv := NewMemoryKV()

	s := New(kv)
	s.Append(model.NewUserMessage("What is the total?"))
	bot := model.NewBotMessage()
	s.Append(bot)
	s.ReplaceText(bot.ID, "$500")

	// A fresh store over the same KV must reproduce the same ordered list.
	reloaded := New(kv)
	require.Equal(t, s.Len(), reloaded.Len())

	want := s.Messages()
	got := reloaded.Messages()
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Text, got[i].Text)
		assert.Equal(t, want[i].IsUser, got[i].IsUser)
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp))
	}
}

func TestRoundTripPersistence_FileKV(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	s := New(kv)
	s.Append(model.NewUserMessage("hello"))
	s.Append(model.NewUserMessage("wörld"))

	kv2, err := NewFileKV(dir)
	require.NoError(t, err)
	reloaded := New(kv2)

	require.Equal(t, 2, reloaded.Len())
	assert.Equal(t, "hello", reloaded.Messages()[0].Text)
	assert.Equal(t, "wörld", reloaded.Messages()[1].Text)
}

func TestMalformedPersistedDataFallsBackToEmpty(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(MessagesKey, []byte("{not json")))

	var logged bool
	s := &Store{kv: kv, logf: func(string, ...any) { logged = true }}
	s.restore()

	assert.Equal(t, 0, s.Len(), "malformed data must be discarded")
	assert.True(t, logged, "the failure must be logged")
}

func TestReplaceTextOnlyTouchesOwnedMessage(t *testing.T) {
	s := New(NewMemoryKV())

	user := model.NewUserMessage("question")
	bot := model.NewBotMessage()
	s.Append(user)
	s.Append(bot)

	s.ReplaceText(bot.ID, "partial answ")

	msgs := s.Messages()
	assert.Equal(t, "question", msgs[0].Text)
	assert.Equal(t, "partial answ", msgs[1].Text)

	// Unknown IDs are ignored.
	s.ReplaceText(-1, "nope")
	assert.Equal(t, 2, s.Len())
}

func TestClearResetsAllPersistedState(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set("other_key", []byte("leftover")))

	s := New(kv)
	s.Append(model.NewUserMessage("hi"))
	s.Clear()

	assert.Equal(t, 0, s.Len())

	_, ok, err := kv.Get(MessagesKey)
	require.NoError(t, err)
	assert.False(t, ok, "messages key must be gone")

	_, ok, err = kv.Get("other_key")
	require.NoError(t, err)
	assert.False(t, ok, "clear is a full reset, not just the message log")
}

func TestPersistenceFailureDoesNotLoseInMemoryLog(t *testing.T) {
	kv := &failingKV{}
	var logged int

	s := New(kv)
	s.SetLogf(func(string, ...any) { logged++ })

	s.Append(model.NewUserMessage("still here"))

	assert.Equal(t, 1, s.Len(), "message stays visible in memory")
	assert.Equal(t, "still here", s.Messages()[0].Text)
	assert.Positive(t, logged, "the failed write must be logged")
}

func TestFileKVReset(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	require.NoError(t, kv.Set("a", []byte("1")))
	require.NoError(t, kv.Set("b", []byte("2")))
	require.NoError(t, kv.Reset())

	_, ok, err := kv.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	kv, err := NewSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", []byte("v1")))
	require.NoError(t, kv.Set("k", []byte("v2"))) // upsert

	got, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, kv.Reset())
	_, ok, err = kv.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
