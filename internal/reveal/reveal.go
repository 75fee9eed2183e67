// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal implements the character-by-character disclosure of a
// fully-known answer string.
//
// The backend returns complete answers; the reveal exists purely to make
// them read like live generation. Each answer gets an explicit state
// machine (Idle -> Revealing -> Done) keyed to the single bot message it
// owns. Ticks are driven from the outside (the TUI uses tea.Tick, the REPL
// a plain timer); each tick is one discrete callback, never a blocking
// loop.
package reveal

import (
	"sync"
	"time"
)

// DefaultInterval is the pause between revealed characters.
const DefaultInterval = 20 * time.Millisecond

// State is the lifecycle phase of a reveal.
type State int

const (
	// StateIdle means no answer is being revealed.
	StateIdle State = iota
	// StateRevealing means characters are still being disclosed.
	StateRevealing
	// StateDone means the full answer is visible. A Done reveal never
	// mutates its message again.
	StateDone
)

// Reveal discloses one answer to one bot message. Restarted for every new
// answer; starting a new reveal while one is running is the caller's
// responsibility to handle via Cancel.
type Reveal struct {
	mu     sync.Mutex
	state  State
	msgID  int64
	answer []rune
	cursor int
}

// New creates an idle reveal.
func New() *Reveal {
	return &Reveal{state: StateIdle}
}

// Start begins revealing answer into the message with the given ID.
// The cursor resets to the beginning; an empty answer is Done immediately.
func (r *Reveal) Start(msgID int64, answer string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.msgID = msgID
	r.answer = []rune(answer)
	r.cursor = 0
	if len(r.answer) == 0 {
		r.state = StateDone
		return
	}
	r.state = StateRevealing
}

// Advance discloses one more character and returns the message ID and the
// prefix now visible. ok is false when there is nothing to advance (idle or
// already done), in which case the owned message must not be touched.
func (r *Reveal) Advance() (msgID int64, prefix string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRevealing {
		return 0, "", false
	}

	r.cursor++
	if r.cursor >= len(r.answer) {
		r.cursor = len(r.answer)
		r.state = StateDone
	}
	return r.msgID, string(r.answer[:r.cursor]), true
}

// Cancel stops a running reveal deterministically: the remaining text is
// flushed so the owned message ends up complete, and the state moves to
// Done. Returns the message ID and full answer when there was something to
// flush. Cancelling an idle or finished reveal is a no-op.
func (r *Reveal) Cancel() (msgID int64, full string, flushed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRevealing {
		return 0, "", false
	}

	r.cursor = len(r.answer)
	r.state = StateDone
	return r.msgID, string(r.answer), true
}

// State returns the current lifecycle phase.
func (r *Reveal) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Active reports whether a reveal is in progress.
func (r *Reveal) Active() bool {
	return r.State() == StateRevealing
}

// MessageID returns the ID of the message this reveal owns.
func (r *Reveal) MessageID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.msgID
}
