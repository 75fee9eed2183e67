// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the chat session state and orchestrates every user
// action against the backend, the message store, and the reveal scheduler.
//
// The controller is UI-agnostic: the bubbletea TUI, the REPL, and the
// drop-folder watcher all drive the same methods. Each method is safe for
// concurrent use; long-running backend calls are made without holding the
// state lock so the UI can keep reading session state while a request is
// in flight.
package session

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jeranaias/planetchat/internal/backend"
	"github.com/jeranaias/planetchat/internal/model"
	"github.com/jeranaias/planetchat/internal/reveal"
	"github.com/jeranaias/planetchat/internal/store"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoDocument means a question was submitted before any document was
	// uploaded. The controller reports it as a warning, never an error.
	ErrNoDocument = errors.New("no document uploaded")

	// ErrBusy means the same kind of request is already in flight. At most
	// one question and one upload may run at a time.
	ErrBusy = errors.New("a request is already running")
)

// =============================================================================
// PORTS
// =============================================================================

// Backend is the slice of the HTTP client the controller needs.
type Backend interface {
	Upload(ctx context.Context, name string, r io.Reader) (*backend.UploadResult, error)
	Ask(ctx context.Context, docID, question string) (string, error)
	List(ctx context.Context) ([]backend.DocumentSummary, error)
	Delete(ctx context.Context, docID string) error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller coordinates one chat session: the active document handle, the
// draft input, the message log, and the answer reveal.
type Controller struct {
	backend  Backend
	store    *store.Store
	reveal   *reveal.Reveal
	notifier Notifier

	mu             sync.Mutex
	doc            *model.Document
	draft          string
	lastAnswer     string
	askInFlight    bool
	uploadInFlight bool
}

// NewController creates a controller over the given backend and store.
func NewController(b Backend, s *store.Store) *Controller {
	return &Controller{
		backend:  b,
		store:    s,
		reveal:   reveal.New(),
		notifier: nopNotifier{},
	}
}

// SetNotifier attaches the notification sink. Must be called before the
// first user action; a nil notifier restores the discard sink.
func (c *Controller) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n == nil {
		n = nopNotifier{}
	}
	c.notifier = n
}

func (c *Controller) notify(severity Severity, message string) {
	c.mu.Lock()
	n := c.notifier
	c.mu.Unlock()
	n.Notify(severity, message)
}

// =============================================================================
// QUESTION FLOW
// =============================================================================

// SubmitQuestion sends the question to the backend and, on success, appends
// an empty bot message and starts revealing the answer into it.
//
// Blank or whitespace-only text is a silent no-op: no request, no log
// mutation, no notification. Submitting without an uploaded document emits
// exactly one warning and makes no request. A question submitted while a
// reveal is running flushes that reveal first, so the prior answer ends up
// complete in the log.
func (c *Controller) SubmitQuestion(ctx context.Context, text string) error {
	question := strings.TrimSpace(text)
	if question == "" {
		return nil
	}

	c.mu.Lock()
	if !c.doc.Valid() {
		c.mu.Unlock()
		c.notify(SeverityWarning, "Please upload a PDF first")
		return ErrNoDocument
	}
	if c.askInFlight {
		c.mu.Unlock()
		c.notify(SeverityWarning, "Still working on the previous question")
		return ErrBusy
	}
	c.askInFlight = true
	docID := c.doc.ID
	c.draft = ""
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.askInFlight = false
		c.mu.Unlock()
	}()

	c.CancelReveal()

	// The question enters the log before the request, matching what the
	// user already sees on screen.
	c.store.Append(model.NewUserMessage(question))

	answer, err := c.backend.Ask(ctx, docID, question)
	if err != nil {
		c.notify(SeverityError, backend.Detail(err, "Failed to get response"))
		return err
	}

	bot := model.NewBotMessage()
	c.store.Append(bot)

	c.mu.Lock()
	c.lastAnswer = answer
	c.mu.Unlock()

	c.reveal.Start(bot.ID, answer)
	return nil
}

// =============================================================================
// DOCUMENT FLOW
// =============================================================================

// UploadFile uploads the file at path as the session's document. A blank
// path is a no-op. On success the previous conversation is discarded: the
// message log and all persisted state are cleared, and the new document
// becomes active. On failure the session keeps its current document and
// conversation.
func (c *Controller) UploadFile(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	c.mu.Lock()
	if c.uploadInFlight {
		c.mu.Unlock()
		c.notify(SeverityWarning, "An upload is already running")
		return ErrBusy
	}
	c.uploadInFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.uploadInFlight = false
		c.mu.Unlock()
	}()

	f, err := os.Open(path)
	if err != nil {
		c.notify(SeverityError, "Failed to read "+filepath.Base(path))
		return err
	}
	defer f.Close()

	name := filepath.Base(path)
	result, err := c.backend.Upload(ctx, name, f)
	if err != nil {
		c.notify(SeverityError, backend.Detail(err, "Failed to upload PDF"))
		return err
	}

	// The old conversation is meaningless against the new document. The
	// reveal is cancelled without a flush because its message is about to
	// be cleared anyway.
	c.reveal.Cancel()
	c.store.Clear()

	c.mu.Lock()
	c.doc = &model.Document{ID: result.ID, Name: result.Name}
	c.lastAnswer = ""
	c.mu.Unlock()

	c.notify(SeveritySuccess, "PDF uploaded: "+name)
	return nil
}

// DeleteActiveDocument removes the active document from the backend and
// clears the handle. Without an active document it is a no-op. On failure
// the handle is kept so the user can retry.
func (c *Controller) DeleteActiveDocument(ctx context.Context) error {
	c.mu.Lock()
	if !c.doc.Valid() {
		c.mu.Unlock()
		return nil
	}
	docID := c.doc.ID
	c.mu.Unlock()

	if err := c.backend.Delete(ctx, docID); err != nil {
		c.notify(SeverityError, backend.Detail(err, "Failed to remove PDF"))
		return err
	}

	c.mu.Lock()
	c.doc = nil
	c.mu.Unlock()

	c.notify(SeveritySuccess, "PDF removed")
	return nil
}

// ListDocuments returns the documents known to the backend.
func (c *Controller) ListDocuments(ctx context.Context) ([]backend.DocumentSummary, error) {
	return c.backend.List(ctx)
}

// =============================================================================
// REVEAL WIRING
// =============================================================================

// AdvanceReveal discloses one more answer character into the owned bot
// message and reports whether the reveal still has characters left. Ticks
// arriving after the reveal finished are ignored.
func (c *Controller) AdvanceReveal() (more bool) {
	msgID, prefix, ok := c.reveal.Advance()
	if !ok {
		return false
	}
	c.store.ReplaceText(msgID, prefix)
	return c.reveal.Active()
}

// CancelReveal flushes a running reveal so its message holds the complete
// answer. Idle and finished reveals are untouched.
func (c *Controller) CancelReveal() {
	if msgID, full, flushed := c.reveal.Cancel(); flushed {
		c.store.ReplaceText(msgID, full)
	}
}

// RevealActive reports whether an answer is currently being revealed.
func (c *Controller) RevealActive() bool {
	return c.reveal.Active()
}

// RevealMessageID returns the ID of the bot message the reveal owns. Only
// meaningful while RevealActive.
func (c *Controller) RevealMessageID() int64 {
	return c.reveal.MessageID()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// Draft returns the current input draft.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the input draft.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// ActiveDocument returns a copy of the active document handle, or nil when
// no document is uploaded.
func (c *Controller) ActiveDocument() *model.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return nil
	}
	doc := *c.doc
	return &doc
}

// LastAnswer returns the complete text of the most recent answer, before
// any reveal progress. Empty until the first successful question.
func (c *Controller) LastAnswer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAnswer
}

// AskInFlight reports whether a question request is running.
func (c *Controller) AskInFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.askInFlight
}

// UploadInFlight reports whether an upload request is running.
func (c *Controller) UploadInFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploadInFlight
}

// Messages returns the chat log in insertion order.
func (c *Controller) Messages() []model.ChatMessage {
	return c.store.Messages()
}
