// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch implements the optional drop-folder: PDFs copied into a
// watched directory are picked up and handed to the session for upload.
//
// Events are debounced so a file still being copied in does not trigger a
// half-written upload, and emissions are rate limited so dropping a batch
// of files does not hammer the backend.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// DefaultDebounce is the minimum quiet period before a dropped file is
// considered fully written.
const DefaultDebounce = 2 * time.Second

// Watcher watches one directory for dropped PDF files.
type Watcher struct {
	dir      string
	debounce time.Duration

	watcher *fsnotify.Watcher
	limiter *rate.Limiter
	out     chan string

	mu      sync.Mutex
	pending map[string]time.Time

	ctx    context.Context
	cancel context.CancelFunc
	logf   func(format string, args ...any)
}

// New creates a watcher for dir. Start must be called before any file is
// reported.
func New(dir string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		watcher:  fsw,
		limiter:  rate.NewLimiter(rate.Every(debounce), 1),
		out:      make(chan string, 8),
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
		logf:     log.Printf,
	}, nil
}

// SetLogf replaces the failure logger (used by tests).
func (w *Watcher) SetLogf(logf func(format string, args ...any)) {
	w.logf = logf
}

// Files returns the channel of settled PDF paths.
func (w *Watcher) Files() <-chan string {
	return w.out
}

// Start begins watching. The directory must exist.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	go w.processEvents()
	go w.processPending()
	return nil
}

// Close stops watching and closes the output channel.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// =============================================================================
// EVENT PROCESSING
// =============================================================================

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !isPDF(event.Name) {
				continue
			}
			// Every write pushes the settle time out again, so a file
			// still being copied keeps waiting.
			w.mu.Lock()
			w.pending[event.Name] = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logf("watch: %v", err)
		}
	}
}

// processPending emits files whose last write is older than the debounce.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			for _, path := range w.takeSettled() {
				if !w.limiter.Allow() {
					// Back under the rate cap; retry next tick.
					w.requeue(path)
					continue
				}
				select {
				case w.out <- path:
				default:
					w.logf("watch: dropping %s, upload queue full", path)
				}
			}
		}
	}
}

// takeSettled removes and returns pending paths that stopped changing at
// least a debounce period ago and still exist.
func (w *Watcher) takeSettled() []string {
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	var settled []string
	for path, last := range w.pending {
		if now.Sub(last) < w.debounce {
			continue
		}
		delete(w.pending, path)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		settled = append(settled, path)
	}
	return settled
}

// requeue puts a path back with its timer satisfied, so only the rate
// limiter delays it further.
func (w *Watcher) requeue(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = time.Now().Add(-w.debounce)
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
