// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := New(dir, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.SetLogf(func(string, ...any) {})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func TestWatcherEmitsDroppedPDF(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	path := filepath.Join(dir, "dropped.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case got := <-w.Files():
		if got != path {
			t.Errorf("Expected %s, got %s", path, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for the dropped file")
	}
}

func TestWatcherIgnoresNonPDF(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case got := <-w.Files():
		t.Errorf("Unexpected emission for non-PDF: %s", got)
	case <-time.After(time.Second):
	}
}

func TestWatcherSkipsDeletedPending(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	path := filepath.Join(dir, "gone.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	select {
	case got := <-w.Files():
		t.Errorf("Unexpected emission for deleted file: %s", got)
	case <-time.After(time.Second):
	}
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"report.pdf", true},
		{"REPORT.PDF", true},
		{"archive.tar.pdf", true},
		{"report.txt", false},
		{"pdf", false},
	}
	for _, tt := range tests {
		if got := isPDF(tt.path); got != tt.want {
			t.Errorf("isPDF(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherStartMissingDirFails(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"), time.Second)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Start(); err == nil {
		t.Error("Start must fail for a missing directory")
	}
}
