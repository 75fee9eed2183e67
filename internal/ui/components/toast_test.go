// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/planetchat/internal/session"
)

func TestToastManagerAddAndExpire(t *testing.T) {
	m := NewToastManager()

	id := m.Add(ToastKindError, "something broke")
	if id == 0 {
		t.Error("Expected a non-zero toast ID")
	}
	if !m.HasToasts() {
		t.Fatal("Expected an active toast")
	}

	// Force expiry by backdating.
	toasts := m.Toasts()
	m.Clear()
	toasts[0].CreatedAt = time.Now().Add(-ErrorToastDuration - time.Second)
	if !toasts[0].IsExpired() {
		t.Error("Backdated toast must be expired")
	}
	if toasts[0].TimeRemaining() != 0 {
		t.Error("Expired toast must have zero time remaining")
	}
}

func TestToastManagerTickDropsExpired(t *testing.T) {
	m := NewToastManager()
	m.Add(ToastKindInfo, "fresh")

	m.mutex.Lock()
	m.toasts = append(m.toasts, Toast{
		ID:        99,
		Message:   "stale",
		Kind:      ToastKindInfo,
		CreatedAt: time.Now().Add(-time.Minute),
		Duration:  InfoToastDuration,
	})
	m.mutex.Unlock()

	remaining := m.Tick()
	if len(remaining) != 1 {
		t.Fatalf("Expected 1 surviving toast, got %d", len(remaining))
	}
	if remaining[0].Message != "fresh" {
		t.Errorf("Wrong survivor: %q", remaining[0].Message)
	}
}

func TestToastManagerCapsStack(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.Add(ToastKindInfo, "toast")
	}
	if got := len(m.Toasts()); got != 5 {
		t.Errorf("Expected the stack capped at 5, got %d", got)
	}
}

func TestToastManagerRemove(t *testing.T) {
	m := NewToastManager()
	id := m.Add(ToastKindWarning, "dismiss me")
	m.Add(ToastKindInfo, "keep me")

	m.Remove(id)

	toasts := m.Toasts()
	if len(toasts) != 1 || toasts[0].Message != "keep me" {
		t.Errorf("Unexpected toasts after removal: %+v", toasts)
	}
}

func TestKindForSeverity(t *testing.T) {
	tests := []struct {
		severity session.Severity
		want     ToastKind
	}{
		{session.SeverityInfo, ToastKindInfo},
		{session.SeveritySuccess, ToastKindSuccess},
		{session.SeverityWarning, ToastKindWarning},
		{session.SeverityError, ToastKindError},
	}
	for _, tt := range tests {
		if got := KindForSeverity(tt.severity); got != tt.want {
			t.Errorf("KindForSeverity(%d) = %d, want %d", tt.severity, got, tt.want)
		}
	}
}

func TestRenderToastIncludesIndicator(t *testing.T) {
	out := RenderToast(NewToast(ToastKindError, "upload failed"), 80)
	if !strings.Contains(out, "[X]") {
		t.Error("Error toast must carry the [X] indicator")
	}
	if !strings.Contains(out, "upload failed") {
		t.Error("Toast must contain its message")
	}
}

func TestRenderToastStackEmpty(t *testing.T) {
	if out := RenderToastStack(nil, 80, 24); out != "" {
		t.Errorf("Empty stack must render nothing, got %q", out)
	}
}
