// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// Severity classifies a user-facing notification.
type Severity int

const (
	// SeverityInfo is neutral status information.
	SeverityInfo Severity = iota
	// SeveritySuccess confirms a completed action.
	SeveritySuccess
	// SeverityWarning flags a recoverable problem (no document uploaded,
	// a request already running).
	SeverityWarning
	// SeverityError reports a failed operation.
	SeverityError
)

// Notifier receives user-facing notifications from the controller. The TUI
// renders them as toasts; the REPL prints them inline.
type Notifier interface {
	Notify(severity Severity, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(severity Severity, message string)

// Notify calls the wrapped function.
func (f NotifierFunc) Notify(severity Severity, message string) {
	f(severity, message)
}

// nopNotifier discards notifications. Used until a real sink is attached.
type nopNotifier struct{}

func (nopNotifier) Notify(Severity, string) {}
