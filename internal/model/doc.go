// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across planetchat:
// the chat message log entries and the active document handle.
//
// The package is intentionally dependency-free so that every other package
// (storage, session, UI) can consume it without cycles.
package model
