// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Document is the handle for the single document a chat session is bound to.
//
// Lifecycle: created on a successful upload, cleared on a successful delete,
// and replaced by a new successful upload. Replacing the document invalidates
// the prior session's conversation. At most one document is active at a time.
type Document struct {
	// ID is assigned by the backend on upload.
	ID string `json:"id"`

	// Name is the original filename, display-only.
	Name string `json:"name"`
}

// Valid reports whether the handle refers to an uploaded document.
func (d *Document) Valid() bool {
	return d != nil && d.ID != ""
}
