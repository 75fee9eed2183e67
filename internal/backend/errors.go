// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for the four backend operations. Callers match with
// errors.Is to decide which toast to show.
var (
	// ErrNoDocument indicates an operation that needs an uploaded
	// document was attempted without one. Raised locally; no request
	// is made.
	ErrNoDocument = errors.New("no active document")

	// ErrUpload indicates a document upload failed.
	ErrUpload = errors.New("upload failed")

	// ErrQuery indicates a question could not be answered.
	ErrQuery = errors.New("query failed")

	// ErrList indicates the document list could not be fetched.
	ErrList = errors.New("list failed")

	// ErrDelete indicates a document could not be deleted.
	ErrDelete = errors.New("delete failed")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	// Status is the HTTP status code.
	Status int

	// Detail is the backend's human-readable error detail, or a generic
	// message when the response carried none.
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Detail)
}

// apiErrorResponse is the wire shape of backend error bodies.
type apiErrorResponse struct {
	Detail string `json:"detail"`
}

// parseAPIError converts a non-2xx response body into an *APIError.
// The backend is expected to send {"detail": "..."}; anything else falls
// back to a generic message.
func parseAPIError(status int, body []byte) *APIError {
	var resp apiErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Detail != "" {
		return &APIError{Status: status, Detail: resp.Detail}
	}
	return &APIError{Status: status, Detail: "request failed"}
}

// Detail extracts the user-facing message from any backend error: the
// backend-provided detail when present, else the fallback.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" && apiErr.Detail != "request failed" {
		return apiErr.Detail
	}
	return fallback
}
