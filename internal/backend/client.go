// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the planetchat document
// Q&A service.
//
// The service exposes four operations: upload a document, ask a question
// about an uploaded document, list known documents, and delete a document.
// Answers come back complete in a single response; any "streaming" the UI
// shows is a purely client-side reveal.
package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the base URL for a local backend.
	DefaultBaseURL = "http://127.0.0.1:8000"

	// DefaultTimeout is the default timeout for API requests. Uploads and
	// question answering can both take a while on large PDFs.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize caps response body reads to prevent memory
	// exhaustion from a misbehaving backend.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// sharedHTTPClient is the pooled transport used by all clients.
// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// RESULT TYPES
// =============================================================================

// UploadResult is the outcome of a successful document upload.
type UploadResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DocumentSummary describes one document known to the backend.
type DocumentSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// askResponse is the wire shape of a successful ask call.
type askResponse struct {
	Answer string `json:"answer"`
}

// uploadResponse is the wire shape of a successful upload call.
type uploadResponse struct {
	ID string `json:"id"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the planetchat backend over HTTP.
//
// Every operation takes a context and performs exactly one request: the
// client never retries. Failures surface once to the caller as a typed
// *APIError (wrapped in the operation's sentinel) and the caller decides
// how to present them.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// New creates a client for the given base URL. An empty base URL falls back
// to DefaultBaseURL.
func New(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		timeout:    DefaultTimeout,
	}
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.timeout = timeout
		// Own client so the shared pool's timeout is untouched.
		c.httpClient = &http.Client{
			Transport: sharedHTTPClient.Transport,
			Timeout:   timeout,
		}
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Upload sends a document to the backend as a multipart form and returns
// the backend-assigned handle.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/documents", &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp uploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	return &UploadResult{ID: resp.ID, Name: name}, nil
}

// Ask submits a question bound to an uploaded document and returns the
// complete answer text.
//
// An empty docID fails locally with ErrNoDocument; no request is made.
func (c *Client) Ask(ctx context.Context, docID, question string) (string, error) {
	if strings.TrimSpace(docID) == "" {
		return "", ErrNoDocument
	}

	form := url.Values{}
	form.Set("question", question)

	path := "/api/documents/" + url.PathEscape(docID) + "/ask"
	req, err := c.newRequest(ctx, http.MethodPost, path, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrQuery, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp askResponse
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrQuery, err)
	}

	return resp.Answer, nil
}

// List returns the documents known to the backend.
func (c *Client) List(ctx context.Context) ([]DocumentSummary, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/documents", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrList, err)
	}

	var docs []DocumentSummary
	if err := c.do(req, &docs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrList, err)
	}

	return docs, nil
}

// Delete removes a document from the backend.
func (c *Client) Delete(ctx context.Context, docID string) error {
	if strings.TrimSpace(docID) == "" {
		return ErrNoDocument
	}

	path := "/api/documents/" + url.PathEscape(docID)
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}

	return nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// newRequest builds a request with the common headers set.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// do executes a request and decodes a 2xx JSON body into out (when out is
// non-nil). Non-2xx responses become a *APIError carrying the backend's
// "detail" field when present.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid response body: %w", err)
	}
	return nil
}
