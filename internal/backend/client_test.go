// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpload(t *testing.T) {
	var gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/documents" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile failed: %v", err)
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotFile = string(data)
		if hdr.Filename != "report.pdf" {
			t.Errorf("Expected filename report.pdf, got %s", hdr.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"doc-1","pages":3}`)
	}))
	defer srv.Close()

	client := New(srv.URL)
	res, err := client.Upload(context.Background(), "report.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if res.ID != "doc-1" {
		t.Errorf("Expected id doc-1, got %s", res.ID)
	}
	if res.Name != "report.pdf" {
		t.Errorf("Expected name report.pdf, got %s", res.Name)
	}
	if gotFile != "%PDF-1.4" {
		t.Errorf("Expected file body to round-trip, got %q", gotFile)
	}
}

func TestUploadErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail":"only PDF files are supported"}`)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Upload(context.Background(), "notes.txt", strings.NewReader("hi"))
	if err == nil {
		t.Fatal("Expected error")
	}

	if !errors.Is(err, ErrUpload) {
		t.Errorf("Expected ErrUpload, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError in chain, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", apiErr.Status)
	}
	if apiErr.Detail != "only PDF files are supported" {
		t.Errorf("Expected backend detail, got %q", apiErr.Detail)
	}
}

func TestUploadErrorGenericDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "nope")
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Upload(context.Background(), "a.pdf", strings.NewReader("x"))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Detail != "request failed" {
		t.Errorf("Expected generic detail, got %q", apiErr.Detail)
	}
}

func TestAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/doc-1/ask" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Expected form content type, got %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm failed: %v", err)
		}
		if q := r.PostFormValue("question"); q != "What is the total?" {
			t.Errorf("Unexpected question: %q", q)
		}
		io.WriteString(w, `{"answer":"$500"}`)
	}))
	defer srv.Close()

	client := New(srv.URL)
	answer, err := client.Ask(context.Background(), "doc-1", "What is the total?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "$500" {
		t.Errorf("Expected $500, got %q", answer)
	}
}

func TestAskWithoutDocumentNeverContactsBackend(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Ask(context.Background(), "", "hello")
	if !errors.Is(err, ErrNoDocument) {
		t.Errorf("Expected ErrNoDocument, got %v", err)
	}
	if called {
		t.Error("Backend must not be contacted without a document")
	}
}

func TestAskRequestID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("Expected X-Request-ID header")
		}
		io.WriteString(w, `{"answer":"ok"}`)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Ask(context.Background(), "doc-1", "q"); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
}

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/documents" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `[{"id":"doc-1","name":"report.pdf"},{"id":"doc-2","name":"invoice.pdf"}]`)
	}))
	defer srv.Close()

	docs, err := New(srv.URL).List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("Expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "doc-1" || docs[1].Name != "invoice.pdf" {
		t.Errorf("Unexpected documents: %+v", docs)
	}
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/documents/doc-1" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := New(srv.URL).Delete(context.Background(), "doc-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestDeleteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"document not found"}`)
	}))
	defer srv.Close()

	err := New(srv.URL).Delete(context.Background(), "doc-9")
	if !errors.Is(err, ErrDelete) {
		t.Errorf("Expected ErrDelete, got %v", err)
	}
	if got := Detail(err, "fallback"); got != "document not found" {
		t.Errorf("Expected backend detail, got %q", got)
	}
}

func TestTransportFailure(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL).Ask(context.Background(), "doc-1", "q")
	if !errors.Is(err, ErrQuery) {
		t.Errorf("Expected ErrQuery wrapping transport failure, got %v", err)
	}
	if got := Detail(err, "Failed to get response"); got != "Failed to get response" {
		t.Errorf("Expected fallback message, got %q", got)
	}
}
