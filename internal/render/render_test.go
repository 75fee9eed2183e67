// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"
)

func TestSplitFencesPythonBlock(t *testing.T) {
	text := "```python\nprint(1)\n```"

	segments := SplitFences(text)
	if len(segments) != 1 {
		t.Fatalf("Expected 1 segment, got %d: %+v", len(segments), segments)
	}

	seg := segments[0]
	if !seg.Fence {
		t.Error("Expected a fence segment")
	}
	if seg.Language != "python" {
		t.Errorf("Expected language python, got %q", seg.Language)
	}
	if seg.Body != "print(1)" {
		t.Errorf("Expected body print(1), got %q", seg.Body)
	}
}

func TestSplitFencesNoFence(t *testing.T) {
	text := "Just a paragraph.\n\nAnother one."

	segments := SplitFences(text)
	if len(segments) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segments))
	}
	if segments[0].Fence {
		t.Error("Plain text must not produce a fence segment")
	}
	if HasFences(text) {
		t.Error("HasFences must be false for plain text")
	}
}

func TestSplitFencesMixed(t *testing.T) {
	text := "Intro\n```go\nfmt.Println(1)\n```\nOutro"

	segments := SplitFences(text)
	if len(segments) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(segments))
	}
	if segments[0].Fence || !segments[1].Fence || segments[2].Fence {
		t.Errorf("Expected text/fence/text, got %+v", segments)
	}
	if segments[1].Language != "go" {
		t.Errorf("Expected go tag, got %q", segments[1].Language)
	}
}

func TestSplitFencesUntaggedBlock(t *testing.T) {
	text := "```\nplain code\n```"

	segments := SplitFences(text)
	if len(segments) != 1 || !segments[0].Fence {
		t.Fatalf("Expected one fence segment, got %+v", segments)
	}
	if segments[0].Language != "" {
		t.Errorf("Expected empty language tag, got %q", segments[0].Language)
	}
}

func TestSplitFencesUnclosedFence(t *testing.T) {
	text := "```python\nprint(1)"

	segments := SplitFences(text)
	if len(segments) != 1 || !segments[0].Fence {
		t.Fatalf("Unclosed fence must still be a code segment, got %+v", segments)
	}
	if segments[0].Language != "python" {
		t.Errorf("Expected python tag, got %q", segments[0].Language)
	}
}

func TestHighlightUnknownLanguageReturnsPlain(t *testing.T) {
	code := "some opaque text"
	if got := Highlight(code, "nosuchlanguage-xyz"); got != code {
		t.Errorf("Unknown language must pass through unchanged, got %q", got)
	}
	if got := Highlight(code, ""); got != code {
		t.Errorf("Empty tag must pass through unchanged, got %q", got)
	}
}

func TestHighlightPythonAddsANSI(t *testing.T) {
	got := Highlight("print(1)", "python")
	if !strings.Contains(got, "\x1b[") {
		t.Error("Expected ANSI escape sequences in highlighted output")
	}
}

func TestRendererRenderHeadingsAndLists(t *testing.T) {
	r, err := NewRenderer(80, "dark")
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	out := r.Render("# Title\n\n- one\n- two\n\n> quoted")
	if !strings.Contains(out, "Title") {
		t.Errorf("Expected heading text in output: %q", out)
	}
	if !strings.Contains(out, "one") || !strings.Contains(out, "two") {
		t.Errorf("Expected list items in output: %q", out)
	}
}

func TestRendererRenderFencedBlock(t *testing.T) {
	r, err := NewRenderer(80, "dark")
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	out := r.Render("Before\n```python\nprint(1)\n```\nAfter")
	if !strings.Contains(out, "python") {
		t.Errorf("Expected language badge in output: %q", out)
	}
	if !strings.Contains(out, "Before") || !strings.Contains(out, "After") {
		t.Errorf("Expected surrounding text in output: %q", out)
	}
}

func TestDetectStyleExplicit(t *testing.T) {
	if got := DetectStyle("notty"); got != "notty" {
		t.Errorf("Explicit style must pass through, got %q", got)
	}
}
