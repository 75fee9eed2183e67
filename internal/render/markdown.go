// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render converts markdown message text into styled terminal
// output.
//
// Glamour handles the structural markdown (headings, lists, links,
// blockquotes, tables, inline code); fenced code blocks are carved out
// first and rendered through chroma so a declared language tag gets real
// syntax highlighting instead of glamour's default. Input is display-only
// markup and is never evaluated.
package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Renderer renders markdown message text for the terminal.
type Renderer struct {
	term  *glamour.TermRenderer
	width int
}

// NewRenderer creates a renderer wrapping at the given width. The glamour
// style is chosen by name; "auto" picks dark or light from the terminal
// background.
func NewRenderer(width int, style string) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}
	switch style {
	case "", "auto":
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	term, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}

	return &Renderer{term: term, width: width}, nil
}

// Render converts markdown to styled terminal output. Fenced code blocks
// are highlighted by their declared language tag; everything else goes
// through glamour. Rendering failures fall back to the raw text so a
// malformed answer is still readable.
func (r *Renderer) Render(text string) string {
	segments := SplitFences(text)

	var out strings.Builder
	for _, seg := range segments {
		if seg.Fence {
			out.WriteString(HighlightFence(seg, r.width))
			out.WriteString("\n")
			continue
		}
		rendered, err := r.term.Render(seg.Body)
		if err != nil {
			rendered = seg.Body
		}
		out.WriteString(rendered)
	}
	return strings.TrimRight(out.String(), "\n") + "\n"
}

// Width returns the wrap width the renderer was built with.
func (r *Renderer) Width() int {
	return r.width
}

// DetectStyle resolves the "auto" style name using the terminal background,
// for callers that need a concrete glamour style (the REPL prints it in
// config output).
func DetectStyle(style string) string {
	if style != "" && style != "auto" {
		return style
	}
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
