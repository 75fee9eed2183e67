// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/planetchat/internal/ui/styles"
)

// =============================================================================
// FENCE SEGMENTATION
// =============================================================================

// Segment is one slice of a markdown document: either plain markdown text
// or the contents of one fenced code block.
type Segment struct {
	// Fence is true for a fenced code block segment.
	Fence bool

	// Language is the declared language tag after the opening fence
	// ("```python" -> "python"). Empty when no tag was given.
	Language string

	// Body is the segment text. For fences this excludes the fence
	// markers themselves.
	Body string
}

// SplitFences splits markdown text into alternating text and fence
// segments. An unclosed fence runs to the end of the input; its contents
// are still treated as code.
func SplitFences(text string) []Segment {
	var segments []Segment
	var buf []string
	var language string
	inFence := false

	flush := func(fence bool) {
		if len(buf) == 0 && !fence {
			return
		}
		segments = append(segments, Segment{
			Fence:    fence,
			Language: language,
			Body:     strings.Join(buf, "\n"),
		})
		buf = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "```") {
			if inFence {
				flush(true)
				language = ""
				inFence = false
			} else {
				flush(false)
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inFence = true
			}
			continue
		}
		buf = append(buf, line)
	}
	flush(inFence)

	return segments
}

// HasFences reports whether the text contains at least one fenced code
// block.
func HasFences(text string) bool {
	for _, seg := range SplitFences(text) {
		if seg.Fence {
			return true
		}
	}
	return false
}

// =============================================================================
// FENCE RENDERING (chroma)
// =============================================================================

// HighlightFence renders one fence segment: syntax-highlighted when the
// language tag resolves to a chroma lexer, plain monospace in a bordered
// block otherwise.
func HighlightFence(seg Segment, maxWidth int) string {
	code := strings.TrimRight(seg.Body, "\n")
	body := Highlight(code, seg.Language)

	if maxWidth < 24 {
		maxWidth = 24
	}

	var header string
	if seg.Language != "" {
		header = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.OverlayDim).
			Padding(0, 1).
			Bold(true).
			Render(seg.Language) + "\n"
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(header + body)
}

// Highlight applies chroma syntax highlighting keyed by the language tag.
// An empty or unknown tag returns the code unchanged (plain monospace).
func Highlight(code, language string) string {
	if language == "" {
		return code
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
