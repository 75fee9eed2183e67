// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestStatusIndicatorsAreASCII(t *testing.T) {
	for _, s := range []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
	} {
		if s == "" {
			t.Error("Indicator must not be empty")
		}
		for _, r := range s {
			if r > 127 {
				t.Errorf("Indicator %q contains non-ASCII rune %q", s, r)
			}
		}
	}
}

func TestRenderHelpersIncludeIndicator(t *testing.T) {
	if !strings.Contains(RenderSuccess("done"), "[OK]") {
		t.Error("RenderSuccess must include the [OK] indicator")
	}
	if !strings.Contains(RenderError("bad"), "[X]") {
		t.Error("RenderError must include the [X] indicator")
	}
	if !strings.Contains(RenderWarning("careful"), "[!]") {
		t.Error("RenderWarning must include the [!] indicator")
	}
}

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)

	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("Expected 120x40, got %dx%d", theme.Width, theme.Height)
	}
	if theme.Header.GetWidth() != 120 {
		t.Errorf("Expected header width 120, got %d", theme.Header.GetWidth())
	}
}
