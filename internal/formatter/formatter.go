// Package formatter turns document values into display strings for table
// rows and panels.
package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Stringify returns a compact string representation for an arbitrary
// document node. Composite values render as compact JSON so they stay on a
// single table row.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return escapeScalarString(t)
	case json.Number:
		return t.String()
	case bool, int, int64, float64:
		return fmt.Sprint(t)
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// StringifyPreserveNewlines keeps real line breaks for scalar strings so
// multi-line values stay readable in the content panel. Non-string values
// fall back to Stringify.
func StringifyPreserveNewlines(v any) string {
	if s, ok := v.(string); ok {
		return normalizeScalarString(s, false)
	}
	return Stringify(v)
}

// escapeScalarString flattens control characters so table rows stay
// single-line.
func escapeScalarString(s string) string {
	return normalizeScalarString(s, true)
}

// normalizeScalarString normalizes Windows newlines, then either escapes
// remaining line breaks as literal "\n" (table rows) or keeps them
// (content panel).
func normalizeScalarString(s string, escapeNewlines bool) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if escapeNewlines && strings.Contains(s, "\n") {
		s = strings.ReplaceAll(s, "\n", "\\n")
	}
	return s
}

// Truncate limits s to maxLen display columns, appending an ellipsis when
// content was cut. Width is measured with lipgloss so wide runes count
// correctly.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	target := maxLen - 3
	if maxLen < 3 {
		target = maxLen
	}
	var b strings.Builder
	width := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if width+rw > target {
			break
		}
		b.WriteRune(r)
		width += rw
	}
	if maxLen < 3 {
		return b.String()
	}
	return b.String() + "..."
}

// PadRight pads a string to the specified width, truncating if longer.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
