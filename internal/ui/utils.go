package ui

import (
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"
)

var (
	ansiRegexp    = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	jsonKeyRegexp = regexp.MustCompile(`^(\s*)("(?:[^"\\]|\\.)*")(\s*:)`)
)

// stripANSI removes ANSI escape sequences.
func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

// ansiVisibleWidth calculates the visible width of a string that may contain
// ANSI escape sequences.
func ansiVisibleWidth(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}

// padANSIToWidth pads s to the target width with spaces, accounting for ANSI
// escape sequences that don't contribute to visible width.
func padANSIToWidth(s string, targetWidth int) string {
	visible := ansiVisibleWidth(s)
	if visible >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visible)
}

// repeatToWidth repeats the fill string until reaching the requested display
// width.
func repeatToWidth(fill string, width int) string {
	if width <= 0 {
		return ""
	}
	if strings.TrimSpace(fill) == "" {
		fill = " "
	}
	var b strings.Builder
	for runewidth.StringWidth(b.String()) < width {
		b.WriteString(fill)
	}
	result := b.String()
	if w := runewidth.StringWidth(result); w > width {
		result = runewidth.Truncate(result, width, "")
	}
	return result
}

// wrapPlainText wraps plain text (no ANSI) to the given width, preserving
// existing newlines.
func wrapPlainText(s string, width int) string {
	if width <= 0 {
		return s
	}

	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		current := words[0]
		for _, w := range words[1:] {
			if len(current)+1+len(w) <= width {
				current += " " + w
				continue
			}
			out = append(out, current)
			current = w
		}
		out = append(out, current)
	}

	return strings.Join(out, "\n")
}

// windowLines returns the slice of lines visible at the given scroll offset,
// clamping the offset into range. The clamped offset is returned so callers
// can keep their scroll state consistent.
func windowLines(lines []string, scroll, height int) ([]string, int) {
	if height <= 0 {
		return nil, 0
	}
	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	end := scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[scroll:end], scroll
}

// highlightJSON applies key/value coloring to pretty-printed JSON, line by
// line. Keys take the theme key color; everything else keeps the value color.
func highlightJSON(text string, noColor bool) string {
	if noColor {
		return text
	}
	th := CurrentTheme()
	keyStyle := lipgloss.NewStyle().Foreground(th.KeyColor)
	valStyle := lipgloss.NewStyle().Foreground(th.ValueColor)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if m := jsonKeyRegexp.FindStringSubmatch(line); m != nil {
			rest := line[len(m[0]):]
			lines[i] = m[1] + keyStyle.Render(m[2]) + m[3] + valStyle.Render(rest)
			continue
		}
		lines[i] = valStyle.Render(line)
	}
	return strings.Join(lines, "\n")
}

// panelWithTitle renders a bordered panel with a title inserted into the top
// border. Content is clipped and padded to the exact inner size so colored
// text is never re-wrapped by lipgloss.
func panelWithTitle(title, content string, width, height int, noColor bool) string {
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}

	th := CurrentTheme()
	border := lipgloss.NormalBorder()
	borderStyle := lipgloss.NewStyle().Border(border)
	if !noColor {
		borderStyle = borderStyle.BorderForeground(th.SeparatorColor)
	}

	innerWidth := width - 2
	innerHeight := height - 2

	contentLines := strings.Split(content, "\n")
	if len(contentLines) > innerHeight {
		contentLines = contentLines[:innerHeight]
	}
	for len(contentLines) < innerHeight {
		contentLines = append(contentLines, "")
	}
	for i := range contentLines {
		if ansiVisibleWidth(contentLines[i]) > innerWidth {
			contentLines[i] = runewidth.Truncate(stripANSI(contentLines[i]), innerWidth, "…")
		}
		contentLines[i] = padANSIToWidth(contentLines[i], innerWidth)
	}

	bordered := borderStyle.Render(strings.Join(contentLines, "\n"))

	lines := strings.Split(bordered, "\n")
	if len(lines) == 0 || title == "" {
		return bordered
	}

	// Rebuild the top border with the title embedded near the left corner.
	titleWithSpace := " " + title + " "
	titleWidth := runewidth.StringWidth(titleWithSpace)
	innerTop := width - 2
	if titleWidth > innerTop {
		titleWithSpace = runewidth.Truncate(titleWithSpace, innerTop, "…")
		titleWidth = runewidth.StringWidth(titleWithSpace)
	}

	borderPaint := lipgloss.NewStyle().Render
	titlePaint := lipgloss.NewStyle().Bold(true).Render
	if !noColor {
		borderPaint = lipgloss.NewStyle().Foreground(th.SeparatorColor).Render
		titlePaint = lipgloss.NewStyle().Foreground(th.HeaderFG).Bold(true).Render
	}

	leftPad := 1
	rightPad := innerTop - leftPad - titleWidth
	if rightPad < 0 {
		leftPad = 0
		rightPad = innerTop - titleWidth
	}
	lines[0] = borderPaint(border.TopLeft) +
		borderPaint(repeatToWidth(border.Top, leftPad)) +
		titlePaint(titleWithSpace) +
		borderPaint(repeatToWidth(border.Top, rightPad)) +
		borderPaint(border.TopRight)

	return strings.Join(lines, "\n")
}

// intMax returns the maximum of two integers.
func intMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
