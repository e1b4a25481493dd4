// Package textutil provides unicode-aware text utilities for TUI rendering.
package textutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// VisualWidthStyled returns the visual width of a styled string, ignoring ANSI escapes.
func VisualWidthStyled(s string) int {
	return lipgloss.Width(s)
}

// Truncate truncates a string to fit within maxWidth visual columns.
// If truncation is needed, it appends the unicode ellipsis character (…).
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	avail := maxWidth - VisualWidth(TruncateEllipsis)
	if avail <= 0 {
		return TruncateEllipsis
	}
	return runewidth.Truncate(s, avail, "") + TruncateEllipsis
}

// PadCenter centres s within width columns, truncating when it does not fit.
// Odd leftover space goes to the right.
func PadCenter(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = Truncate(s, width)
	gap := width - VisualWidth(s)
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// Cells splits s into display cells: one entry per rune with its column width.
// Zero-width runes are attached to the preceding cell.
func Cells(s string) []Cell {
	out := make([]Cell, 0, len(s))
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 && len(out) > 0 {
			out[len(out)-1].Text += string(r)
			continue
		}
		out = append(out, Cell{Text: string(r), Width: w})
	}
	return out
}

// Cell is one rendered glyph and the number of columns it spans.
type Cell struct {
	Text  string
	Width int
}
