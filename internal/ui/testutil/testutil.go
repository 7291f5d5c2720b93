// Package testutil provides test doubles and output helpers for the
// terminal sessions.
package testutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so rendered screens compare as text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// MeasureWidth returns the cell width of s once styling is removed.
func MeasureWidth(s string) int {
	return lipgloss.Width(StripANSI(s))
}

// ContainsLine reports whether any line of output contains substr.
func ContainsLine(output, substr string) bool {
	return FindLine(output, substr) != ""
}

// FindLine returns the first line of output containing substr, trailing
// spaces trimmed, or "" when none does.
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(output, "\n") {
		if strings.Contains(line, substr) {
			return strings.TrimRight(line, " ")
		}
	}
	return ""
}
