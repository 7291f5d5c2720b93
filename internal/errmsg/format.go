// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Tag operations
	OpTagsRead  Op = "read file tags"
	OpTagsWrite Op = "write tag data"

	// Track numbering
	OpTrackTotal   Op = "calculate total tracks"
	OpTrackNumbers Op = "set track numbers"

	// File operations
	OpDirectoryRead Op = "read directory"
	OpFileLoad      Op = "load file"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpLogOpen    Op = "open log file"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// FormatCount creates a message for an operation that failed on part of a set.
func FormatCount(op Op, failed, total int, err error) string {
	if err == nil || failed == 0 {
		return ""
	}
	return fmt.Sprintf("Failed to %s for %d of %d files: %v", op, failed, total, err)
}
