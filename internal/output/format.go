// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"jtask/internal/service"
)

// Checkbox returns "[x]" for completed tasks and "[ ]" otherwise.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// FormatEntry formats a task line for the list command.
// Format: "{N}: [x] {DESCRIPTION}\n"
func FormatEntry(w io.Writer, entry service.Entry) {
	fmt.Fprintf(w, "%d: %s %s\n", entry.Index, Checkbox(entry.Task.Completed), NormalizeDescription(entry.Task.Description))
}

// FormatEntries formats every entry in order.
func FormatEntries(w io.Writer, entries []service.Entry) {
	for _, e := range entries {
		FormatEntry(w, e)
	}
}

// NormalizeDescription keeps a description on one line.
// Carriage returns and newlines are replaced with spaces.
func NormalizeDescription(description string) string {
	description = strings.ReplaceAll(description, "\r\n", " ")
	description = strings.ReplaceAll(description, "\r", " ")
	return strings.ReplaceAll(description, "\n", " ")
}
