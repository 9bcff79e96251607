// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/model"
)

const (
	// ColumnSeparator is the separator line for board column sections.
	ColumnSeparator = "------------"
)

// ColumnTitle maps a status to its board column heading.
func ColumnTitle(status model.Status) string {
	switch status {
	case model.StatusTodo:
		return "To Do"
	case model.StatusInProgress:
		return "In Progress"
	case model.StatusDone:
		return "Done"
	}
	return string(status)
}

// FormatColumnHeader formats a board column header.
func FormatColumnHeader(w io.Writer, status model.Status, count int) {
	fmt.Fprintln(w, ColumnSeparator)
	fmt.Fprintf(w, "%s (%d)\n", ColumnTitle(status), count)
	fmt.Fprintln(w, ColumnSeparator)
}

// FormatTask formats a task line.
// Format: "{N:>4}  {TITLE}  [{PRIORITY}]{  due DATE}\n"
func FormatTask(w io.Writer, num int, t model.Task) {
	line := fmt.Sprintf("%4d  %s", num, normalizeTitle(t.Title))
	if t.Priority != "" {
		line += fmt.Sprintf("  [%s]", t.Priority)
	}
	if t.DueDate != "" {
		line += fmt.Sprintf("  due %s", t.DueDate)
	}
	fmt.Fprintln(w, line)
}

// FormatTaskDetail prints the full record of one task.
func FormatTaskDetail(w io.Writer, num int, t model.Task) {
	fmt.Fprintf(w, "%4d  %s\n", num, normalizeTitle(t.Title))
	fmt.Fprintf(w, "      status: %s  priority: %s\n", t.Status, t.Priority)
	if t.Description != "" {
		fmt.Fprintf(w, "      %s\n", normalizeTitle(t.Description))
	}
	if t.DueDate != "" {
		fmt.Fprintf(w, "      due: %s\n", t.DueDate)
	}
}

// FormatUser prints a user profile.
func FormatUser(w io.Writer, u model.User) {
	fmt.Fprintf(w, "%s <%s>\n", u.Name, u.Email)
	if u.WalletAddress != "" {
		fmt.Fprintf(w, "wallet: %s\n", u.WalletAddress)
	}
}

// normalizeTitle normalizes free text for single-line display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
