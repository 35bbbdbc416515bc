// Package task implements the record engine over the checkbox task
// document: parsing lines into records, rewriting single lines for
// toggle/edit/postpone, and sorting, grouping, and filtering for display.
//
// The document itself is the source of truth. Records are recomputed
// from it on every read and are never cached; a LineIndex is valid only
// until the next write.
package task

import (
	"strings"
	"time"
)

// NoSection is the section label for tasks that precede any header.
const NoSection = "No section"

// Separator is the sentinel line before which new tasks are inserted.
const Separator = "---"

// DateLayout is the calendar format used by due and completion tokens.
const DateLayout = "2006-01-02"

// Record is one parsed task line. Optional text fields are empty when
// the token is absent; Due is nil when absent or unparseable.
type Record struct {
	LineIndex int        `json:"line_index"`
	Marker    string     `json:"marker,omitempty"`
	Title     string     `json:"title"`
	Section   string     `json:"section"`
	Project   string     `json:"project,omitempty"`
	Context   string     `json:"context,omitempty"`
	Reference string     `json:"reference,omitempty"`
	Due       *time.Time `json:"-"`
	Done      bool       `json:"done"`
	RawLine   string     `json:"-"`
}

// Fields is the user-editable portion of a task line. The identifier
// marker is deliberately absent: it is re-extracted from the original
// line on rebuild and can never be altered by an edit.
type Fields struct {
	Title     string
	Project   string
	Context   string
	Reference string
	Due       *time.Time
	Done      bool
}

// SplitLines splits a document into lines. A trailing newline does not
// produce a phantom empty final line, so line indices match what the
// editing user sees.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines reassembles a document with a single trailing newline.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// DateOnly truncates t to midnight UTC so it compares cleanly against
// parsed due dates.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
