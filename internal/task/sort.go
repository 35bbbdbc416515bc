package task

import (
	"sort"
	"strings"
	"time"
)

// SortMode selects the display order and grouping of the task list.
type SortMode string

const (
	// SortByTopic orders by project, then section, title, and context.
	SortByTopic SortMode = "topic"
	// SortByLocation orders by context, then section, title, and project.
	SortByLocation SortMode = "location"
	// SortByDate orders undated tasks first, then by ascending due date,
	// with the topic order breaking ties.
	SortByDate SortMode = "date"
)

// ParseSortMode maps a stored or submitted key to a SortMode, falling
// back to topic for anything unrecognized.
func ParseSortMode(key string) SortMode {
	switch key {
	case string(SortByLocation):
		return SortByLocation
	case string(SortByDate):
		return SortByDate
	default:
		return SortByTopic
	}
}

// Sort orders records in place for the given mode. All orders are
// stable: exact ties keep their document order.
func Sort(records []Record, mode SortMode) {
	var less func(a, b *Record) bool
	switch mode {
	case SortByLocation:
		less = func(a, b *Record) bool { return compareByContext(a, b) < 0 }
	case SortByDate:
		less = func(a, b *Record) bool { return compareByDue(a, b) < 0 }
	default:
		less = func(a, b *Record) bool { return compareByProject(a, b) < 0 }
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(&records[i], &records[j])
	})
}

// GroupLabel returns the derived display label for a record under the
// given mode. Date mode labels everything identically so no group
// boundary is rendered. Labels are computed, never persisted.
func GroupLabel(mode SortMode, r *Record) string {
	switch mode {
	case SortByLocation:
		return "by-context: " + orNone(r.Context)
	case SortByDate:
		return ""
	default:
		return "by-project: " + orNone(r.Project)
	}
}

func orNone(v string) string {
	if v == "" {
		return "none"
	}
	return v
}

// Filter applies the display filters before sorting: completed tasks
// are excluded unless showDone is set, and with dueOnly set any task
// due strictly after today is excluded. Tasks without a due date always
// pass the due filter. today should be date-truncated (see DateOnly).
func Filter(records []Record, showDone, dueOnly bool, today time.Time) []Record {
	var out []Record
	for _, r := range records {
		if !showDone && r.Done {
			continue
		}
		if dueOnly && r.Due != nil && r.Due.After(today) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func compareByProject(a, b *Record) int {
	if c := compareOptionText(a.Project, b.Project); c != 0 {
		return c
	}
	if c := compareText(a.Section, b.Section); c != 0 {
		return c
	}
	if c := compareText(a.Title, b.Title); c != 0 {
		return c
	}
	return compareOptionText(a.Context, b.Context)
}

func compareByContext(a, b *Record) int {
	if c := compareOptionText(a.Context, b.Context); c != 0 {
		return c
	}
	if c := compareText(a.Section, b.Section); c != 0 {
		return c
	}
	if c := compareText(a.Title, b.Title); c != 0 {
		return c
	}
	return compareOptionText(a.Project, b.Project)
}

func compareByDue(a, b *Record) int {
	if c := compareOptionDate(a.Due, b.Due); c != 0 {
		return c
	}
	return compareByProject(a, b)
}

// compareOptionText orders present values before absent ones, then
// case-insensitively.
func compareOptionText(a, b string) int {
	switch {
	case a != "" && b != "":
		return compareText(a, b)
	case a != "":
		return -1
	case b != "":
		return 1
	default:
		return 0
	}
}

// compareOptionDate orders absent dates before any present date, then
// ascending.
func compareOptionDate(a, b *time.Time) int {
	switch {
	case a != nil && b != nil:
		if a.Before(*b) {
			return -1
		}
		if a.After(*b) {
			return 1
		}
		return 0
	case a != nil:
		return 1
	case b != nil:
		return -1
	default:
		return 0
	}
}

func compareText(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
