package task

import (
	"regexp"
	"strings"
	"time"
)

// completionRe matches a legacy auto-stamped completion annotation:
// a space, the checkmark glyph, a space, and an ISO date.
var completionRe = regexp.MustCompile(`\s✅\s\d{4}-\d{2}-\d{2}`)

// dueSegmentMarkers mark where metadata begins when a due token has to
// be inserted into a line that has none.
var dueSegmentMarkers = []string{" +", " @", " [[", " ✅", " ^"}

// IsDone reports the checkbox state of a raw line by substring presence,
// without re-parsing it into a record.
func IsDone(line string) bool {
	return strings.Contains(line, "- [x]") || strings.Contains(line, "- [X]")
}

// Toggle rewrites the checkbox state of a raw line, replacing only the
// first occurrence and normalizing the uppercase checked spelling. Any
// completion annotation is stripped regardless of direction; the
// document no longer carries stamps, and toggling is when legacy ones
// are shed.
func Toggle(line string, done bool) string {
	updated := line
	if done {
		updated = strings.Replace(updated, "- [ ]", "- [x]", 1)
		updated = strings.Replace(updated, "- [X]", "- [x]", 1)
	} else {
		updated = strings.Replace(updated, "- [x]", "- [ ]", 1)
		updated = strings.Replace(updated, "- [X]", "- [ ]", 1)
	}
	return completionRe.ReplaceAllString(updated, "")
}

// Rebuild reconstructs a line from scratch in fixed token order:
// checkbox prefix, title, +project, @context, due:, [[reference]], and
// finally the ^marker carried over from the original line. Optional
// components are emitted only when non-empty after trimming.
func Rebuild(original string, f Fields) string {
	var b strings.Builder
	if f.Done {
		b.WriteString("- [x] ")
	} else {
		b.WriteString("- [ ] ")
	}
	b.WriteString(strings.TrimSpace(f.Title))

	if p := strings.TrimSpace(f.Project); p != "" {
		b.WriteString(" +")
		b.WriteString(p)
	}
	if c := strings.TrimSpace(f.Context); c != "" {
		b.WriteString(" @")
		b.WriteString(c)
	}
	if f.Due != nil {
		b.WriteString(" due:")
		b.WriteString(f.Due.Format(DateLayout))
	}
	if r := strings.TrimSpace(f.Reference); r != "" {
		b.WriteString(" [[")
		b.WriteString(r)
		b.WriteString("]]")
	}
	// Identifiers survive every edit untouched.
	if m := captureToken(markerRe, original); m != "" {
		b.WriteString(" ^")
		b.WriteString(m)
	}
	return b.String()
}

// RewriteDue sets the due date of a raw line, replacing the first
// existing due token in place or inserting a new segment before the
// earliest metadata marker.
func RewriteDue(line string, due time.Time) string {
	segment := "due:" + due.Format(DateLayout)
	if loc := dueRe.FindStringIndex(line); loc != nil {
		return line[:loc[0]] + segment + line[loc[1]:]
	}
	return insertDueSegment(line, segment)
}

func insertDueSegment(line, segment string) string {
	insertAt := len(line)
	for _, marker := range dueSegmentMarkers {
		if idx := strings.Index(line, marker); idx >= 0 && idx < insertAt {
			insertAt = idx
		}
	}
	head, tail := line[:insertAt], line[insertAt:]
	if head != "" && !strings.HasSuffix(head, " ") {
		return head + " " + segment + tail
	}
	return head + segment + tail
}
