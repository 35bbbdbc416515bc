package task

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	projectRe   = regexp.MustCompile(`\+(\S+)`)
	contextRe   = regexp.MustCompile(`@(\S+)`)
	dueRe       = regexp.MustCompile(`due:(\d{4}-\d{2}-\d{2})`)
	referenceRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	markerRe    = regexp.MustCompile(`\^([A-Za-z0-9]+)`)
)

// titleMarkers are the substrings at which the free-text title ends,
// checked with and without a leading space. A bare marker character
// mid-word (an email-like "@") still cuts the title; that matches the
// established document behavior and is kept as-is.
var titleMarkers = []string{
	" +", " @", " due:", " [[", " ✅", " ^",
	"+", "@", "due:", "[[", "✅", "^",
}

// ParseDocument splits a document into lines and returns every task
// record in document order, each tagged with its zero-based line index
// and the nearest preceding level-3 header.
func ParseDocument(content string) []Record {
	var records []Record
	section := NoSection

	for i, line := range SplitLines(content) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "###") {
			// Headers are never tasks, even with checkbox-like text.
			section = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			continue
		}
		if rec := ParseLine(line, i, section); rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

// ParseLine converts one raw line into a Record, or nil if the line is
// not a task. The section label is supplied by the document scan.
func ParseLine(line string, lineIndex int, section string) *Record {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)

	var done bool
	var rest string
	switch {
	case strings.HasPrefix(trimmed, "- [x]"):
		done, rest = true, trimmed[len("- [x]"):]
	case strings.HasPrefix(trimmed, "- [X]"):
		done, rest = true, trimmed[len("- [X]"):]
	case strings.HasPrefix(trimmed, "- [ ]"):
		done, rest = false, trimmed[len("- [ ]"):]
	default:
		return nil
	}
	rest = strings.TrimSpace(rest)

	rec := &Record{
		LineIndex: lineIndex,
		Marker:    captureToken(markerRe, rest),
		Title:     extractTitle(rest),
		Section:   section,
		Project:   captureToken(projectRe, rest),
		Context:   captureToken(contextRe, rest),
		Reference: captureToken(referenceRe, rest),
		Done:      done,
		RawLine:   line,
	}

	// An unparseable due token means no due date, not an error.
	if v := captureToken(dueRe, rest); v != "" {
		if d, err := time.Parse(DateLayout, v); err == nil {
			rec.Due = &d
		}
	}
	return rec
}

// captureToken returns the first submatch of re in text, trimmed, or ""
// when there is no match. Duplicate tokens beyond the first are ignored.
func captureToken(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractTitle truncates rest at the earliest title marker. If the cut
// leaves nothing, the full trimmed text is the title.
func extractTitle(rest string) string {
	cut := len(rest)
	for _, marker := range titleMarkers {
		if idx := strings.Index(rest, marker); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	cleaned := strings.TrimSpace(rest[:cut])
	if cleaned == "" {
		return strings.TrimSpace(rest)
	}
	return cleaned
}
