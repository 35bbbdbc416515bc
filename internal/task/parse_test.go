package task

import (
	"testing"
)

func TestParseLine_AllTokens(t *testing.T) {
	line := "- [ ] Write report +work @office due:2024-01-01 ^abc123"
	rec := ParseLine(line, 3, "Work")
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.Done {
		t.Error("done = true, want false")
	}
	if rec.Title != "Write report" {
		t.Errorf("title = %q, want %q", rec.Title, "Write report")
	}
	if rec.Project != "work" {
		t.Errorf("project = %q, want %q", rec.Project, "work")
	}
	if rec.Context != "office" {
		t.Errorf("context = %q, want %q", rec.Context, "office")
	}
	if rec.Marker != "abc123" {
		t.Errorf("marker = %q, want %q", rec.Marker, "abc123")
	}
	if rec.Due == nil || rec.Due.Format(DateLayout) != "2024-01-01" {
		t.Errorf("due = %v, want 2024-01-01", rec.Due)
	}
	if rec.LineIndex != 3 || rec.Section != "Work" {
		t.Errorf("line_index/section = %d/%q", rec.LineIndex, rec.Section)
	}
	if rec.RawLine != line {
		t.Errorf("raw_line = %q, want original", rec.RawLine)
	}
}

func TestParseLine_CheckboxVariants(t *testing.T) {
	cases := []struct {
		line string
		done bool
	}{
		{"- [ ] open", false},
		{"- [x] closed", true},
		{"- [X] closed upper", true},
	}
	for _, tc := range cases {
		rec := ParseLine(tc.line, 0, NoSection)
		if rec == nil {
			t.Fatalf("ParseLine(%q) = nil", tc.line)
		}
		if rec.Done != tc.done {
			t.Errorf("ParseLine(%q).Done = %v, want %v", tc.line, rec.Done, tc.done)
		}
	}
}

func TestParseLine_NonTaskLines(t *testing.T) {
	for _, line := range []string{
		"",
		"notes here",
		"---",
		"# heading",
		"* [ ] wrong bullet",
		"-[ ] missing space",
	} {
		if rec := ParseLine(line, 0, NoSection); rec != nil {
			t.Errorf("ParseLine(%q) = %+v, want nil", line, rec)
		}
	}
}

func TestParseLine_IndentedTask(t *testing.T) {
	line := "    - [x] indented +p"
	rec := ParseLine(line, 0, NoSection)
	if rec == nil {
		t.Fatal("expected a record")
	}
	if !rec.Done || rec.Title != "indented" || rec.Project != "p" {
		t.Errorf("rec = %+v", rec)
	}
	if rec.RawLine != line {
		t.Errorf("raw_line = %q, want untouched original", rec.RawLine)
	}
}

func TestParseLine_InvalidDueDateIgnored(t *testing.T) {
	rec := ParseLine("- [ ] Task due:2024-13-99", 0, NoSection)
	if rec == nil {
		t.Fatal("line is still a task")
	}
	if rec.Due != nil {
		t.Errorf("due = %v, want nil for invalid calendar date", rec.Due)
	}
	if rec.Title != "Task" {
		t.Errorf("title = %q, want %q", rec.Title, "Task")
	}
}

func TestParseLine_FirstTokenWins(t *testing.T) {
	rec := ParseLine("- [ ] Task +alpha +beta @home @work", 0, NoSection)
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.Project != "alpha" {
		t.Errorf("project = %q, want first match %q", rec.Project, "alpha")
	}
	if rec.Context != "home" {
		t.Errorf("context = %q, want first match %q", rec.Context, "home")
	}
}

func TestParseLine_Reference(t *testing.T) {
	rec := ParseLine("- [ ] Review [[Budget 2024]] @desk", 0, NoSection)
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.Reference != "Budget 2024" {
		t.Errorf("reference = %q, want %q", rec.Reference, "Budget 2024")
	}
	if rec.Title != "Review" {
		t.Errorf("title = %q, want %q", rec.Title, "Review")
	}
}

func TestParseLine_BareMarkerCutsTitle(t *testing.T) {
	// A bare @ mid-word is still a cut point; long-standing behavior.
	rec := ParseLine("- [ ] mail bob@example.com about invoice", 0, NoSection)
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.Title != "mail bob" {
		t.Errorf("title = %q, want %q", rec.Title, "mail bob")
	}
}

func TestParseLine_TitleFallsBackWhenOnlyTokens(t *testing.T) {
	rec := ParseLine("- [ ] +work @office", 0, NoSection)
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.Title != "+work @office" {
		t.Errorf("title = %q, want full rest as fallback", rec.Title)
	}
}

func TestParseDocument_SectionTracking(t *testing.T) {
	doc := "- [ ] Before any header\n### Work\nnotes here\n- [ ] Task A\n#### Deep\n- [ ] Task B\n"
	records := ParseDocument(doc)
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	if records[0].Section != NoSection {
		t.Errorf("section = %q, want sentinel %q", records[0].Section, NoSection)
	}
	if records[1].Section != "Work" || records[1].Title != "Task A" {
		t.Errorf("records[1] = %+v", records[1])
	}
	if records[2].Section != "Deep" {
		t.Errorf("section = %q, want %q (#### also updates)", records[2].Section, "Deep")
	}
	if records[1].LineIndex != 3 {
		t.Errorf("line_index = %d, want 3", records[1].LineIndex)
	}
}

func TestParseDocument_HeaderWithCheckboxTextIsNotATask(t *testing.T) {
	records := ParseDocument("### - [ ] looks like a task\n- [ ] real task\n")
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Title != "real task" {
		t.Errorf("title = %q", records[0].Title)
	}
}

func TestParseDocument_ShortHashRunIsNotAHeader(t *testing.T) {
	records := ParseDocument("## Two hashes\n- [ ] task\n")
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Section != NoSection {
		t.Errorf("section = %q, want %q: ## must not update the section", records[0].Section, NoSection)
	}
}

func TestParseDocument_Empty(t *testing.T) {
	if records := ParseDocument(""); len(records) != 0 {
		t.Errorf("records = %v, want none", records)
	}
}

func TestSplitJoinLines(t *testing.T) {
	lines := SplitLines("a\nb\n")
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Fatalf("lines = %v", lines)
	}
	if got := JoinLines(lines); got != "a\nb\n" {
		t.Errorf("JoinLines = %q", got)
	}
	if got := JoinLines(nil); got != "" {
		t.Errorf("JoinLines(nil) = %q, want empty", got)
	}
}
