package task

import (
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestIsDone(t *testing.T) {
	if IsDone("- [ ] open") {
		t.Error("unchecked line reported done")
	}
	if !IsDone("- [x] closed") || !IsDone("- [X] closed") {
		t.Error("checked line not reported done")
	}
}

func TestToggle_MarkDone(t *testing.T) {
	got := Toggle("- [ ] Write report +work @office due:2024-01-01 ^abc123", true)
	want := "- [x] Write report +work @office due:2024-01-01 ^abc123"
	if got != want {
		t.Errorf("Toggle = %q, want %q", got, want)
	}
}

func TestToggle_MarkOpen(t *testing.T) {
	got := Toggle("- [x] Task +p", false)
	if got != "- [ ] Task +p" {
		t.Errorf("Toggle = %q", got)
	}
	got = Toggle("- [X] Task", false)
	if got != "- [ ] Task" {
		t.Errorf("Toggle upper = %q", got)
	}
}

func TestToggle_NormalizesUppercaseChecked(t *testing.T) {
	if got := Toggle("- [X] Task", true); got != "- [x] Task" {
		t.Errorf("Toggle = %q, want lowercase canonical spelling", got)
	}
}

func TestToggle_StripsCompletionMarkerBothDirections(t *testing.T) {
	if got := Toggle("- [x] Task +p ✅ 2024-01-05", false); got != "- [ ] Task +p" {
		t.Errorf("Toggle = %q", got)
	}
	// Removed even when marking done; legacy stamps never survive a toggle.
	if got := Toggle("- [ ] Task ✅ 2024-01-05", true); got != "- [x] Task" {
		t.Errorf("Toggle = %q", got)
	}
}

func TestToggle_FirstOccurrenceOnly(t *testing.T) {
	got := Toggle("- [ ] mention - [ ] literally", true)
	if got != "- [x] mention - [ ] literally" {
		t.Errorf("Toggle = %q, want only the first checkbox replaced", got)
	}
}

func TestToggle_TwiceRestoresLine(t *testing.T) {
	original := "- [ ] Task +work @office due:2024-01-01 ^abc"
	if got := Toggle(Toggle(original, true), false); got != original {
		t.Errorf("double toggle = %q, want %q", got, original)
	}
}

func TestRebuild_PreservesMarker(t *testing.T) {
	original := "- [ ] Old title +junk @old due:2023-01-01 ^xyz"
	got := Rebuild(original, Fields{Title: "Call plumber", Context: "home"})
	want := "- [ ] Call plumber @home ^xyz"
	if got != want {
		t.Errorf("Rebuild = %q, want %q", got, want)
	}
}

func TestRebuild_AllFieldsInFixedOrder(t *testing.T) {
	d := date(t, "2024-06-01")
	got := Rebuild("- [ ] x ^id9", Fields{
		Title:     "  Plan trip  ",
		Project:   "travel",
		Context:   "laptop",
		Reference: "Itinerary",
		Due:       &d,
		Done:      true,
	})
	want := "- [x] Plan trip +travel @laptop due:2024-06-01 [[Itinerary]] ^id9"
	if got != want {
		t.Errorf("Rebuild = %q, want %q", got, want)
	}
}

func TestRebuild_OmitsEmptyOptionals(t *testing.T) {
	got := Rebuild("- [ ] x", Fields{Title: "Bare", Project: "  "})
	if got != "- [ ] Bare" {
		t.Errorf("Rebuild = %q, want no trailing tokens", got)
	}
}

func TestRebuild_RoundTripParse(t *testing.T) {
	line := "- [ ] Write report +work @office due:2024-01-01 ^abc123"
	rec := ParseLine(line, 0, NoSection)
	if rec == nil {
		t.Fatal("parse failed")
	}
	rebuilt := Rebuild(line, Fields{
		Title:     rec.Title,
		Project:   rec.Project,
		Context:   rec.Context,
		Reference: rec.Reference,
		Due:       rec.Due,
		Done:      rec.Done,
	})
	rec2 := ParseLine(rebuilt, 0, NoSection)
	if rec2 == nil {
		t.Fatal("reparse failed")
	}
	if rec2.Title != rec.Title || rec2.Project != rec.Project ||
		rec2.Context != rec.Context || rec2.Marker != rec.Marker ||
		rec2.Done != rec.Done {
		t.Errorf("round trip changed fields: %+v vs %+v", rec, rec2)
	}
	if (rec.Due == nil) != (rec2.Due == nil) ||
		(rec.Due != nil && !rec.Due.Equal(*rec2.Due)) {
		t.Errorf("round trip changed due: %v vs %v", rec.Due, rec2.Due)
	}
}

func TestRewriteDue_ReplacesExistingToken(t *testing.T) {
	got := RewriteDue("- [ ] Task due:2024-01-01 @home", date(t, "2024-05-05"))
	if got != "- [ ] Task due:2024-05-05 @home" {
		t.Errorf("RewriteDue = %q", got)
	}
}

func TestRewriteDue_InsertsBeforeMetadata(t *testing.T) {
	got := RewriteDue("- [ ] Task +work ^m1", date(t, "2024-05-05"))
	if got != "- [ ] Task due:2024-05-05 +work ^m1" {
		t.Errorf("RewriteDue = %q", got)
	}
}

func TestRewriteDue_AppendsWhenNoMetadata(t *testing.T) {
	got := RewriteDue("- [ ] Task", date(t, "2024-05-05"))
	if got != "- [ ] Task due:2024-05-05" {
		t.Errorf("RewriteDue = %q", got)
	}
}
