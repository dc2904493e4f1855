package core

import (
	"testing"
	"time"
)

func TestMeeting_Validate(t *testing.T) {
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	m := Meeting{Title: "Sync", Start: start, End: start.Add(30 * time.Minute)}
	if err := m.Validate(); err != nil {
		t.Fatalf("valid meeting rejected: %v", err)
	}
	m.End = start
	if err := m.Validate(); err == nil {
		t.Fatal("end == start should be rejected")
	}
}

func TestMeeting_Overlaps(t *testing.T) {
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	m := Meeting{Title: "Sync", Start: start, End: start.Add(time.Hour)}

	if !m.Overlaps(start.Add(30*time.Minute), start.Add(90*time.Minute)) {
		t.Error("partial overlap not detected")
	}
	// Half-open interval: touching at the boundary is not a conflict.
	if m.Overlaps(start.Add(time.Hour), start.Add(2*time.Hour)) {
		t.Error("adjacent interval should not overlap")
	}
}

func TestNormalizeAttendees(t *testing.T) {
	got := NormalizeAttendees([]string{" a@b.com", "A@B.com", "", "c@d.com"})
	if len(got) != 2 || got[0] != "a@b.com" || got[1] != "c@d.com" {
		t.Fatalf("unexpected normalization: %v", got)
	}
	if NormalizeAttendees(nil) != nil {
		t.Error("nil list must stay nil to preserve absent semantics")
	}
}

func TestFields_Merge(t *testing.T) {
	f := Fields{Title: "Standup", DurationMinutes: 30}
	f.Merge(Fields{StartDateTime: "2026-03-02T14:00:00", Attendees: []string{}})
	if f.Title != "Standup" || f.StartDateTime != "2026-03-02T14:00:00" {
		t.Fatalf("merge lost values: %+v", f)
	}
	if f.Attendees == nil || len(f.Attendees) != 0 {
		t.Error("explicit empty attendee list must survive the merge")
	}
	f.Merge(Fields{Title: ""})
	if f.Title != "Standup" {
		t.Error("zero values must not overwrite")
	}
}

func TestFindTimezoneToken(t *testing.T) {
	tok, ok := FindTimezoneToken([]string{"3pm tomorrow", "make it EST please"})
	if !ok || tok != "EST" {
		t.Fatalf("expected EST token, got %q ok=%v", tok, ok)
	}
	if _, ok := FindTimezoneToken([]string{"western office"}); ok {
		t.Error("no token expected in unrelated text")
	}
	// Whole-word match only: "best" must not yield EST.
	if _, ok := FindTimezoneToken([]string{"the best time"}); ok {
		t.Error("substring of a word must not match")
	}
}

func TestParseDateTime(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	got, err := ParseDateTime("2026-03-02T14:00:00", loc)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 14 || got.Location() != loc {
		t.Fatalf("naive datetime should land in loc: %v", got)
	}
	if _, err := ParseDateTime("not a time", loc); err == nil {
		t.Error("expected parse error")
	}
}

func TestParseWeekdays(t *testing.T) {
	got := ParseWeekdays([]string{"Tuesday", "friday", "noday"})
	if len(got) != 2 || got[0] != time.Tuesday || got[1] != time.Friday {
		t.Fatalf("unexpected weekdays: %v", got)
	}
}
