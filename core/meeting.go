package core

import (
	"fmt"
	"strings"
	"time"
)

// Meeting is a concrete calendar entry. ID is the provider-assigned event
// identifier; it is empty for meetings built from extracted slots and is
// required before a meeting can be deleted.
//
// Invariant: End is strictly after Start.
type Meeting struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
}

// Validate reports whether the meeting satisfies its structural invariants.
func (m Meeting) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("meeting: title is required")
	}
	if !m.End.After(m.Start) {
		return fmt.Errorf("meeting %q: end %s is not after start %s", m.Title, m.End, m.Start)
	}
	return nil
}

// Overlaps reports whether the meeting intersects the half-open interval
// [start, end).
func (m Meeting) Overlaps(start, end time.Time) bool {
	return m.Start.Before(end) && m.End.After(start)
}

// String renders the meeting the way it is shown in candidate lists.
func (m Meeting) String() string {
	return fmt.Sprintf("%s (%s - %s)",
		m.Title, m.Start.Format("2006-01-02 15:04"), m.End.Format("15:04"))
}

// NormalizeAttendees returns the attendee list with surrounding whitespace
// trimmed, empty entries dropped and duplicates removed while preserving the
// first-seen order.
func NormalizeAttendees(attendees []string) []string {
	if attendees == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(attendees))
	out := make([]string, 0, len(attendees))
	for _, a := range attendees {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

// TimeSlot is an ephemeral suggestion interval. Slots are produced by the
// alternative-slot search and are never persisted.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// String renders the slot for suggestion lists.
func (s TimeSlot) String() string {
	return fmt.Sprintf("%s - %s", s.Start.Format("2006-01-02 15:04"), s.End.Format("15:04"))
}

// Duration returns the slot length.
func (s TimeSlot) Duration() time.Duration { return s.End.Sub(s.Start) }

// RecurrencePattern enumerates the supported recurrence cadences.
type RecurrencePattern string

const (
	// RecurDaily repeats on consecutive calendar days.
	RecurDaily RecurrencePattern = "daily"
	// RecurWeekly repeats every seven days, optionally pinned to weekdays.
	RecurWeekly RecurrencePattern = "weekly"
	// RecurMonthly repeats on the same day-of-month, clamped to month length.
	RecurMonthly RecurrencePattern = "monthly"
)

// RecurrenceSpec describes a recurring meeting request. Weekdays is only
// meaningful for the weekly pattern.
type RecurrenceSpec struct {
	Pattern  RecurrencePattern
	Count    int
	Weekdays []time.Weekday
}

// Valid reports whether the spec describes a usable recurrence (known
// pattern and positive occurrence count).
func (r RecurrenceSpec) Valid() bool {
	switch r.Pattern {
	case RecurDaily, RecurWeekly, RecurMonthly:
		return r.Count > 0
	default:
		return false
	}
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseWeekdays maps weekday names (case-insensitive) to time.Weekday
// values, silently dropping unknown names the same way the extraction layer
// may hand over free-form tokens.
func ParseWeekdays(names []string) []time.Weekday {
	var out []time.Weekday
	for _, n := range names {
		if wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(n))]; ok {
			out = append(out, wd)
		}
	}
	return out
}
