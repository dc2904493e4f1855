// Package validate derives the set of still-missing mandatory fields from an
// extracted meeting request. The check is a pure function of its input: the
// same field map always yields the same ordered result.
package validate

import (
	"strings"
	"time"

	"github.com/hupe1980/meetingmesh/core"
)

// Canonical mandatory field names, in the order they are reported.
const (
	FieldTitle     = "meeting_title"
	FieldStart     = "start_datetime"
	FieldAttendees = "attendees"
	FieldDuration  = "duration_minutes"
)

// GroupMatcher decides whether an attendee entry is a team/group reference
// rather than a concrete address. It is an interface so the keyword
// heuristic can be replaced or tested independently.
type GroupMatcher interface {
	Matches(attendee string) bool
}

// KeywordGroupMatcher flags attendees containing a group word while lacking
// an "@". It is the default matcher.
type KeywordGroupMatcher struct {
	words []string
}

// NewKeywordGroupMatcher returns the default team/group/department/staff
// matcher.
func NewKeywordGroupMatcher() *KeywordGroupMatcher {
	return &KeywordGroupMatcher{words: []string{"team", "group", "department", "staff"}}
}

// Matches implements GroupMatcher.
func (m *KeywordGroupMatcher) Matches(attendee string) bool {
	if strings.Contains(attendee, "@") {
		return false
	}
	lower := strings.ToLower(attendee)
	for _, w := range m.words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Options configures a Validator.
type Options struct {
	// Groups detects team-style attendee references. Defaults to the
	// keyword matcher.
	Groups GroupMatcher
	// Location interprets naive start datetimes. Defaults to UTC.
	Location *time.Location
}

// Validator computes missing mandatory fields for add-meeting requests.
type Validator struct {
	opts Options
}

// New creates a Validator with optional overrides.
func New(optFns ...func(o *Options)) *Validator {
	opts := Options{
		Groups:   NewKeywordGroupMatcher(),
		Location: time.UTC,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Validator{opts: opts}
}

// MissingFields returns the ordered list of mandatory fields still missing
// or ambiguous in data. The base set is title, start time and attendees;
// duration is added for non-recurring requests. Rules:
//
//   - absent or zero-valued fields are missing, except an explicitly
//     present empty attendee list, which is a valid solo meeting
//   - a start time whose time-of-day is exactly midnight is treated as
//     missing (the user gave a date, not a time); so is one that fails to
//     parse
//   - attendees containing a group reference without an address are
//     treated as missing (concrete addresses required)
func (v *Validator) MissingFields(data core.Fields) []string {
	fields := []string{FieldTitle, FieldStart, FieldAttendees}
	if !data.IsRecurring() {
		fields = append(fields, FieldDuration)
	}

	var missing []string
	for _, field := range fields {
		switch field {
		case FieldTitle:
			if data.Title == "" {
				missing = append(missing, field)
			}
		case FieldStart:
			if !v.hasUsableStart(data.StartDateTime) {
				missing = append(missing, field)
			}
		case FieldAttendees:
			if data.Attendees == nil {
				missing = append(missing, field)
			} else if v.hasGroupReference(data.Attendees) {
				missing = append(missing, field)
			}
		case FieldDuration:
			if data.DurationMinutes <= 0 {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

func (v *Validator) hasUsableStart(s string) bool {
	if s == "" {
		return false
	}
	t, err := core.ParseDateTime(s, v.opts.Location)
	if err != nil {
		return false
	}
	// Midnight means only a date was extracted.
	h, m, sec := t.Clock()
	return h != 0 || m != 0 || sec != 0
}

func (v *Validator) hasGroupReference(attendees []string) bool {
	for _, a := range attendees {
		if v.opts.Groups.Matches(a) {
			return true
		}
	}
	return false
}
