package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/meetingmesh/core"
)

func TestMissingFields_AllAbsent(t *testing.T) {
	v := New()
	missing := v.MissingFields(core.Fields{})
	assert.Equal(t, []string{FieldTitle, FieldStart, FieldAttendees, FieldDuration}, missing)
}

func TestMissingFields_Complete(t *testing.T) {
	v := New()
	missing := v.MissingFields(core.Fields{
		Title:           "Sync",
		StartDateTime:   "2026-03-02T14:00:00",
		DurationMinutes: 30,
		Attendees:       []string{"a@b.com"},
	})
	assert.Empty(t, missing)
}

func TestMissingFields_EmptyAttendeeListIsSolo(t *testing.T) {
	v := New()
	missing := v.MissingFields(core.Fields{
		Title:           "Focus block",
		StartDateTime:   "2026-03-02T09:30:00",
		DurationMinutes: 60,
		Attendees:       []string{},
	})
	assert.NotContains(t, missing, FieldAttendees)
}

func TestMissingFields_MidnightStartIsMissing(t *testing.T) {
	v := New()
	data := core.Fields{
		Title:           "Review",
		StartDateTime:   "2026-03-02T00:00:00",
		DurationMinutes: 30,
		Attendees:       []string{"a@b.com"},
	}
	missing := v.MissingFields(data)
	assert.Equal(t, []string{FieldStart}, missing)

	// Idempotent: same input, same result.
	assert.Equal(t, missing, v.MissingFields(data))
}

func TestMissingFields_UnparseableStartIsMissing(t *testing.T) {
	v := New()
	missing := v.MissingFields(core.Fields{
		Title:           "Review",
		StartDateTime:   "sometime soon",
		DurationMinutes: 30,
		Attendees:       []string{},
	})
	assert.Contains(t, missing, FieldStart)
}

func TestMissingFields_GroupReferenceNeedsAddresses(t *testing.T) {
	v := New()
	missing := v.MissingFields(core.Fields{
		Title:           "Planning",
		StartDateTime:   "2026-03-02T15:00:00",
		DurationMinutes: 45,
		Attendees:       []string{"marketing team"},
	})
	assert.Equal(t, []string{FieldAttendees}, missing)

	// An address alongside the group word is fine.
	missing = v.MissingFields(core.Fields{
		Title:           "Planning",
		StartDateTime:   "2026-03-02T15:00:00",
		DurationMinutes: 45,
		Attendees:       []string{"team-lead@corp.com"},
	})
	assert.Empty(t, missing)
}

func TestMissingFields_RecurringSkipsDuration(t *testing.T) {
	v := New()
	missing := v.MissingFields(core.Fields{
		Title:             "Standup",
		StartDateTime:     "2026-03-03T09:15:00",
		Attendees:         []string{"a@b.com"},
		RecurrencePattern: "weekly",
		RecurrenceCount:   5,
	})
	assert.Empty(t, missing)

	// Pattern without count is not recurring, so duration is required.
	missing = v.MissingFields(core.Fields{
		Title:             "Standup",
		StartDateTime:     "2026-03-03T09:15:00",
		Attendees:         []string{"a@b.com"},
		RecurrencePattern: "weekly",
	})
	assert.Equal(t, []string{FieldDuration}, missing)
}

type neverGroup struct{}

func (neverGroup) Matches(string) bool { return false }

func TestMissingFields_CustomGroupMatcher(t *testing.T) {
	v := New(func(o *Options) { o.Groups = neverGroup{} })
	missing := v.MissingFields(core.Fields{
		Title:           "Planning",
		StartDateTime:   "2026-03-02T15:00:00",
		DurationMinutes: 45,
		Attendees:       []string{"marketing team"},
	})
	assert.Empty(t, missing)
}
