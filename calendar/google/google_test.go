package google

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/hupe1980/meetingmesh/core"
)

func TestToMeeting_TimedEvent(t *testing.T) {
	store := &Store{loc: time.UTC}

	m, err := store.toMeeting(&calendar.Event{
		Id:       "ev-1",
		Summary:  "Design Review",
		Location: "Room 4",
		Start:    &calendar.EventDateTime{DateTime: "2026-03-03T14:00:00Z"},
		End:      &calendar.EventDateTime{DateTime: "2026-03-03T15:00:00Z"},
		Attendees: []*calendar.EventAttendee{
			{Email: "alice@example.com"},
			{Email: ""},
			{Email: "bob@example.com"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ev-1", m.ID)
	assert.Equal(t, "Design Review", m.Title)
	assert.Equal(t, time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC), m.Start)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, m.Attendees)
}

func TestToMeeting_AllDayEvent(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	store := &Store{loc: loc}

	m, err := store.toMeeting(&calendar.Event{
		Id:    "ev-2",
		Start: &calendar.EventDateTime{Date: "2026-03-03"},
		End:   &calendar.EventDateTime{Date: "2026-03-04"},
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.March, 3, 0, 0, 0, 0, loc), m.Start)
	assert.Equal(t, time.Date(2026, time.March, 4, 0, 0, 0, 0, loc), m.End)
}

func TestToMeeting_MissingTime(t *testing.T) {
	store := &Store{loc: time.UTC}

	_, err := store.toMeeting(&calendar.Event{Id: "ev-3"})
	assert.Error(t, err)
}

func TestFromMeeting(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	event := fromMeeting(core.Meeting{
		Title:     "Sync",
		Start:     time.Date(2026, time.March, 3, 14, 0, 0, 0, loc),
		End:       time.Date(2026, time.March, 3, 14, 30, 0, 0, loc),
		Attendees: []string{"alice@example.com"},
	})

	assert.Equal(t, "Sync", event.Summary)
	assert.Equal(t, "2026-03-03T14:00:00+01:00", event.Start.DateTime)
	assert.Equal(t, "Europe/Berlin", event.Start.TimeZone)
	require.Len(t, event.Attendees, 1)
	assert.Equal(t, "alice@example.com", event.Attendees[0].Email)
}
