package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meetingmesh/calendar"
	"github.com/hupe1980/meetingmesh/core"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T, existing ...core.Meeting) (*Engine, *calendar.InMemoryStore) {
	t.Helper()
	store := calendar.NewInMemoryStore()
	for _, m := range existing {
		_, err := store.CreateEvent(context.Background(), m)
		require.NoError(t, err)
	}
	engine := New(store, func(o *Options) {
		o.Now = fixedNow
	})
	return engine, store
}

func TestScheduleMeeting_SingleSuccess(t *testing.T) {
	engine, store := newTestEngine(t)

	result, err := engine.ScheduleMeeting(context.Background(), core.Fields{
		Title:           "Project Sync",
		StartDateTime:   "2026-03-03T14:00",
		DurationMinutes: 30,
		Attendees:       []string{"alice@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeScheduled, result.Outcome)
	assert.Equal(t, 1, result.Created)
	assert.NotEmpty(t, result.Meeting.ID)
	assert.Equal(t, time.Date(2026, 3, 3, 14, 30, 0, 0, time.UTC), result.Meeting.End)
	assert.Equal(t, 1, store.Len())
}

func TestScheduleMeeting_Defaults(t *testing.T) {
	engine, _ := newTestEngine(t)

	result, err := engine.ScheduleMeeting(context.Background(), core.Fields{
		StartDateTime: "2026-03-03T14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeScheduled, result.Outcome)
	assert.Equal(t, "Untitled Meeting", result.Meeting.Title)
	assert.Equal(t, time.Hour, result.Meeting.End.Sub(result.Meeting.Start))
}

func TestScheduleMeeting_UnparseableStart(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.ScheduleMeeting(context.Background(), core.Fields{
		Title:         "Sync",
		StartDateTime: "tomorrow-ish",
	})
	assert.Error(t, err)
}

func TestScheduleMeeting_ConflictSuggestsAlternatives(t *testing.T) {
	busy := core.Meeting{
		Title: "Existing",
		Start: time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC),
	}
	engine, store := newTestEngine(t, busy)

	result, err := engine.ScheduleMeeting(context.Background(), core.Fields{
		Title:         "Project Sync",
		StartDateTime: "2026-03-03T14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeConflict, result.Outcome)
	assert.Equal(t, 1, store.Len(), "nothing created on conflict")
	require.NotEmpty(t, result.Alternatives)

	// The closest suggestion comes first and no suggestion overlaps the
	// booked slot.
	assert.Equal(t, time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC), result.Alternatives[0].Start)
	for _, slot := range result.Alternatives {
		assert.False(t, busy.Overlaps(slot.Start, slot.End), "slot %s overlaps busy period", slot)
	}
}

func TestScheduleMeeting_RecurringSuccess(t *testing.T) {
	engine, store := newTestEngine(t)

	result, err := engine.ScheduleMeeting(context.Background(), core.Fields{
		Title:             "Daily Standup",
		StartDateTime:     "2026-03-03T09:30",
		DurationMinutes:   15,
		RecurrencePattern: "daily",
		RecurrenceCount:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeScheduled, result.Outcome)
	assert.Equal(t, 5, result.Created)
	assert.Equal(t, 5, result.Requested)
	assert.Equal(t, 5, store.Len())
}

func TestScheduleMeeting_RecurringConflictCreatesNothing(t *testing.T) {
	// The third of five daily occurrences collides with an existing event;
	// the whole series is rejected.
	busy := core.Meeting{
		Title: "Existing",
		Start: time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
	}
	engine, store := newTestEngine(t, busy)

	result, err := engine.ScheduleMeeting(context.Background(), core.Fields{
		Title:             "Daily Standup",
		StartDateTime:     "2026-03-03T09:30",
		DurationMinutes:   15,
		RecurrencePattern: "daily",
		RecurrenceCount:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, OutcomeConflict, result.Outcome)
	assert.Equal(t, 0, result.Created)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC), result.Conflicts[0])
	assert.Equal(t, 1, store.Len(), "no occurrence created when any conflicts")
}

func TestCheckAvailability(t *testing.T) {
	busy := core.Meeting{
		Title: "Existing",
		Start: time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC),
	}
	engine, _ := newTestEngine(t, busy)
	ctx := context.Background()

	free, err := engine.CheckAvailability(ctx,
		time.Date(2026, 3, 3, 14, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, free)

	// Back-to-back is fine: the interval is half-open.
	free, err = engine.CheckAvailability(ctx,
		time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 16, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestFindAvailableSlots_GapWalk(t *testing.T) {
	engine, _ := newTestEngine(t, core.Meeting{
		Title: "Existing",
		Start: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC),
	})

	slots, err := engine.FindAvailableSlots(context.Background(),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), time.Hour, 3)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC), slots[1].Start)
}

func TestFindAvailableSlots_FullyBookedDay(t *testing.T) {
	engine, _ := newTestEngine(t, core.Meeting{
		Title: "All Day",
		Start: time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 3, 17, 0, 0, 0, time.UTC),
	})

	slots, err := engine.FindAvailableSlots(context.Background(),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), time.Hour, 3)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFindNearbySlots_FallsBackToAdjacentDays(t *testing.T) {
	// Tuesday is fully booked, so suggestions come from Wednesday and from
	// Monday, which is still today and therefore allowed.
	engine, _ := newTestEngine(t, core.Meeting{
		Title: "All Day",
		Start: time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 3, 17, 0, 0, 0, time.UTC),
	})

	preferred := time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC)
	slots, err := engine.FindNearbySlots(context.Background(), preferred, time.Hour)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	for _, slot := range slots {
		assert.NotEqual(t, 3, slot.Start.Day(), "booked day must not be suggested")
	}
	// Ordered by distance from the preferred time.
	for i := 1; i < len(slots); i++ {
		prev := absDistance(slots[i-1].Start, preferred)
		curr := absDistance(slots[i].Start, preferred)
		assert.LessOrEqual(t, prev, curr)
	}
}

func TestFindNearbySlots_SkipsPastDay(t *testing.T) {
	// Preferred day is today; the previous day is in the past and must not
	// be suggested even when more suggestions are wanted.
	engine, _ := newTestEngine(t, core.Meeting{
		Title: "All Day",
		Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
	})

	preferred := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	slots, err := engine.FindNearbySlots(context.Background(), preferred, time.Hour)
	require.NoError(t, err)

	for _, slot := range slots {
		assert.False(t, slot.Start.Day() == 1, "past day must not be suggested")
	}
}

func TestTodaysEvents(t *testing.T) {
	engine, _ := newTestEngine(t,
		core.Meeting{
			Title: "Today",
			Start: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
		},
		core.Meeting{
			Title: "Tomorrow",
			Start: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC),
		},
	)

	got, err := engine.TodaysEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Today", got[0].Title)
}

func TestEventsWithPerson(t *testing.T) {
	engine, _ := newTestEngine(t,
		core.Meeting{
			Title:     "With Alice",
			Start:     time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
			End:       time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC),
			Attendees: []string{"Alice@example.com"},
		},
		core.Meeting{
			Title: "Solo",
			Start: time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 3, 13, 0, 0, 0, time.UTC),
		},
		core.Meeting{
			Title:     "Too Far Out",
			Start:     time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC),
			End:       time.Date(2026, 3, 20, 11, 0, 0, 0, time.UTC),
			Attendees: []string{"alice@example.com"},
		},
	)

	got, err := engine.EventsWithPerson(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "With Alice", got[0].Title)
}

func absDistance(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d
}
