package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meetingmesh/core"
)

func day(h, min int) time.Time {
	return time.Date(2026, 3, 2, h, min, 0, 0, time.UTC)
}

func TestInMemoryStore_CreateAssignsID(t *testing.T) {
	s := NewInMemoryStore()
	created, err := s.CreateEvent(context.Background(), core.Meeting{
		Title: "Sync", Start: day(14, 0), End: day(14, 30),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, s.Len())
}

func TestInMemoryStore_GetEventsOverlapWindow(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	_, err := s.CreateEvent(ctx, core.Meeting{Title: "Early", Start: day(9, 0), End: day(10, 0)})
	require.NoError(t, err)
	_, err = s.CreateEvent(ctx, core.Meeting{Title: "Late", Start: day(15, 0), End: day(16, 0)})
	require.NoError(t, err)

	got, err := s.GetEvents(ctx, day(9, 30), day(10, 30))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Early", got[0].Title)

	// Ordered by start time.
	got, err = s.GetEvents(ctx, day(0, 0), day(23, 59))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Early", got[0].Title)

	// Half-open: an event ending exactly at window start is excluded.
	got, err = s.GetEvents(ctx, day(10, 0), day(11, 0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInMemoryStore_DeleteEvent(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	created, err := s.CreateEvent(ctx, core.Meeting{Title: "Sync", Start: day(14, 0), End: day(15, 0)})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteEvent(ctx, core.Meeting{Title: "Sync"}), core.ErrNoEventID)
	assert.ErrorIs(t, s.DeleteEvent(ctx, core.Meeting{ID: "nope"}), core.ErrNotFound)

	require.NoError(t, s.DeleteEvent(ctx, created))
	assert.Equal(t, 0, s.Len())
}
