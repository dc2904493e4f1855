package meetingmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meetingmesh/core"
	"github.com/hupe1980/meetingmesh/nlu"
)

func TestAssistant_ChatSchedulesAndViews(t *testing.T) {
	provider := nlu.NewMockProvider()
	provider.AddResponse("book a sync tomorrow at 2pm", core.ExtractedIntent{
		Intent: core.IntentAddMeeting,
		Data: core.Fields{
			Title:           "Sync",
			StartDateTime:   "2026-03-03T14:00:00",
			DurationMinutes: 30,
			Attendees:       []string{"alice@example.com"},
		},
	})
	provider.AddResponse("what's on tomorrow", core.ExtractedIntent{
		Intent: core.IntentViewCalendar,
		Data:   core.Fields{QueryDate: "2026-03-03"},
	})

	assistant := New(provider)

	reply, err := assistant.Chat(t.Context(), "conv-1", "book a sync tomorrow at 2pm")
	require.NoError(t, err)
	assert.Contains(t, reply, "I've scheduled 'Sync'")

	reply, err = assistant.Chat(t.Context(), "conv-1", "what's on tomorrow")
	require.NoError(t, err)
	assert.Contains(t, reply, "Sync")
}

func TestAssistant_PendingStateSurvivesTurns(t *testing.T) {
	provider := nlu.NewMockProvider()
	provider.AddResponse("set up a retro", core.ExtractedIntent{
		Intent: core.IntentAddMeeting,
		Data:   core.Fields{Title: "Retro"},
	})
	provider.AddResponse("tomorrow at 4pm for 30 minutes, just me", core.ExtractedIntent{
		Intent: core.IntentProvideInfo,
		Data: core.Fields{
			StartDateTime:   "2026-03-03T16:00:00",
			DurationMinutes: 30,
			Attendees:       []string{},
		},
	})

	assistant := New(provider)

	reply, err := assistant.Chat(t.Context(), "conv-1", "set up a retro")
	require.NoError(t, err)
	assert.Contains(t, reply, "a few more details")

	// The pending request is persisted in the session store between calls.
	reply, err = assistant.Chat(t.Context(), "conv-1", "tomorrow at 4pm for 30 minutes, just me")
	require.NoError(t, err)
	assert.Contains(t, reply, "I've scheduled 'Retro'")
}

func TestAssistant_SessionsAreIsolated(t *testing.T) {
	provider := nlu.NewMockProvider()
	provider.AddResponse("set up a retro", core.ExtractedIntent{
		Intent: core.IntentAddMeeting,
		Data:   core.Fields{Title: "Retro"},
	})

	assistant := New(provider)

	_, err := assistant.Chat(t.Context(), "conv-1", "set up a retro")
	require.NoError(t, err)

	// A different session has no pending request to confirm.
	reply, err := assistant.Chat(t.Context(), "conv-2", "yes")
	require.NoError(t, err)
	assert.Contains(t, reply, "nothing pending")
}
