package nlu

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meetingmesh/core"
)

func TestParseResponse_PlainJSON(t *testing.T) {
	raw := `{"intent":"ADD_MEETING","confidence":0.95,"extracted_data":{"meeting_title":"Sync","attendees":["a@b.com"]}}`

	got, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, core.IntentAddMeeting, got.Intent)
	assert.Equal(t, 0.95, got.Confidence)
	assert.Equal(t, "Sync", got.Data.Title)
	assert.Equal(t, []string{"a@b.com"}, got.Data.Attendees)
}

func TestParseResponse_StripsCodeFences(t *testing.T) {
	raw := "```json\n{\"intent\":\"VIEW_CALENDAR\",\"confidence\":0.9}\n```"

	got, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, core.IntentViewCalendar, got.Intent)

	raw = "```\n{\"intent\":\"VIEW_CALENDAR\",\"confidence\":0.9}\n```"
	got, err = ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, core.IntentViewCalendar, got.Intent)
}

func TestParseResponse_Invalid(t *testing.T) {
	_, err := ParseResponse("I'd be happy to help with that!")
	assert.Error(t, err)

	_, err = ParseResponse(`{"confidence":0.9}`)
	assert.Error(t, err)
}

func TestFallback_KeywordTable(t *testing.T) {
	tests := []struct {
		input string
		want  core.Intent
	}{
		{"please schedule something", core.IntentAddMeeting},
		{"book a room", core.IntentAddMeeting},
		{"cancel the standup", core.IntentDeleteMeeting},
		{"show my day", core.IntentViewCalendar},
		{"am I free at 3?", core.IntentCheckAvailability},
		{"go ahead", core.IntentConfirmation},
		{"what's the weather", core.IntentGeneralQuery},
	}
	for _, tt := range tests {
		got := Fallback(tt.input)
		assert.Equal(t, tt.want, got.Intent, "input %q", tt.input)
		assert.Equal(t, 0.5, got.Confidence)
	}
}

func TestFallback_FirstRuleWins(t *testing.T) {
	// "cancel" and "meeting" both appear; the scheduling rule is consulted
	// first and "meeting" belongs to it.
	got := Fallback("cancel the meeting")
	assert.Equal(t, core.IntentAddMeeting, got.Intent)
}

func TestBuildPrompt(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	prompt := BuildPrompt(Request{
		Input: "schedule a sync tomorrow",
		History: []core.HistoryEntry{
			{Role: "user", Message: "hello"},
		},
		Now: now,
	})

	assert.True(t, strings.Contains(prompt, `"schedule a sync tomorrow"`))
	assert.True(t, strings.Contains(prompt, "Today's date: 2026-03-02"))
	assert.True(t, strings.Contains(prompt, "Current time: 08:30"))
	assert.True(t, strings.Contains(prompt, "User: hello"))
	assert.True(t, strings.Contains(prompt, "ADD_MEETING"))
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider()
	m.AddResponse("hi", core.ExtractedIntent{Intent: core.IntentGreeting, Confidence: 0.99})

	got, err := m.Classify(t.Context(), Request{Input: "hi"})
	require.NoError(t, err)
	assert.Equal(t, core.IntentGreeting, got.Intent)

	// Unregistered inputs go through the keyword fallback.
	got, err = m.Classify(t.Context(), Request{Input: "delete that"})
	require.NoError(t, err)
	assert.Equal(t, core.IntentDeleteMeeting, got.Intent)
	assert.Equal(t, 2, m.Calls())
}
