package nlu

import (
	"fmt"
	"strings"

	"github.com/hupe1980/meetingmesh/core"
)

// BuildPrompt assembles the classification prompt for one turn. Provider
// adapters share this so every model sees the same contract.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString(`You are a meeting scheduler assistant. Analyze the user's message and determine their intent.

`)
	if context := core.HistoryContext(req.History); context != "" {
		b.WriteString(context)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Current user message: %q\n\n", req.Input)
	fmt.Fprintf(&b, "Current context:\n- Today's date: %s\n- Current time: %s\n\n",
		req.Now.Format("2006-01-02"), req.Now.Format("15:04"))

	b.WriteString(`Use the conversation history to understand:
1. If the user is continuing a previous request (like providing missing meeting details)
2. If they're referring to something mentioned earlier
3. If they're confirming or canceling a previous action

Possible intents:
1. VIEW_CALENDAR - User wants to see their schedule
2. ADD_MEETING - User wants to schedule a new meeting
3. DELETE_MEETING - User wants to cancel/delete a meeting
4. CHECK_AVAILABILITY - User wants to check if they're free at a specific time
5. FIND_MEETINGS - User wants to find meetings with specific people or criteria
6. CONFIRMATION - User is confirming a previous action (like "yes" to schedule a meeting)
7. PROVIDE_INFO - User is providing missing information for a previous request
8. GENERAL_QUERY - General questions about their calendar

For ADD_MEETING intent, extract:
- meeting_title (the purpose/title of the meeting)
- meeting_description (optional additional details)
- start_datetime (convert relative times like "tomorrow at 2pm" to a specific datetime)
- duration_minutes (only include if the user specifies a duration)
- attendees (email addresses, names, or team references like "marketing team"; only include if the user mentions attendees, do not default to an empty list)
- location (if mentioned)
- timezone (if the user mentions a timezone like EST, PST, UTC)
- recurrence_pattern ("daily", "weekly" or "monthly" for recurring meetings)
- recurrence_count (number of occurrences, e.g. "for 5 weeks" = 5)
- recurrence_days (for weekly patterns, e.g. ["tuesday"] for "every tuesday")

For VIEW_CALENDAR intent, extract:
- query_date (convert dates like "20th june", "tomorrow" to ISO format YYYY-MM-DD)
- date_range ("this_week", "next_week" or "this_month" for range requests)

For DELETE_MEETING intent, extract:
- meeting_identifier (title, time, or other identifying info)
- query_date (if a specific date is mentioned)

For CHECK_AVAILABILITY intent, extract:
- start_datetime (the time to check)
- duration_minutes (if checking for a specific duration)
- end_datetime (if the user gives a range like "3 to 4pm")

For FIND_MEETINGS intent, extract:
- person_email (if looking for meetings with a specific person)
- meeting_identifier (other search criteria)

For PROVIDE_INFO intent, extract whatever information the user is providing based on the conversation history, including timezone.

DATE PARSING RULES:
- Convert ordinal dates like "20th june" to ISO format; assume the current year when none is given
- Convert relative dates like "today", "tomorrow" to specific dates
- Always use YYYY-MM-DD for query_date and YYYY-MM-DDTHH:MM:SS for start_datetime

RECURRING MEETING RULES:
- For "every tuesday for 5 weeks", start_datetime is the NEXT occurrence of that day, not weeks in the future
- "every tuesday for 5 weeks" -> recurrence_pattern "weekly", recurrence_days ["tuesday"], recurrence_count 5
- "daily for 2 weeks" -> recurrence_pattern "daily", recurrence_count 14

Respond in this exact JSON format:
{
    "intent": "INTENT_NAME",
    "confidence": 0.95,
    "extracted_data": {
        "meeting_title": "title here",
        "start_datetime": "2024-01-15T14:00:00",
        "duration_minutes": 60,
        "attendees": ["person@example.com"]
    },
    "missing_fields": ["field1", "field2"],
    "context_understood": true,
    "response": "Natural language response to the user"
}

Only include relevant fields in extracted_data based on the intent.
Set context_understood to true if you used the conversation history to understand the message.
`)

	return b.String()
}
