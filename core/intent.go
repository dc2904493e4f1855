package core

// Intent is the classified purpose of a single user turn.
type Intent string

const (
	IntentAddMeeting        Intent = "ADD_MEETING"
	IntentDeleteMeeting     Intent = "DELETE_MEETING"
	IntentViewCalendar      Intent = "VIEW_CALENDAR"
	IntentCheckAvailability Intent = "CHECK_AVAILABILITY"
	IntentFindMeetings      Intent = "FIND_MEETINGS"
	IntentConfirmation      Intent = "CONFIRMATION"
	IntentProvideInfo       Intent = "PROVIDE_INFO"
	IntentGreeting          Intent = "GREETING"
	IntentHelp              Intent = "HELP"
	IntentGeneralQuery      Intent = "GENERAL_QUERY"
)

// Fields is the typed slot map extracted from a user turn. Zero values mean
// "not provided"; Attendees distinguishes absent (nil) from an explicitly
// empty list (solo meeting).
type Fields struct {
	Title             string   `json:"meeting_title,omitempty"`
	Description       string   `json:"meeting_description,omitempty"`
	StartDateTime     string   `json:"start_datetime,omitempty"`
	EndDateTime       string   `json:"end_datetime,omitempty"`
	DurationMinutes   int      `json:"duration_minutes,omitempty"`
	Attendees         []string `json:"attendees,omitempty"`
	Location          string   `json:"location,omitempty"`
	Timezone          string   `json:"timezone,omitempty"`
	RecurrencePattern string   `json:"recurrence_pattern,omitempty"`
	RecurrenceCount   int      `json:"recurrence_count,omitempty"`
	RecurrenceDays    []string `json:"recurrence_days,omitempty"`
	QueryDate         string   `json:"query_date,omitempty"`
	DateRange         string   `json:"date_range,omitempty"`
	Identifier        string   `json:"meeting_identifier,omitempty"`
	PersonEmail       string   `json:"person_email,omitempty"`
}

// IsRecurring reports whether both a recurrence pattern and an occurrence
// count are present. Only then is the request treated as recurring.
func (f Fields) IsRecurring() bool {
	return f.RecurrencePattern != "" && f.RecurrenceCount > 0
}

// Recurrence converts the raw recurrence slots into a RecurrenceSpec.
func (f Fields) Recurrence() RecurrenceSpec {
	return RecurrenceSpec{
		Pattern:  RecurrencePattern(f.RecurrencePattern),
		Count:    f.RecurrenceCount,
		Weekdays: ParseWeekdays(f.RecurrenceDays),
	}
}

// Merge overlays the newer fields onto f. Only non-zero values overwrite;
// an explicitly provided attendee list (even empty) replaces the old one.
func (f *Fields) Merge(newer Fields) {
	if newer.Title != "" {
		f.Title = newer.Title
	}
	if newer.Description != "" {
		f.Description = newer.Description
	}
	if newer.StartDateTime != "" {
		f.StartDateTime = newer.StartDateTime
	}
	if newer.EndDateTime != "" {
		f.EndDateTime = newer.EndDateTime
	}
	if newer.DurationMinutes != 0 {
		f.DurationMinutes = newer.DurationMinutes
	}
	if newer.Attendees != nil {
		f.Attendees = newer.Attendees
	}
	if newer.Location != "" {
		f.Location = newer.Location
	}
	if newer.Timezone != "" {
		f.Timezone = newer.Timezone
	}
	if newer.RecurrencePattern != "" {
		f.RecurrencePattern = newer.RecurrencePattern
	}
	if newer.RecurrenceCount != 0 {
		f.RecurrenceCount = newer.RecurrenceCount
	}
	if newer.RecurrenceDays != nil {
		f.RecurrenceDays = newer.RecurrenceDays
	}
	if newer.QueryDate != "" {
		f.QueryDate = newer.QueryDate
	}
	if newer.DateRange != "" {
		f.DateRange = newer.DateRange
	}
	if newer.Identifier != "" {
		f.Identifier = newer.Identifier
	}
	if newer.PersonEmail != "" {
		f.PersonEmail = newer.PersonEmail
	}
}

// StringValues returns every provided free-text value. The dialogue layer
// scans these for timezone abbreviation tokens during PROVIDE_INFO merges.
func (f Fields) StringValues() []string {
	var out []string
	for _, s := range []string{
		f.Title, f.Description, f.StartDateTime, f.EndDateTime,
		f.Location, f.Timezone, f.QueryDate, f.Identifier, f.PersonEmail,
	} {
		if s != "" {
			out = append(out, s)
		}
	}
	out = append(out, f.Attendees...)
	return out
}

// FirstValue returns the first non-empty extracted value, used when a
// disambiguation reply arrives in an arbitrary slot.
func (f Fields) FirstValue() string {
	if f.Title != "" {
		return f.Title
	}
	if f.Identifier != "" {
		return f.Identifier
	}
	for _, s := range f.StringValues() {
		return s
	}
	return ""
}

// ExtractedIntent is the structured output of the NLU provider for one turn.
// MissingFields is advisory only: the dialogue layer always re-derives the
// missing set through the field validator.
type ExtractedIntent struct {
	Intent            Intent   `json:"intent"`
	Confidence        float64  `json:"confidence"`
	Data              Fields   `json:"extracted_data"`
	MissingFields     []string `json:"missing_fields,omitempty"`
	ContextUnderstood bool     `json:"context_understood"`
	Response          string   `json:"response,omitempty"`
}
