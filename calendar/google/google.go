// Package google provides a CalendarStore backed by the Google Calendar
// API. Authentication is supplied by the caller as an oauth2 token source
// or any other client option.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/hupe1980/meetingmesh/core"
)

const allDayLayout = "2006-01-02"

// Options configures the Google Calendar store.
type Options struct {
	// CalendarID selects the calendar to operate on. Defaults to "primary".
	CalendarID string
	// TokenSource supplies OAuth2 credentials.
	TokenSource oauth2.TokenSource
	// HTTPClient overrides the transport entirely; takes precedence over
	// TokenSource.
	HTTPClient *http.Client
	// ClientOptions are passed through to the service constructor.
	ClientOptions []option.ClientOption
	// Location interprets all-day event dates. Defaults to UTC.
	Location *time.Location
}

// Store is a CalendarStore talking to one Google calendar.
type Store struct {
	svc        *calendar.Service
	calendarID string
	loc        *time.Location
}

// Interface compliance (compile-time assertion).
var _ core.CalendarStore = (*Store)(nil)

// NewStore creates a Google Calendar store. One of TokenSource, HTTPClient
// or a credential-carrying client option must be supplied.
func NewStore(ctx context.Context, optFns ...func(o *Options)) (*Store, error) {
	opts := Options{
		CalendarID: "primary",
		Location:   time.UTC,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	clientOpts := opts.ClientOptions
	switch {
	case opts.HTTPClient != nil:
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	case opts.TokenSource != nil:
		clientOpts = append(clientOpts, option.WithTokenSource(opts.TokenSource))
	}

	svc, err := calendar.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("google: create calendar service: %w", err)
	}
	return &Store{svc: svc, calendarID: opts.CalendarID, loc: opts.Location}, nil
}

// NewStoreFromService wraps an existing calendar service, mainly for tests
// against a stub server.
func NewStoreFromService(svc *calendar.Service, optFns ...func(o *Options)) *Store {
	opts := Options{
		CalendarID: "primary",
		Location:   time.UTC,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{svc: svc, calendarID: opts.CalendarID, loc: opts.Location}
}

// GetEvents returns every event overlapping [start, end), ordered by start
// time. Recurring events are expanded into single instances.
func (s *Store) GetEvents(ctx context.Context, start, end time.Time) ([]core.Meeting, error) {
	events, err := s.svc.Events.List(s.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("google: list events: %w", err)
	}

	out := make([]core.Meeting, 0, len(events.Items))
	for _, event := range events.Items {
		m, err := s.toMeeting(event)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// CreateEvent inserts the meeting and returns it with the provider-assigned
// event id.
func (s *Store) CreateEvent(ctx context.Context, m core.Meeting) (core.Meeting, error) {
	if err := m.Validate(); err != nil {
		return core.Meeting{}, err
	}
	m.Attendees = core.NormalizeAttendees(m.Attendees)

	created, err := s.svc.Events.Insert(s.calendarID, fromMeeting(m)).Context(ctx).Do()
	if err != nil {
		return core.Meeting{}, fmt.Errorf("google: insert event: %w", err)
	}
	m.ID = created.Id
	return m, nil
}

// DeleteEvent removes the event by its id.
func (s *Store) DeleteEvent(ctx context.Context, m core.Meeting) error {
	if m.ID == "" {
		return core.ErrNoEventID
	}
	if err := s.svc.Events.Delete(s.calendarID, m.ID).Context(ctx).Do(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			return core.ErrNotFound
		}
		return fmt.Errorf("google: delete event: %w", err)
	}
	return nil
}

// toMeeting maps an API event onto the domain type. All-day events span
// whole days in the store's location.
func (s *Store) toMeeting(event *calendar.Event) (core.Meeting, error) {
	start, err := s.parseEventTime(event.Start)
	if err != nil {
		return core.Meeting{}, fmt.Errorf("google: event %s start: %w", event.Id, err)
	}
	end, err := s.parseEventTime(event.End)
	if err != nil {
		return core.Meeting{}, fmt.Errorf("google: event %s end: %w", event.Id, err)
	}

	var attendees []string
	for _, a := range event.Attendees {
		if a.Email != "" {
			attendees = append(attendees, a.Email)
		}
	}
	return core.Meeting{
		ID:          event.Id,
		Title:       event.Summary,
		Start:       start,
		End:         end,
		Description: event.Description,
		Location:    event.Location,
		Attendees:   attendees,
	}, nil
}

func (s *Store) parseEventTime(edt *calendar.EventDateTime) (time.Time, error) {
	if edt == nil {
		return time.Time{}, errors.New("missing time")
	}
	if edt.DateTime != "" {
		return time.Parse(time.RFC3339, edt.DateTime)
	}
	// All-day events carry a bare date.
	return time.ParseInLocation(allDayLayout, edt.Date, s.loc)
}

func fromMeeting(m core.Meeting) *calendar.Event {
	tz := m.Start.Location().String()
	if tz == "Local" {
		tz = "UTC"
	}
	event := &calendar.Event{
		Summary:     m.Title,
		Description: m.Description,
		Location:    m.Location,
		Start: &calendar.EventDateTime{
			DateTime: m.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: m.End.Format(time.RFC3339),
			TimeZone: tz,
		},
	}
	for _, email := range m.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}
	return event
}
