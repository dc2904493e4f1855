package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/meetingmesh/core"
	"github.com/hupe1980/meetingmesh/logging"
)

const (
	// DefaultBusinessHoursStart is the hour slot search begins at.
	DefaultBusinessHoursStart = 9
	// DefaultBusinessHoursEnd is the hour slot search stops at.
	DefaultBusinessHoursEnd = 17
	// DefaultDuration is assumed when no meeting length was extracted.
	DefaultDuration = 60 * time.Minute

	// defaultSuggestions caps the alternative slot list.
	defaultSuggestions = 3
	// personLookaheadDays bounds the attendee search window.
	personLookaheadDays = 7
	// untitledTitle is used when no title was extracted.
	untitledTitle = "Untitled Meeting"
)

// Outcome classifies the result of a scheduling attempt.
type Outcome string

const (
	// OutcomeScheduled means every requested meeting was created.
	OutcomeScheduled Outcome = "scheduled"
	// OutcomeConflict means nothing was created because at least one slot
	// was already booked.
	OutcomeConflict Outcome = "conflict"
	// OutcomePartial means only some occurrences of a series were created.
	OutcomePartial Outcome = "partial"
	// OutcomeFailed means the calendar store rejected every creation.
	OutcomeFailed Outcome = "failed"
)

// Result carries the outcome of a scheduling attempt. Alternatives is
// populated for single-meeting conflicts, Conflicts for recurring ones.
type Result struct {
	Outcome      Outcome
	Meeting      core.Meeting
	Alternatives []core.TimeSlot
	Conflicts    []time.Time
	Created      int
	Requested    int
}

// Options configures an Engine.
type Options struct {
	// Now supplies the current time; override in tests.
	Now func() time.Time
	// Location is the engine's working timezone. Naive extracted times are
	// interpreted here. Defaults to UTC.
	Location *time.Location
	// Logger defaults to the no-op logger.
	Logger logging.Logger
	// BusinessHoursStart and BusinessHoursEnd bound the slot search, as
	// hours of the day.
	BusinessHoursStart int
	BusinessHoursEnd   int
	// DefaultDuration applies when no duration was extracted.
	DefaultDuration time.Duration
}

// Engine schedules meetings against a calendar store.
type Engine struct {
	store core.CalendarStore
	opts  Options
}

// New creates an Engine over the given store.
func New(store core.CalendarStore, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Now:                time.Now,
		Location:           time.UTC,
		Logger:             logging.NoOpLogger{},
		BusinessHoursStart: DefaultBusinessHoursStart,
		BusinessHoursEnd:   DefaultBusinessHoursEnd,
		DefaultDuration:    DefaultDuration,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{store: store, opts: opts}
}

// ScheduleMeeting attempts to schedule the meeting described by the
// extracted fields. A store error during availability checks is returned as
// an error; a store error during creation becomes a failed (or partial)
// outcome instead, since earlier occurrences may already exist.
func (e *Engine) ScheduleMeeting(ctx context.Context, data core.Fields) (Result, error) {
	start, err := core.ParseDateTime(data.StartDateTime, e.opts.Location)
	if err != nil {
		return Result{}, fmt.Errorf("schedule: parse start time %q: %w", data.StartDateTime, err)
	}
	duration := e.duration(data)

	if data.IsRecurring() {
		return e.scheduleRecurring(ctx, data, start, duration)
	}
	return e.scheduleSingle(ctx, data, start, duration)
}

func (e *Engine) scheduleSingle(ctx context.Context, data core.Fields, start time.Time, duration time.Duration) (Result, error) {
	end := start.Add(duration)

	free, err := e.CheckAvailability(ctx, start, end)
	if err != nil {
		return Result{}, err
	}
	if !free {
		alternatives, err := e.FindNearbySlots(ctx, start, duration)
		if err != nil {
			return Result{}, err
		}
		e.opts.Logger.Info("slot already booked", "start", start, "alternatives", len(alternatives))
		return Result{Outcome: OutcomeConflict, Alternatives: alternatives, Requested: 1}, nil
	}

	began := time.Now()
	created, err := e.store.CreateEvent(ctx, e.buildMeeting(data, start, duration))
	logging.LogStoreCall(e.opts.Logger, "create_event", time.Since(began), err)
	if err != nil {
		return Result{Outcome: OutcomeFailed, Requested: 1}, nil
	}
	return Result{Outcome: OutcomeScheduled, Meeting: created, Created: 1, Requested: 1}, nil
}

func (e *Engine) scheduleRecurring(ctx context.Context, data core.Fields, start time.Time, duration time.Duration) (Result, error) {
	occurrences := GenerateOccurrences(start, data.Recurrence())
	if len(occurrences) == 0 {
		return Result{Outcome: OutcomeFailed}, nil
	}

	var conflicts []time.Time
	for _, occurrence := range occurrences {
		free, err := e.CheckAvailability(ctx, occurrence, occurrence.Add(duration))
		if err != nil {
			return Result{}, err
		}
		if !free {
			conflicts = append(conflicts, occurrence)
		}
	}
	if len(conflicts) > 0 {
		return Result{Outcome: OutcomeConflict, Conflicts: conflicts, Requested: len(occurrences)}, nil
	}

	created := 0
	for _, occurrence := range occurrences {
		if _, err := e.store.CreateEvent(ctx, e.buildMeeting(data, occurrence, duration)); err != nil {
			e.opts.Logger.Warn("failed to create occurrence", "start", occurrence, "error", err)
			continue
		}
		created++
	}

	result := Result{Created: created, Requested: len(occurrences)}
	switch {
	case created == len(occurrences):
		result.Outcome = OutcomeScheduled
	case created > 0:
		result.Outcome = OutcomePartial
	default:
		result.Outcome = OutcomeFailed
	}
	return result, nil
}

// CheckAvailability reports whether the half-open interval [start, end) is
// completely free of existing events.
func (e *Engine) CheckAvailability(ctx context.Context, start, end time.Time) (bool, error) {
	began := time.Now()
	events, err := e.store.GetEvents(ctx, start, end)
	logging.LogStoreCall(e.opts.Logger, "get_events", time.Since(began), err)
	if err != nil {
		return false, err
	}
	return len(events) == 0, nil
}

// TodaysEvents returns all events on the current day.
func (e *Engine) TodaysEvents(ctx context.Context) ([]core.Meeting, error) {
	now := e.opts.Now().In(e.opts.Location)
	start := startOfDay(now)
	return e.store.GetEvents(ctx, start, start.AddDate(0, 0, 1))
}

// EventsWithPerson returns upcoming events that list the given email as an
// attendee, looking ahead one week.
func (e *Engine) EventsWithPerson(ctx context.Context, email string) ([]core.Meeting, error) {
	now := e.opts.Now().In(e.opts.Location)
	events, err := e.store.GetEvents(ctx, now, now.AddDate(0, 0, personLookaheadDays))
	if err != nil {
		return nil, err
	}
	var out []core.Meeting
	for _, event := range events {
		for _, attendee := range event.Attendees {
			if strings.EqualFold(attendee, email) {
				out = append(out, event)
				break
			}
		}
	}
	return out, nil
}

func (e *Engine) duration(data core.Fields) time.Duration {
	if data.DurationMinutes > 0 {
		return time.Duration(data.DurationMinutes) * time.Minute
	}
	return e.opts.DefaultDuration
}

func (e *Engine) buildMeeting(data core.Fields, start time.Time, duration time.Duration) core.Meeting {
	title := data.Title
	if title == "" {
		title = untitledTitle
	}
	return core.Meeting{
		Title:       title,
		Start:       start,
		End:         start.Add(duration),
		Description: data.Description,
		Location:    data.Location,
		Attendees:   core.NormalizeAttendees(data.Attendees),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
