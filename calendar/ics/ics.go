// Package ics exports and imports meetings as iCalendar (RFC 5545) data,
// so a schedule can be exchanged with any calendar application.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/hupe1980/meetingmesh/core"
)

const productID = "-//meetingmesh//calendar//EN"

// Encode writes the meetings as a single VCALENDAR stream.
func Encode(w io.Writer, meetings []core.Meeting) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	now := time.Now().UTC()
	for _, m := range meetings {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, m.ID)
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetText(ical.PropSummary, m.Title)
		event.Props.SetDateTime(ical.PropDateTimeStart, m.Start)
		event.Props.SetDateTime(ical.PropDateTimeEnd, m.End)
		if m.Description != "" {
			event.Props.SetText(ical.PropDescription, m.Description)
		}
		if m.Location != "" {
			event.Props.SetText(ical.PropLocation, m.Location)
		}
		for _, attendee := range m.Attendees {
			prop := ical.NewProp(ical.PropAttendee)
			prop.Value = "mailto:" + attendee
			event.Props.Add(prop)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("ics: encode calendar: %w", err)
	}
	return nil
}

// Decode reads every VEVENT from an iCalendar stream. Events without a
// summary or usable times are skipped rather than failing the whole import.
// Floating times are interpreted in loc.
func Decode(r io.Reader, loc *time.Location) ([]core.Meeting, error) {
	if loc == nil {
		loc = time.UTC
	}

	dec := ical.NewDecoder(r)
	var out []core.Meeting
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ics: decode calendar: %w", err)
		}
		for _, event := range cal.Events() {
			m, ok := toMeeting(event, loc)
			if !ok {
				continue
			}
			out = append(out, m)
		}
	}
	return out, nil
}

func toMeeting(event ical.Event, loc *time.Location) (core.Meeting, bool) {
	m := core.Meeting{}
	if prop := event.Props.Get(ical.PropUID); prop != nil {
		m.ID = prop.Value
	}
	if prop := event.Props.Get(ical.PropSummary); prop != nil {
		m.Title = prop.Value
	}
	if prop := event.Props.Get(ical.PropDescription); prop != nil {
		m.Description = prop.Value
	}
	if prop := event.Props.Get(ical.PropLocation); prop != nil {
		m.Location = prop.Value
	}
	for _, prop := range event.Props.Values(ical.PropAttendee) {
		m.Attendees = append(m.Attendees, strings.TrimPrefix(prop.Value, "mailto:"))
	}

	start, err := propDateTime(event.Props.Get(ical.PropDateTimeStart), loc)
	if err != nil {
		return core.Meeting{}, false
	}
	end, err := propDateTime(event.Props.Get(ical.PropDateTimeEnd), loc)
	if err != nil {
		return core.Meeting{}, false
	}
	m.Start, m.End = start, end

	return m, m.Title != "" && m.End.After(m.Start)
}

func propDateTime(prop *ical.Prop, loc *time.Location) (time.Time, error) {
	if prop == nil {
		return time.Time{}, fmt.Errorf("ics: missing datetime property")
	}
	return prop.DateTime(loc)
}
