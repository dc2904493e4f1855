package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/hupe1980/meetingmesh/core"
)

// FindAvailableSlots walks the business hours of the given day and returns
// up to max free slots of the requested duration: one at the start of each
// gap between existing events, plus one after the last event if room
// remains before close of business.
func (e *Engine) FindAvailableSlots(ctx context.Context, day time.Time, duration time.Duration, max int) ([]core.TimeSlot, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(),
		e.opts.BusinessHoursStart, 0, 0, 0, day.Location())
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(),
		e.opts.BusinessHoursEnd, 0, 0, 0, day.Location())

	events, err := e.store.GetEvents(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })

	var slots []core.TimeSlot
	current := dayStart
	for _, event := range events {
		if !current.Add(duration).After(event.Start) {
			slots = append(slots, core.TimeSlot{Start: current, End: current.Add(duration)})
			if len(slots) >= max {
				break
			}
		}
		if event.End.After(current) {
			current = event.End
		}
	}
	if len(slots) < max && !current.Add(duration).After(dayEnd) {
		slots = append(slots, core.TimeSlot{Start: current, End: current.Add(duration)})
	}
	if len(slots) > max {
		slots = slots[:max]
	}
	return slots, nil
}

// FindNearbySlots suggests alternatives around a preferred time that turned
// out to be booked: the same day first, then the next day, then the
// previous day when it is not already in the past. Suggestions are ordered
// by distance from the preferred time.
func (e *Engine) FindNearbySlots(ctx context.Context, preferred time.Time, duration time.Duration) ([]core.TimeSlot, error) {
	type ranked struct {
		slot     core.TimeSlot
		distance time.Duration
	}
	var candidates []ranked

	collect := func(day time.Time, want int) error {
		slots, err := e.FindAvailableSlots(ctx, day, duration, want)
		if err != nil {
			return err
		}
		for _, slot := range slots {
			distance := slot.Start.Sub(preferred)
			if distance < 0 {
				distance = -distance
			}
			candidates = append(candidates, ranked{slot: slot, distance: distance})
		}
		return nil
	}

	if err := collect(preferred, defaultSuggestions); err != nil {
		return nil, err
	}
	if len(candidates) < defaultSuggestions {
		if err := collect(preferred.AddDate(0, 0, 1), defaultSuggestions-len(candidates)); err != nil {
			return nil, err
		}
	}
	if len(candidates) < defaultSuggestions {
		previous := preferred.AddDate(0, 0, -1)
		today := startOfDay(e.opts.Now().In(preferred.Location()))
		if !startOfDay(previous).Before(today) {
			if err := collect(previous, defaultSuggestions-len(candidates)); err != nil {
				return nil, err
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if len(candidates) > defaultSuggestions {
		candidates = candidates[:defaultSuggestions]
	}
	out := make([]core.TimeSlot, len(candidates))
	for i, c := range candidates {
		out[i] = c.slot
	}
	return out, nil
}

// FindNextAvailableSlot scans up to a week ahead of the preferred date for
// the first free slot of the requested duration.
func (e *Engine) FindNextAvailableSlot(ctx context.Context, preferred time.Time, duration time.Duration) (core.TimeSlot, bool, error) {
	for i := 0; i < 7; i++ {
		slots, err := e.FindAvailableSlots(ctx, preferred.AddDate(0, 0, i), duration, 1)
		if err != nil {
			return core.TimeSlot{}, false, err
		}
		if len(slots) > 0 {
			return slots[0], true, nil
		}
	}
	return core.TimeSlot{}, false, nil
}
