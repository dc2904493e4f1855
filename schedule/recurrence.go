package schedule

import (
	"time"

	"github.com/hupe1980/meetingmesh/core"
)

// GenerateOccurrences expands a recurrence spec into concrete start times,
// preserving the time of day of the anchor. It returns nil for an invalid
// spec.
//
// Weekly series pinned to weekdays keep the anchor when it already falls on
// one of the requested days; otherwise they jump to the next occurrence of
// the earliest requested weekday and step seven days from there, so a
// multi-day request still yields one meeting per week.
func GenerateOccurrences(start time.Time, spec core.RecurrenceSpec) []time.Time {
	if !spec.Valid() {
		return nil
	}

	dates := make([]time.Time, 0, spec.Count)
	switch spec.Pattern {
	case core.RecurDaily:
		for i := 0; i < spec.Count; i++ {
			dates = append(dates, start.AddDate(0, 0, i))
		}
	case core.RecurWeekly:
		first := start
		if len(spec.Weekdays) > 0 {
			first = firstWeeklyOccurrence(start, spec.Weekdays)
		}
		for i := 0; i < spec.Count; i++ {
			dates = append(dates, first.AddDate(0, 0, 7*i))
		}
	case core.RecurMonthly:
		for i := 0; i < spec.Count; i++ {
			dates = append(dates, addMonthsClamped(start, i))
		}
	}
	return dates
}

// firstWeeklyOccurrence finds the anchor for a weekday-pinned weekly series.
// Weekday arithmetic runs on a Monday-based index so "later this week" and
// "next week" resolve the way people phrase weekly meetings.
func firstWeeklyOccurrence(start time.Time, weekdays []time.Weekday) time.Time {
	startIdx := mondayIndex(start.Weekday())

	target := -1
	for _, weekday := range weekdays {
		idx := mondayIndex(weekday)
		if idx == startIdx {
			return start
		}
		if target == -1 || idx < target {
			target = idx
		}
	}

	var ahead int
	if target > startIdx {
		ahead = target - startIdx
	} else {
		ahead = 7 - (startIdx - target)
	}
	return start.AddDate(0, 0, ahead)
}

// mondayIndex maps time.Weekday (Sunday = 0) onto a Monday = 0 index.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// addMonthsClamped advances by whole months, clamping the day of month to
// the target month's length so Jan 31 plus one month lands on the last day
// of February instead of rolling over into March.
func addMonthsClamped(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) - 1 + months
	year += month / 12
	month = month % 12

	day := t.Day()
	if last := daysInMonth(year, time.Month(month+1)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month+1), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
