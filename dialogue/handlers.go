package dialogue

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/meetingmesh/core"
	"github.com/hupe1980/meetingmesh/schedule"
)

const maxFindResults = 10

// Phrases in the raw input that promote a calendar view to a whole week.
var weeklyPhrases = []string{"this week", "weekly", "week", "entire week", "whole week"}

// Keywords that select the single remaining candidate during deletion
// disambiguation.
var selectionKeywords = []string{
	"yes", "yeah", "yep", "right", "correct", "that", "this", "delete", "cancel", "remove",
}

func (m *Manager) handleAdd(ctx context.Context, sess *core.Session, data core.Fields) string {
	if missing := m.validator.MissingFields(data); len(missing) > 0 {
		sess.SetPending(&core.PendingContext{
			Action: core.ActionAddMeeting,
			Data:   data,
			State:  core.MissingFieldsState{Missing: missing},
		})
		return m.render(ctx, core.SituationMissingFields, map[string]any{"missing": missing})
	}
	return m.schedule(ctx, sess, data)
}

// schedule runs the engine once all mandatory fields are present and turns
// the outcome into a reply plus the next pending state.
func (m *Manager) schedule(ctx context.Context, sess *core.Session, data core.Fields) string {
	result, err := m.engine.ScheduleMeeting(ctx, data)
	if err != nil {
		m.logger.Error("scheduling failed", "error", err)
		sess.ClearPending()
		return m.render(ctx, core.SituationScheduleFailed, nil)
	}

	switch result.Outcome {
	case schedule.OutcomeScheduled, schedule.OutcomePartial:
		sess.ClearPending()
		if data.IsRecurring() {
			return m.render(ctx, core.SituationRecurringScheduled, map[string]any{
				"title":     data.Title,
				"created":   result.Created,
				"requested": result.Requested,
			})
		}
		return m.render(ctx, core.SituationMeetingScheduled, map[string]any{
			"meeting": result.Meeting,
		})
	case schedule.OutcomeConflict:
		if len(result.Conflicts) > 0 {
			// Recurring series with occupied occurrences: nothing was
			// created, ask the user to adjust.
			sess.ClearPending()
			return m.render(ctx, core.SituationRecurringConflict, map[string]any{
				"conflicts": result.Conflicts,
			})
		}
		sess.SetPending(&core.PendingContext{
			Action: core.ActionAddMeeting,
			Data:   data,
			State:  core.ConflictState{Suggestions: result.Alternatives},
		})
		return m.render(ctx, core.SituationScheduleConflict, map[string]any{
			"suggestions": result.Alternatives,
		})
	default:
		sess.ClearPending()
		return m.render(ctx, core.SituationScheduleFailed, nil)
	}
}

func (m *Manager) handleDelete(ctx context.Context, sess *core.Session, data core.Fields) string {
	if data.Identifier == "" {
		if data.QueryDate != "" {
			return m.handleBulkDelete(ctx, sess, data)
		}
		sess.SetPending(&core.PendingContext{
			Action: core.ActionDeleteMeeting,
			Data:   data,
			State:  core.NeedsIdentifierState{},
		})
		return m.render(ctx, core.SituationDeleteNeedIdentifier, nil)
	}

	matches, err := m.resolver.FindMeetings(ctx, data.Identifier, data.QueryDate)
	if err != nil {
		m.logger.Error("meeting lookup failed", "identifier", data.Identifier, "error", err)
		sess.ClearPending()
		return m.render(ctx, core.SituationDeleteFailed, nil)
	}

	switch {
	case len(matches) == 1:
		sess.SetPending(&core.PendingContext{
			Action: core.ActionDeleteMeeting,
			Data:   data,
			State:  core.DeleteConfirmState{Meeting: matches[0]},
		})
		return m.render(ctx, core.SituationDeleteConfirm, map[string]any{"meeting": matches[0]})
	case len(matches) > 1:
		sess.SetPending(&core.PendingContext{
			Action: core.ActionDeleteMeeting,
			Data:   data,
			State:  core.DisambiguationState{Candidates: matches},
		})
		return m.render(ctx, core.SituationDeleteCandidates, map[string]any{"meetings": matches})
	default:
		similar, err := m.resolver.FindSimilar(ctx, data.Identifier, data.QueryDate)
		if err == nil && len(similar) > 0 {
			sess.SetPending(&core.PendingContext{
				Action: core.ActionDeleteMeeting,
				Data:   data,
				State:  core.DisambiguationState{Candidates: similar, Fuzzy: true},
			})
			return m.render(ctx, core.SituationDeleteCandidates, map[string]any{"meetings": similar})
		}
		sess.ClearPending()
		return m.render(ctx, core.SituationDeleteNotFound, map[string]any{"identifier": data.Identifier})
	}
}

// handleBulkDelete stages every meeting on a date for deletion pending a
// single confirmation.
func (m *Manager) handleBulkDelete(ctx context.Context, sess *core.Session, data core.Fields) string {
	day, err := core.ParseDate(data.QueryDate, m.loc)
	if err != nil {
		sess.ClearPending()
		return m.render(ctx, core.SituationDeleteNotFound, nil)
	}
	meetings, err := m.store.GetEvents(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		m.logger.Error("event lookup failed", "error", err)
		sess.ClearPending()
		return m.render(ctx, core.SituationDeleteFailed, nil)
	}
	if len(meetings) == 0 {
		sess.ClearPending()
		return m.render(ctx, core.SituationDeleteNothingOnDate, map[string]any{"date": day})
	}
	sess.SetPending(&core.PendingContext{
		Action: core.ActionDeleteMeeting,
		Data:   data,
		State:  core.BulkDeleteConfirmState{Date: day, Meetings: meetings},
	})
	return m.render(ctx, core.SituationBulkDeleteCandidates, map[string]any{
		"date":     day,
		"meetings": meetings,
	})
}

func (m *Manager) handleView(ctx context.Context, input string, data core.Fields) string {
	lower := strings.ToLower(input)
	weekly := data.DateRange == "this_week" || data.DateRange == "next_week"
	if !weekly {
		for _, phrase := range weeklyPhrases {
			if strings.Contains(lower, phrase) {
				weekly = true
				break
			}
		}
	}

	var (
		events []core.Meeting
		err    error
	)
	switch {
	case weekly:
		anchor := m.now().In(m.loc)
		if data.DateRange == "next_week" || strings.Contains(lower, "next week") {
			anchor = anchor.AddDate(0, 0, 7)
		}
		monday := startOfDay(anchor).AddDate(0, 0, -mondayIndex(anchor.Weekday()))
		events, err = m.store.GetEvents(ctx, monday, monday.AddDate(0, 0, 7))
	case data.QueryDate != "":
		var day time.Time
		day, err = core.ParseDate(data.QueryDate, m.loc)
		if err != nil {
			return m.render(ctx, core.SituationScheduleEmpty, nil)
		}
		events, err = m.store.GetEvents(ctx, day, day.AddDate(0, 0, 1))
	default:
		events, err = m.engine.TodaysEvents(ctx)
	}
	if err != nil {
		m.logger.Error("event lookup failed", "error", err)
		return m.render(ctx, core.SituationFailure, nil)
	}
	if len(events) == 0 {
		return m.render(ctx, core.SituationScheduleEmpty, nil)
	}
	return m.render(ctx, core.SituationScheduleEvents, map[string]any{"events": events})
}

func (m *Manager) handleAvailability(ctx context.Context, data core.Fields) string {
	if data.StartDateTime == "" {
		return m.render(ctx, core.SituationAvailabilityNeedTime, nil)
	}
	start, err := core.ParseDateTime(data.StartDateTime, m.loc)
	if err != nil {
		return m.render(ctx, core.SituationAvailabilityNeedTime, nil)
	}

	var end time.Time
	if data.EndDateTime != "" {
		if t, err := core.ParseDateTime(data.EndDateTime, m.loc); err == nil && t.After(start) {
			end = t
		}
	}
	if end.IsZero() {
		minutes := data.DurationMinutes
		if minutes <= 0 {
			minutes = defaultDurationMinutes
		}
		end = start.Add(time.Duration(minutes) * time.Minute)
	}

	conflicts, err := m.store.GetEvents(ctx, start, end)
	if err != nil {
		m.logger.Error("event lookup failed", "error", err)
		return m.render(ctx, core.SituationFailure, nil)
	}
	if len(conflicts) == 0 {
		return m.render(ctx, core.SituationAvailabilityFree, map[string]any{"time": start})
	}
	return m.render(ctx, core.SituationAvailabilityBusy, map[string]any{
		"time":     start,
		"conflict": conflicts[0].Title,
	})
}

func (m *Manager) handleFind(ctx context.Context, data core.Fields) string {
	var (
		meetings []core.Meeting
		err      error
	)
	if data.PersonEmail != "" {
		meetings, err = m.engine.EventsWithPerson(ctx, data.PersonEmail)
	} else {
		now := m.now().In(m.loc)
		meetings, err = m.store.GetEvents(ctx, now, now.AddDate(0, 0, 7))
	}
	if err != nil {
		m.logger.Error("event lookup failed", "error", err)
		return m.render(ctx, core.SituationFailure, nil)
	}
	if len(meetings) == 0 {
		return m.render(ctx, core.SituationMeetingsNone, nil)
	}
	if len(meetings) > maxFindResults {
		meetings = meetings[:maxFindResults]
	}
	return m.render(ctx, core.SituationMeetingsFound, map[string]any{"meetings": meetings})
}

func (m *Manager) handleConfirmation(ctx context.Context, sess *core.Session, result core.ExtractedIntent) string {
	pending := sess.PendingContext()
	if pending == nil {
		return m.render(ctx, core.SituationNoPending, nil)
	}
	switch pending.Action {
	case core.ActionAddMeeting:
		return m.confirmAdd(ctx, sess, pending)
	case core.ActionDeleteMeeting:
		return m.confirmDelete(ctx, sess, pending, result.Data)
	default:
		sess.ClearPending()
		return m.render(ctx, core.SituationNoPending, nil)
	}
}

func (m *Manager) confirmAdd(ctx context.Context, sess *core.Session, pending *core.PendingContext) string {
	if state, ok := pending.State.(core.ConflictState); ok {
		// A bare yes doesn't pick a slot; keep waiting for a concrete time.
		return m.render(ctx, core.SituationScheduleConflict, map[string]any{
			"suggestions": state.Suggestions,
		})
	}
	if missing := m.validator.MissingFields(pending.Data); len(missing) > 0 {
		pending.State = core.MissingFieldsState{Missing: missing}
		sess.SetPending(pending)
		return m.render(ctx, core.SituationMissingFields, map[string]any{"missing": missing})
	}
	return m.schedule(ctx, sess, pending.Data)
}

func (m *Manager) confirmDelete(ctx context.Context, sess *core.Session, pending *core.PendingContext, newData core.Fields) string {
	switch state := pending.State.(type) {
	case core.DeleteConfirmState:
		sess.ClearPending()
		if err := m.store.DeleteEvent(ctx, state.Meeting); err != nil {
			m.logger.Error("delete failed", "id", state.Meeting.ID, "error", err)
			return m.render(ctx, core.SituationDeleteFailed, nil)
		}
		return m.render(ctx, core.SituationMeetingDeleted, map[string]any{"meeting": state.Meeting})
	case core.BulkDeleteConfirmState:
		var deleted []core.Meeting
		for _, meeting := range state.Meetings {
			if err := m.store.DeleteEvent(ctx, meeting); err != nil {
				m.logger.Warn("delete failed", "id", meeting.ID, "error", err)
				continue
			}
			deleted = append(deleted, meeting)
		}
		sess.ClearPending()
		if len(deleted) == 0 {
			return m.render(ctx, core.SituationDeleteFailed, nil)
		}
		return m.render(ctx, core.SituationBulkDeleteDone, map[string]any{
			"meetings": deleted,
			"date":     state.Date,
		})
	case core.DisambiguationState:
		return m.selectCandidate(ctx, sess, pending, state.Candidates, newData)
	case core.NeedsIdentifierState:
		return m.selectCandidate(ctx, sess, pending, nil, newData)
	default:
		sess.ClearPending()
		return m.render(ctx, core.SituationNoPending, nil)
	}
}

// selectCandidate narrows deletion candidates using whatever the user said:
// agreement when only one remains, a 1-based number, a title fragment, or
// failing all that a fresh identifier search.
func (m *Manager) selectCandidate(ctx context.Context, sess *core.Session, pending *core.PendingContext, candidates []core.Meeting, newData core.Fields) string {
	userText := strings.ToLower(strings.TrimSpace(newData.FirstValue()))

	if len(candidates) == 1 {
		if userText == "" {
			return m.stageDelete(ctx, sess, pending, candidates[0])
		}
		for _, keyword := range selectionKeywords {
			if strings.Contains(userText, keyword) {
				return m.stageDelete(ctx, sess, pending, candidates[0])
			}
		}
	}

	if userText != "" {
		if n, err := strconv.Atoi(userText); err == nil {
			if n >= 1 && n <= len(candidates) {
				return m.stageDelete(ctx, sess, pending, candidates[n-1])
			}
		} else {
			for _, candidate := range candidates {
				if strings.Contains(strings.ToLower(candidate.Title), userText) {
					return m.stageDelete(ctx, sess, pending, candidate)
				}
			}
		}
	}

	identifier := newData.Title
	if identifier == "" {
		identifier = newData.Identifier
	}
	if identifier == "" {
		return m.render(ctx, core.SituationDeleteNeedIdentifier, nil)
	}

	matches, err := m.resolver.FindMeetings(ctx, identifier, "")
	if err != nil {
		m.logger.Error("meeting lookup failed", "identifier", identifier, "error", err)
		sess.ClearPending()
		return m.render(ctx, core.SituationDeleteFailed, nil)
	}
	switch {
	case len(matches) == 1:
		return m.stageDelete(ctx, sess, pending, matches[0])
	case len(matches) > 1:
		pending.State = core.DisambiguationState{Candidates: matches}
		sess.SetPending(pending)
		return m.render(ctx, core.SituationDeleteCandidates, map[string]any{"meetings": matches})
	default:
		sess.ClearPending()
		return m.render(ctx, core.SituationDeleteNotFound, map[string]any{"identifier": identifier})
	}
}

// stageDelete moves a resolved meeting to the final yes/no before deletion.
func (m *Manager) stageDelete(ctx context.Context, sess *core.Session, pending *core.PendingContext, meeting core.Meeting) string {
	pending.State = core.DeleteConfirmState{Meeting: meeting}
	sess.SetPending(pending)
	return m.render(ctx, core.SituationDeleteConfirm, map[string]any{"meeting": meeting})
}

func (m *Manager) handleProvideInfo(ctx context.Context, sess *core.Session, result core.ExtractedIntent) string {
	pending := sess.PendingContext()
	if pending == nil {
		return m.render(ctx, core.SituationNoPending, nil)
	}

	newData := result.Data
	if newData.Timezone == "" {
		if token, ok := core.FindTimezoneToken(newData.StringValues()); ok {
			newData.Timezone = token
		}
	}
	pending.Data.Merge(newData)
	m.applyTimezone(&pending.Data)
	sess.SetPending(pending)

	switch pending.Action {
	case core.ActionAddMeeting:
		if missing := m.validator.MissingFields(pending.Data); len(missing) > 0 {
			pending.State = core.MissingFieldsState{Missing: missing}
			sess.SetPending(pending)
			return m.render(ctx, core.SituationMissingFields, map[string]any{"missing": missing})
		}
		return m.schedule(ctx, sess, pending.Data)
	case core.ActionDeleteMeeting:
		if state, ok := pending.State.(core.DisambiguationState); ok {
			return m.selectCandidate(ctx, sess, pending, state.Candidates, newData)
		}
		return m.selectCandidate(ctx, sess, pending, nil, newData)
	default:
		sess.ClearPending()
		return m.render(ctx, core.SituationNoPending, nil)
	}
}

// applyTimezone re-anchors a naive start datetime in the named timezone,
// and converts an offset-carrying one into it, pinning the offset so later
// parses keep it.
func (m *Manager) applyTimezone(data *core.Fields) {
	if data.Timezone == "" || data.StartDateTime == "" {
		return
	}
	loc, ok := core.LookupTimezone(data.Timezone)
	if !ok {
		return
	}
	t, err := core.ParseDateTime(data.StartDateTime, loc)
	if err != nil {
		return
	}
	data.StartDateTime = t.In(loc).Format(time.RFC3339)
}
