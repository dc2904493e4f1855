package core

import "context"

// Situation is the structured input to a response renderer: a short tag
// naming what happened plus a fact map holding everything the reply may
// mention. Renderers must never introduce meetings, times or attendees that
// are not present in the facts.
type Situation struct {
	Tag   string
	Facts map[string]any
}

// Renderer turns a situation into user-facing display text.
type Renderer interface {
	Render(ctx context.Context, s Situation) string
}

// Situation tags emitted by the dialogue state machine.
const (
	SituationMeetingScheduled     = "meeting_scheduled"
	SituationScheduleConflict     = "schedule_conflict"
	SituationMissingFields        = "missing_fields"
	SituationScheduleFailed       = "schedule_failed"
	SituationRecurringConflict    = "recurring_conflict"
	SituationRecurringScheduled   = "recurring_scheduled"
	SituationDeleteNeedIdentifier = "delete_need_identifier"
	SituationDeleteNothingOnDate  = "delete_nothing_on_date"
	SituationBulkDeleteCandidates = "bulk_delete_candidates"
	SituationBulkDeleteDone       = "bulk_delete_done"
	SituationDeleteConfirm        = "delete_confirm"
	SituationDeleteCandidates     = "delete_candidates"
	SituationDeleteNotFound       = "delete_not_found"
	SituationMeetingDeleted       = "meeting_deleted"
	SituationDeleteFailed         = "delete_failed"
	SituationScheduleEmpty        = "schedule_empty"
	SituationScheduleEvents       = "schedule_events"
	SituationAvailabilityFree     = "availability_free"
	SituationAvailabilityBusy     = "availability_busy"
	SituationAvailabilityNeedTime = "availability_need_time"
	SituationMeetingsFound        = "meetings_found"
	SituationMeetingsNone         = "meetings_none"
	SituationGreeting             = "greeting"
	SituationHelp                 = "help"
	SituationNoPending            = "no_pending_action"
	SituationHistoryCleared       = "history_cleared"
	SituationUnknown              = "unknown_request"
	SituationFailure              = "turn_failure"
)
