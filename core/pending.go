package core

import "time"

// DialogueState identifies where a conversation currently sits in the
// multi-turn flow. Every state except StateIdle implies a PendingContext.
type DialogueState string

const (
	StateIdle                         DialogueState = "IDLE"
	StateAwaitingFields               DialogueState = "AWAITING_FIELDS"
	StateAwaitingConflictChoice       DialogueState = "AWAITING_CONFLICT_CHOICE"
	StateAwaitingDeleteIdentifier     DialogueState = "AWAITING_DELETE_IDENTIFIER"
	StateAwaitingDeleteDisambiguation DialogueState = "AWAITING_DELETE_DISAMBIGUATION"
	StateAwaitingDeleteConfirm        DialogueState = "AWAITING_DELETE_CONFIRM"
	StateAwaitingBulkDeleteConfirm    DialogueState = "AWAITING_BULK_DELETE_CONFIRM"
)

// PendingAction tags the request a PendingContext is waiting to complete.
type PendingAction string

const (
	ActionAddMeeting    PendingAction = "ADD_MEETING"
	ActionDeleteMeeting PendingAction = "DELETE_MEETING"
)

// PendingState is the closed set of sub-states a pending request can be in.
// Concrete types implement the unexported marker enabling exhaustive
// switches in the dialogue layer.
type PendingState interface{ isPendingState() }

// MissingFieldsState waits for the user to supply mandatory add-meeting
// fields. Missing preserves the validator's ordering.
type MissingFieldsState struct {
	Missing []string
}

func (MissingFieldsState) isPendingState() {}

// ConflictState waits for the user to pick (or re-confirm) after the
// requested slot collided with existing events.
type ConflictState struct {
	Suggestions []TimeSlot
}

func (ConflictState) isPendingState() {}

// NeedsIdentifierState waits for the user to say which meeting a deletion
// refers to.
type NeedsIdentifierState struct{}

func (NeedsIdentifierState) isPendingState() {}

// DisambiguationState waits for the user to narrow multiple candidate
// meetings down to one. Fuzzy records whether the candidates came from the
// similarity search rather than exact matching.
type DisambiguationState struct {
	Candidates []Meeting
	Fuzzy      bool
}

func (DisambiguationState) isPendingState() {}

// DeleteConfirmState waits for a final yes before deleting one meeting.
type DeleteConfirmState struct {
	Meeting Meeting
}

func (DeleteConfirmState) isPendingState() {}

// BulkDeleteConfirmState waits for a final yes before deleting every
// meeting on Date.
type BulkDeleteConfirmState struct {
	Date     time.Time
	Meetings []Meeting
}

func (BulkDeleteConfirmState) isPendingState() {}

// PendingContext is the single in-flight request tracked across turns.
// Exactly one instance exists per conversation; it is created whenever a
// request cannot complete in one turn and cleared on success, hard failure
// or an unrelated new intent. Only the dialogue state machine mutates it.
type PendingContext struct {
	Action PendingAction
	Data   Fields
	State  PendingState
}

// DialogueState derives the state-machine state from the pending sub-state.
func (p *PendingContext) DialogueState() DialogueState {
	if p == nil {
		return StateIdle
	}
	switch p.State.(type) {
	case MissingFieldsState:
		return StateAwaitingFields
	case ConflictState:
		return StateAwaitingConflictChoice
	case NeedsIdentifierState:
		return StateAwaitingDeleteIdentifier
	case DisambiguationState:
		return StateAwaitingDeleteDisambiguation
	case DeleteConfirmState:
		return StateAwaitingDeleteConfirm
	case BulkDeleteConfirmState:
		return StateAwaitingBulkDeleteConfirm
	default:
		return StateIdle
	}
}
