package core

import (
	"strings"
	"testing"
)

func TestSession_HistoryBounded(t *testing.T) {
	s := NewSession("s1")
	for i := 0; i < 5; i++ {
		s.AddHistory("user", "question")
		s.AddHistory("assistant", "answer")
	}
	if got := len(s.RecentHistory()); got != 6 {
		t.Fatalf("expected 6 retained entries, got %d", got)
	}
}

func TestSession_HistoryTruncation(t *testing.T) {
	s := NewSession("s2")
	s.AddHistory("user", strings.Repeat("x", 400))
	entries := s.RecentHistory()
	if len(entries[0].Message) != 153 { // 150 chars + ellipsis
		t.Fatalf("expected truncated message, got len %d", len(entries[0].Message))
	}
}

func TestSession_PendingLifecycle(t *testing.T) {
	s := NewSession("s3")
	if s.State() != StateIdle {
		t.Fatalf("new session should be idle, got %s", s.State())
	}
	s.SetPending(&PendingContext{
		Action: ActionAddMeeting,
		State:  MissingFieldsState{Missing: []string{"meeting_title"}},
	})
	if s.State() != StateAwaitingFields {
		t.Fatalf("expected AWAITING_FIELDS, got %s", s.State())
	}
	s.ClearPending()
	if s.State() != StateIdle {
		t.Fatalf("expected IDLE after clear, got %s", s.State())
	}
}

func TestSession_CloneDiverges(t *testing.T) {
	s := NewSession("s4")
	s.AddHistory("user", "hi")
	clone := s.Clone()
	clone.AddHistory("user", "more")
	if len(s.RecentHistory()) != 1 {
		t.Error("original history should not see clone's entry")
	}
}

func TestPendingContext_DialogueStates(t *testing.T) {
	cases := []struct {
		state PendingState
		want  DialogueState
	}{
		{MissingFieldsState{}, StateAwaitingFields},
		{ConflictState{}, StateAwaitingConflictChoice},
		{NeedsIdentifierState{}, StateAwaitingDeleteIdentifier},
		{DisambiguationState{}, StateAwaitingDeleteDisambiguation},
		{DeleteConfirmState{}, StateAwaitingDeleteConfirm},
		{BulkDeleteConfirmState{}, StateAwaitingBulkDeleteConfirm},
	}
	for _, tc := range cases {
		p := &PendingContext{State: tc.state}
		if got := p.DialogueState(); got != tc.want {
			t.Errorf("state %T: expected %s, got %s", tc.state, tc.want, got)
		}
	}
	var none *PendingContext
	if none.DialogueState() != StateIdle {
		t.Error("nil pending context should be idle")
	}
}
