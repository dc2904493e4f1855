package core

import (
	"strings"
	"sync"
	"time"
)

// historyLimit bounds the chat history to the last 3 user/assistant pairs.
const historyLimit = 6

// historyTruncate caps a single history message when building NLU context.
const historyTruncate = 150

// HistoryEntry is one recorded turn half (user or assistant).
type HistoryEntry struct {
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the per-conversation container: the active PendingContext plus
// a bounded chat history used only to build NLU context. It is safe for
// concurrent access, but a single conversation is processed strictly one
// turn at a time; sessions must never be shared across conversations.
//
// Contract:
//   - Mutations update the Updated timestamp
//   - History keeps only the most recent 3 user/assistant pairs
//   - Clone performs deep copies for safe divergence.
type Session struct {
	ID      string          `json:"id"`
	Pending *PendingContext `json:"pending,omitempty"`
	History []HistoryEntry  `json:"history"`
	Created time.Time       `json:"created"`
	Updated time.Time       `json:"updated"`
	mu      sync.RWMutex
}

// NewSession creates an idle session with the given ID.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, History: []HistoryEntry{}, Created: now, Updated: now}
}

// State returns the dialogue state derived from the pending context.
func (s *Session) State() DialogueState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Pending.DialogueState()
}

// PendingContext returns the active pending context, or nil when idle.
func (s *Session) PendingContext() *PendingContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Pending
}

// SetPending installs the in-flight request context.
func (s *Session) SetPending(p *PendingContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pending = p
	s.Updated = time.Now()
}

// ClearPending drops the in-flight request context, returning to idle.
func (s *Session) ClearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pending = nil
	s.Updated = time.Now()
}

// AddHistory appends a turn half and trims to the bounded window.
func (s *Session) AddHistory(role, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, HistoryEntry{Role: role, Message: message, Timestamp: time.Now()})
	if len(s.History) > historyLimit {
		s.History = s.History[len(s.History)-historyLimit:]
	}
	s.Updated = time.Now()
}

// RecentHistory returns a defensive copy of the bounded history with long
// messages truncated for prompt context.
func (s *Session) RecentHistory() []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]HistoryEntry, len(s.History))
	for i, e := range s.History {
		if len(e.Message) > historyTruncate {
			e.Message = e.Message[:historyTruncate] + "..."
		}
		out[i] = e
	}
	return out
}

// ClearHistory drops the recorded turns.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = s.History[:0]
	s.Updated = time.Now()
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{ID: s.ID, Created: s.Created, Updated: s.Updated}
	clone.History = make([]HistoryEntry, len(s.History))
	copy(clone.History, s.History)
	if s.Pending != nil {
		p := *s.Pending
		clone.Pending = &p
	}
	return clone
}

// HistoryContext formats the bounded history the way the NLU prompt expects.
func HistoryContext(entries []HistoryEntry) string {
	if len(entries) == 0 {
		return "No previous conversation history."
	}
	lines := []string{"Recent conversation history:"}
	for _, e := range entries {
		label := "Assistant"
		if e.Role == "user" {
			label = "User"
		}
		lines = append(lines, label+": "+e.Message)
	}
	return strings.Join(lines, "\n")
}

// SessionStore persists sessions keyed by conversation id. A multi-session
// deployment must hand out a separate Session per id; implementations never
// share pending state between ids.
type SessionStore interface {
	Get(id string) (*Session, error)
	Save(sess *Session) error
}
