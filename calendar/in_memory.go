package calendar

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/meetingmesh/core"
)

// InMemoryStore is a volatile CalendarStore implementation keeping events
// in a process local map. It is safe for concurrent access and best suited
// for tests or ephemeral demo assistants. Returned meetings are copies to
// prevent external mutation of internal state.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string]core.Meeting
}

// Interface compliance (compile-time assertion).
var _ core.CalendarStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory calendar.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string]core.Meeting)}
}

// GetEvents returns every meeting overlapping [start, end), ordered by
// start time.
func (s *InMemoryStore) GetEvents(_ context.Context, start, end time.Time) ([]core.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Meeting
	for _, m := range s.events {
		if m.Overlaps(start, end) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// CreateEvent stores the meeting, assigning a fresh event id when none is
// present, and returns the stored copy.
func (s *InMemoryStore) CreateEvent(_ context.Context, m core.Meeting) (core.Meeting, error) {
	if err := m.Validate(); err != nil {
		return core.Meeting{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.Attendees = core.NormalizeAttendees(m.Attendees)
	s.events[m.ID] = m
	return m, nil
}

// DeleteEvent removes the meeting by its event id.
func (s *InMemoryStore) DeleteEvent(_ context.Context, m core.Meeting) error {
	if m.ID == "" {
		return core.ErrNoEventID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[m.ID]; !ok {
		return core.ErrNotFound
	}
	delete(s.events, m.ID)
	return nil
}

// Len reports the number of stored events.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
