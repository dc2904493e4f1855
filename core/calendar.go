package core

import (
	"context"
	"errors"
	"time"
)

// ErrNoEventID is returned by DeleteEvent when the meeting carries no
// provider-assigned identifier.
var ErrNoEventID = errors.New("calendar: meeting has no event id")

// ErrNotFound is returned by stores when an event id is unknown.
var ErrNotFound = errors.New("calendar: event not found")

// CalendarStore is the external calendar collaborator. GetEvents returns
// every meeting overlapping [start, end). Store failures are ordinary
// errors; callers convert them into failed outcome values and log them,
// never surfacing them into dialogue state.
type CalendarStore interface {
	GetEvents(ctx context.Context, start, end time.Time) ([]Meeting, error)
	CreateEvent(ctx context.Context, m Meeting) (Meeting, error)
	DeleteEvent(ctx context.Context, m Meeting) error
}
