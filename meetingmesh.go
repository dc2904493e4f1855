// Package meetingmesh provides a high-level façade over the dialogue state
// machine, scheduling engine and calendar/session stores, enabling rapid
// construction of conversational meeting assistants. Most applications
// interact with this package by:
//  1. Creating an Assistant via New() with an NLU provider (optionally
//     overriding the default in-memory stores)
//  2. Calling Chat() with a session id and the user's message
//
// The façade delegates turn processing to dialogue.Manager while keeping
// setup ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable calendar store
// and a structured logger.
package meetingmesh

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/meetingmesh/calendar"
	"github.com/hupe1980/meetingmesh/core"
	"github.com/hupe1980/meetingmesh/dialogue"
	"github.com/hupe1980/meetingmesh/logging"
	"github.com/hupe1980/meetingmesh/nlu"
	"github.com/hupe1980/meetingmesh/session"
)

// Options configures the Assistant instance.
type Options struct {
	// Stores (default to in-memory implementations if not provided).
	CalendarStore core.CalendarStore
	SessionStore  core.SessionStore

	// Renderer turns dialogue situations into reply text. Defaults to the
	// deterministic template renderer.
	Renderer core.Renderer

	// Now supplies the current time; override in tests.
	Now func() time.Time
	// Location interprets naive extracted datetimes. Defaults to UTC.
	Location *time.Location

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Assistant is the high-level façade aggregating the dialogue manager and
// its stores.
type Assistant struct {
	opts     Options
	manager  *dialogue.Manager
	sessions core.SessionStore
}

// New creates an Assistant with optional overrides. Any unset store is
// initialized with an in-memory implementation.
func New(provider nlu.Provider, optFns ...func(o *Options)) *Assistant {
	opts := Options{
		CalendarStore: calendar.NewInMemoryStore(),
		SessionStore:  session.NewInMemoryStore(),
		Now:           time.Now,
		Location:      time.UTC,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	manager := dialogue.New(provider, opts.CalendarStore, func(o *dialogue.Options) {
		o.Now = opts.Now
		o.Location = opts.Location
		o.Logger = opts.Logger
		o.Renderer = opts.Renderer
	})

	return &Assistant{opts: opts, manager: manager, sessions: opts.SessionStore}
}

// Chat processes one user message within the named session and returns the
// assistant's reply. Session state (pending request, bounded history) is
// loaded before the turn and persisted after it.
func (a *Assistant) Chat(ctx context.Context, sessionID, input string) (string, error) {
	sess, err := a.sessions.Get(sessionID)
	if err != nil {
		return "", fmt.Errorf("meetingmesh: load session %s: %w", sessionID, err)
	}

	reply := a.manager.ProcessTurn(ctx, sess, input)

	if err := a.sessions.Save(sess); err != nil {
		return "", fmt.Errorf("meetingmesh: save session %s: %w", sessionID, err)
	}
	return reply, nil
}

// Calendar exposes the underlying calendar store, e.g. for seeding demo
// events or exporting the schedule.
func (a *Assistant) Calendar() core.CalendarStore {
	return a.opts.CalendarStore
}
