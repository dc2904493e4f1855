package dialogue

import (
	"context"
	"strings"
	"time"

	"github.com/hupe1980/meetingmesh/core"
	"github.com/hupe1980/meetingmesh/logging"
	"github.com/hupe1980/meetingmesh/nlu"
	"github.com/hupe1980/meetingmesh/render"
	"github.com/hupe1980/meetingmesh/resolve"
	"github.com/hupe1980/meetingmesh/schedule"
	"github.com/hupe1980/meetingmesh/validate"
)

const defaultDurationMinutes = 60

// Options configures a Manager. The engine, resolver, validator and
// renderer are built internally when not supplied, sharing Now, Location
// and Logger.
type Options struct {
	// Now supplies the current time; override in tests.
	Now func() time.Time
	// Location interprets naive extracted datetimes. Defaults to UTC.
	Location *time.Location
	// Logger defaults to the no-op logger.
	Logger logging.Logger

	Engine    *schedule.Engine
	Resolver  *resolve.Resolver
	Validator *validate.Validator
	Renderer  core.Renderer
}

// Manager drives one conversation turn at a time against a calendar store.
// It is safe for concurrent use as long as each session is only processed
// by one goroutine at a time.
type Manager struct {
	provider  nlu.Provider
	store     core.CalendarStore
	engine    *schedule.Engine
	resolver  *resolve.Resolver
	validator *validate.Validator
	renderer  core.Renderer
	logger    logging.Logger
	now       func() time.Time
	loc       *time.Location
}

// New creates a dialogue manager over the given NLU provider and calendar
// store.
func New(provider nlu.Provider, store core.CalendarStore, optFns ...func(o *Options)) *Manager {
	opts := Options{
		Now:      time.Now,
		Location: time.UTC,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Engine == nil {
		opts.Engine = schedule.New(store, func(o *schedule.Options) {
			o.Now = opts.Now
			o.Location = opts.Location
			o.Logger = opts.Logger
		})
	}
	if opts.Resolver == nil {
		opts.Resolver = resolve.New(store, func(o *resolve.Options) {
			o.Now = opts.Now
			o.Location = opts.Location
			o.Logger = opts.Logger
		})
	}
	if opts.Validator == nil {
		opts.Validator = validate.New(func(o *validate.Options) {
			o.Location = opts.Location
		})
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewTextRenderer()
	}
	return &Manager{
		provider:  provider,
		store:     store,
		engine:    opts.Engine,
		resolver:  opts.Resolver,
		validator: opts.Validator,
		renderer:  opts.Renderer,
		logger:    opts.Logger,
		now:       opts.Now,
		loc:       opts.Location,
	}
}

// ProcessTurn runs one full user turn: classification, dispatch and
// rendering. It never returns an error to the caller; failures surface as
// an apologetic reply and the pending context is cleared so the
// conversation can recover.
func (m *Manager) ProcessTurn(ctx context.Context, sess *core.Session, input string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("panic while processing turn", "session", sess.ID, "panic", r)
			sess.ClearPending()
			reply = m.render(ctx, core.SituationFailure, nil)
		}
	}()

	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)
	if lower == "clear history" || lower == "reset history" {
		sess.ClearHistory()
		return m.render(ctx, core.SituationHistoryCleared, nil)
	}

	sess.AddHistory("user", input)

	result := m.classify(ctx, sess, input)
	m.logger.Debug("turn classified",
		"session", sess.ID,
		"intent", string(result.Intent),
		"confidence", result.Confidence,
		"state", string(sess.State()),
	)

	reply = m.dispatch(ctx, sess, input, result)
	sess.AddHistory("assistant", reply)
	return reply
}

// classify resolves the intent for input. Obvious confirmations of a
// pending request are recognized locally; everything else goes to the
// provider, with the keyword fallback covering provider errors.
func (m *Manager) classify(ctx context.Context, sess *core.Session, input string) core.ExtractedIntent {
	if pending := sess.PendingContext(); pending != nil && isLikelyConfirmation(input, pending.Action) {
		return core.ExtractedIntent{
			Intent:            core.IntentConfirmation,
			Confidence:        0.9,
			ContextUnderstood: true,
		}
	}

	began := time.Now()
	result, err := m.provider.Classify(ctx, nlu.Request{
		Input:   input,
		History: sess.RecentHistory(),
		Now:     m.now(),
	})
	logging.LogNLUCall(m.logger, m.provider.Info().Provider, time.Since(began), string(result.Intent), err)
	if err != nil {
		return nlu.Fallback(input)
	}
	return result
}

func (m *Manager) dispatch(ctx context.Context, sess *core.Session, input string, result core.ExtractedIntent) string {
	switch result.Intent {
	case core.IntentAddMeeting:
		return m.handleAdd(ctx, sess, result.Data)
	case core.IntentDeleteMeeting:
		return m.handleDelete(ctx, sess, result.Data)
	case core.IntentViewCalendar:
		return m.handleView(ctx, input, result.Data)
	case core.IntentCheckAvailability:
		return m.handleAvailability(ctx, result.Data)
	case core.IntentFindMeetings:
		return m.handleFind(ctx, result.Data)
	case core.IntentConfirmation:
		return m.handleConfirmation(ctx, sess, result)
	case core.IntentProvideInfo:
		return m.handleProvideInfo(ctx, sess, result)
	case core.IntentGreeting:
		sess.ClearPending()
		return m.render(ctx, core.SituationGreeting, nil)
	case core.IntentHelp:
		sess.ClearPending()
		return m.render(ctx, core.SituationHelp, nil)
	default:
		sess.ClearPending()
		return m.render(ctx, core.SituationUnknown, nil)
	}
}

func (m *Manager) render(ctx context.Context, tag string, facts map[string]any) string {
	return m.renderer.Render(ctx, core.Situation{Tag: tag, Facts: facts})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayIndex maps a weekday to its Monday-based index.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
