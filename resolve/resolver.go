// Package resolve locates candidate meetings for deletion requests: first
// by exact identifier heuristics (title substring, attendee email, start
// time), then by fuzzy title similarity when nothing matched exactly.
package resolve

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/meetingmesh/core"
	"github.com/hupe1980/meetingmesh/logging"
)

// DefaultSimilarityThreshold keeps fuzzy candidates whose word-set Jaccard
// similarity reaches this value.
const DefaultSimilarityThreshold = 0.6

// substringScore is assigned to below-threshold candidates rescued by a
// literal word-in-title match.
const substringScore = 0.5

// maxSimilar caps the fuzzy candidate list.
const maxSimilar = 5

// searchWindow is how far ahead the resolver looks when no date was given.
const searchWindow = 30 * 24 * time.Hour

// Options configures a Resolver.
type Options struct {
	// Now supplies the current time; override in tests.
	Now func() time.Time
	// Location interprets query dates. Defaults to UTC.
	Location *time.Location
	// Chain builds the exact-match rule chain for an identifier.
	Chain func(identifier string) []Matcher
	// SimilarityThreshold for fuzzy title matching.
	SimilarityThreshold float64
	// Logger defaults to the no-op logger.
	Logger logging.Logger
}

// Resolver finds meetings in the calendar store by identifier.
type Resolver struct {
	store core.CalendarStore
	opts  Options
}

// New creates a Resolver over the given store.
func New(store core.CalendarStore, optFns ...func(o *Options)) *Resolver {
	opts := Options{
		Now:                 time.Now,
		Location:            time.UTC,
		Chain:               DefaultChain,
		SimilarityThreshold: DefaultSimilarityThreshold,
		Logger:              logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Resolver{store: store, opts: opts}
}

// window computes the search range: the given day, or today through the
// next 30 days.
func (r *Resolver) window(queryDate string) (time.Time, time.Time, error) {
	if queryDate != "" {
		day, err := core.ParseDate(queryDate, r.opts.Location)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return day, day.AddDate(0, 0, 1), nil
	}
	now := r.opts.Now().In(r.opts.Location)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.opts.Location)
	return start, start.Add(searchWindow), nil
}

// FindMeetings returns meetings in the search window matching the
// identifier. Each meeting is matched at most once, by the first rule in
// the chain that fires; rule order is title, then email, then time, and it
// determines which meeting wins when several rules could apply.
func (r *Resolver) FindMeetings(ctx context.Context, identifier, queryDate string) ([]core.Meeting, error) {
	start, end, err := r.window(queryDate)
	if err != nil {
		return nil, err
	}
	began := time.Now()
	all, err := r.store.GetEvents(ctx, start, end)
	logging.LogStoreCall(r.opts.Logger, "get_events", time.Since(began), err)
	if err != nil {
		return nil, err
	}

	chain := r.opts.Chain(identifier)
	var matches []core.Meeting
	for _, meeting := range all {
		for _, matcher := range chain {
			if matcher.Match(meeting) {
				matches = append(matches, meeting)
				break
			}
		}
	}
	r.opts.Logger.Debug("exact meeting search finished",
		"identifier", identifier, "candidates", len(all), "matches", len(matches))
	return matches, nil
}

// FindSimilar returns up to five meetings whose titles are similar to the
// identifier, scored by Jaccard similarity over lowercase word sets. Titles
// below the threshold are still kept at a fixed lower score when any
// identifier word longer than two characters appears literally in the
// title. Results are sorted by descending score.
func (r *Resolver) FindSimilar(ctx context.Context, identifier, queryDate string) ([]core.Meeting, error) {
	start, end, err := r.window(queryDate)
	if err != nil {
		return nil, err
	}
	all, err := r.store.GetEvents(ctx, start, end)
	if err != nil {
		return nil, err
	}

	identifierWords := wordSet(identifier)
	type scored struct {
		meeting core.Meeting
		score   float64
	}
	var candidates []scored
	for _, meeting := range all {
		titleLower := strings.ToLower(meeting.Title)
		score := jaccard(identifierWords, wordSet(meeting.Title))
		switch {
		case score >= r.opts.SimilarityThreshold:
			candidates = append(candidates, scored{meeting, score})
		case anyWordInTitle(identifierWords, titleLower):
			candidates = append(candidates, scored{meeting, substringScore})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > maxSimilar {
		candidates = candidates[:maxSimilar]
	}
	out := make([]core.Meeting, len(candidates))
	for i, c := range candidates {
		out[i] = c.meeting
	}
	return out, nil
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for w := range a {
		if _, ok := b[w]; ok {
			common++
		}
	}
	union := len(a) + len(b) - common
	return float64(common) / float64(union)
}

func anyWordInTitle(words map[string]struct{}, titleLower string) bool {
	for w := range words {
		if len(w) > 2 && strings.Contains(titleLower, w) {
			return true
		}
	}
	return false
}
