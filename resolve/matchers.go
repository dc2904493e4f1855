package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hupe1980/meetingmesh/core"
)

// Matcher decides whether one candidate meeting matches a user-supplied
// identifier. Matchers are built per query so extraction work (emails, time
// tokens) happens once. The heuristics live behind this interface so they
// can be replaced or tested independently of the resolver.
type Matcher interface {
	Match(m core.Meeting) bool
}

var (
	emailPattern     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	clockTimePattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(?:am|pm)\b`)
	hourOnlyPattern  = regexp.MustCompile(`\b(\d{1,2})\s*(?:am|pm)\b`)
)

// titleMatcher matches when the identifier is a case-insensitive substring
// of the meeting title.
type titleMatcher struct {
	needle string
}

// NewTitleMatcher builds the title substring matcher.
func NewTitleMatcher(identifier string) Matcher {
	return titleMatcher{needle: strings.ToLower(identifier)}
}

func (t titleMatcher) Match(m core.Meeting) bool {
	return t.needle != "" && strings.Contains(strings.ToLower(m.Title), t.needle)
}

// emailMatcher matches when any email address extracted from the identifier
// appears in the meeting's attendee list (case-insensitive).
type emailMatcher struct {
	emails []string
}

// NewEmailMatcher builds the attendee email matcher.
func NewEmailMatcher(identifier string) Matcher {
	var emails []string
	for _, e := range emailPattern.FindAllString(identifier, -1) {
		emails = append(emails, strings.ToLower(e))
	}
	return emailMatcher{emails: emails}
}

func (e emailMatcher) Match(m core.Meeting) bool {
	if len(e.emails) == 0 || len(m.Attendees) == 0 {
		return false
	}
	for _, want := range e.emails {
		for _, attendee := range m.Attendees {
			if strings.ToLower(attendee) == want {
				return true
			}
		}
	}
	return false
}

// timeToken is one extracted clock reference: either hour-only ("2pm") or
// hour:minute ("2:30pm").
type timeToken struct {
	text    string // "2:30" for minute form
	hour    int    // for hour-only form
	hasMins bool
}

// timeMatcher matches when an extracted time token lines up with the
// meeting's start time in 12- or 24-hour form.
type timeMatcher struct {
	tokens []timeToken
}

// NewTimeMatcher builds the start-time matcher.
func NewTimeMatcher(identifier string) Matcher {
	lower := strings.ToLower(identifier)
	var tokens []timeToken
	for _, m := range clockTimePattern.FindAllStringSubmatch(lower, -1) {
		tokens = append(tokens, timeToken{text: m[1] + ":" + m[2], hasMins: true})
	}
	// Strip minute forms before scanning hour-only tokens so "2:30pm" does
	// not also produce a bare "30pm"-style artifact.
	stripped := clockTimePattern.ReplaceAllString(lower, "")
	for _, m := range hourOnlyPattern.FindAllStringSubmatch(stripped, -1) {
		if h, err := strconv.Atoi(m[1]); err == nil {
			tokens = append(tokens, timeToken{hour: h})
		}
	}
	return timeMatcher{tokens: tokens}
}

func (t timeMatcher) Match(m core.Meeting) bool {
	if len(t.tokens) == 0 {
		return false
	}
	time12 := strings.ToLower(m.Start.Format("03:04 pm"))
	time24 := m.Start.Format("15:04")
	hour12 := m.Start.Format("3")

	for _, tok := range t.tokens {
		if tok.hasMins {
			if strings.Contains(time12, tok.text) || strings.Contains(time24, tok.text) {
				return true
			}
			continue
		}
		if strconv.Itoa(tok.hour) == hour12 {
			return true
		}
	}
	return false
}

// DefaultChain builds the exact-match rule chain in its fixed precedence:
// title substring, then attendee email, then start time. A meeting is
// claimed by the first matcher that fires; later rules are not consulted
// for that meeting.
func DefaultChain(identifier string) []Matcher {
	return []Matcher{
		NewTitleMatcher(identifier),
		NewEmailMatcher(identifier),
		NewTimeMatcher(identifier),
	}
}
