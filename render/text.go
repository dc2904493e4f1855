package render

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/meetingmesh/core"
)

// conflictLayout is how conflicting occurrence times are shown to the user.
const conflictLayout = "January 2, 2006 at 3:04 PM"

// maxConflictsShown bounds the conflict list in recurring rejections.
const maxConflictsShown = 3

// Extra template keys for variants of a situation that need different
// wording. These never appear in situation tags emitted by the dialogue
// layer; the renderer selects them from the facts.
const (
	keyScheduleConflictNoAlt = "schedule_conflict_no_alternatives"
	keyRecurringPartial      = "recurring_scheduled_partial"
)

// defaultTemplates map situation tags to reply templates. Values the
// template refers to are prepared from the situation facts in Render.
var defaultTemplates = map[string]string{
	core.SituationMeetingScheduled:   "Perfect! I've scheduled '{{.title}}' for {{.start}}. You're all set.",
	core.SituationScheduleConflict:   "That time slot is already booked. I found some alternatives nearby:\n\n{{.suggestions}}\n\nWhich one works better for you?",
	keyScheduleConflictNoAlt:         "That time slot is busy and I couldn't find good alternatives right around then. Could you suggest another time?",
	core.SituationScheduleFailed:     "I ran into an issue scheduling that meeting. Want to try again?",
	core.SituationRecurringConflict:  "Some meeting times conflict with existing events: {{.conflicts}}. Nothing was scheduled.",
	core.SituationRecurringScheduled: "Successfully scheduled {{.created}} recurring meetings.",
	keyRecurringPartial:              "Scheduled {{.created}} out of {{.requested}} meetings. The rest could not be created.",

	core.SituationDeleteNeedIdentifier: "Which meeting would you like to cancel? You can give me the title or the time it starts.",
	core.SituationDeleteNothingOnDate:  "I couldn't find any meetings on {{.date}}.",
	core.SituationBulkDeleteCandidates: "I found {{.count}} {{.noun}} on {{.date}}:\n\n{{.meetings}}\n\nShould I delete all of them?",
	core.SituationBulkDeleteDone:       "Done. I've removed {{.count}} {{.noun}} from your calendar.",
	core.SituationDeleteConfirm:        "Found it. I can cancel '{{.title}}' on {{.start}}. Should I go ahead and remove it?",
	core.SituationDeleteCandidates:     "I found a few meetings that might match:\n\n{{.meetings}}\n\nWhich one would you like me to cancel?",
	core.SituationDeleteNotFound:       "I couldn't find a meeting matching that description. Could you give me a bit more detail, like the title or when it starts?",
	core.SituationMeetingDeleted:       "Done. I've removed that meeting from your calendar.",
	core.SituationDeleteFailed:         "I ran into an issue deleting that meeting. Please try again.",

	core.SituationScheduleEmpty:  "Looks like you've got a clear schedule for that time.",
	core.SituationScheduleEvents: "Here's what you've got coming up ({{.count}} {{.noun}}):\n\n{{.events}}",

	core.SituationAvailabilityFree:     "Good news, you're free at {{.time}}.",
	core.SituationAvailabilityBusy:     "You've got '{{.conflict}}' scheduled at {{.time}}. Want me to check another time?",
	core.SituationAvailabilityNeedTime: "What date and time should I check?",

	core.SituationMeetingsFound: "Found {{.count}} {{.noun}} matching your search:\n\n{{.meetings}}",
	core.SituationMeetingsNone:  "I couldn't find any meetings matching those criteria.",

	core.SituationGreeting: "Hi! I can help you manage your calendar: view your schedule, set up meetings, cancel them, or check when you're free.",
	core.SituationHelp: "Here's what I can do:\n" +
		"- Schedule meetings, one-off or recurring\n" +
		"- Show your calendar for a day or a week\n" +
		"- Check whether you're free at a given time\n" +
		"- Find meetings by title, attendee or time\n" +
		"- Cancel meetings\n" +
		"Just tell me what you need in plain language.",
	core.SituationNoPending:      "There's nothing pending to confirm right now. What would you like to do?",
	core.SituationHistoryCleared: "Conversation history cleared.",
	core.SituationUnknown:        "I'm here to help you manage your calendar. Ask me to check your schedule, set up a meeting, or see if you're free at a certain time.",
	core.SituationFailure:        "Something went wrong while handling that. Let's start over: what would you like to do?",
}

// fieldPrompts phrase the follow-up question for each missing slot.
var fieldPrompts = map[string]string{
	"meeting_title":    "what should I call this meeting?",
	"start_datetime":   "what time would work best? (like '3 PM EST' or '10:30 AM')",
	"duration_minutes": "how long should the meeting be? (like '30 minutes' or '1 hour')",
	"attendees":        "who should I invite? Email addresses work best.",
}

// TextRenderer produces deterministic replies from situation templates. It
// only ever surfaces values present in the situation facts.
type TextRenderer struct {
	templates map[string]string
}

// Option mutates a TextRenderer during construction.
type Option func(r *TextRenderer)

// WithTemplate overrides the template for a single situation tag.
func WithTemplate(tag, tmpl string) Option {
	return func(r *TextRenderer) { r.templates[tag] = tmpl }
}

// NewTextRenderer creates a renderer with the default reply templates.
func NewTextRenderer(opts ...Option) *TextRenderer {
	r := &TextRenderer{templates: make(map[string]string, len(defaultTemplates))}
	for tag, tmpl := range defaultTemplates {
		r.templates[tag] = tmpl
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render implements core.Renderer.
func (r *TextRenderer) Render(_ context.Context, s core.Situation) string {
	if s.Tag == core.SituationMissingFields {
		return r.missingFieldsReply(s.Facts)
	}

	key := r.templateKey(s)
	tmpl, ok := r.templates[key]
	if !ok {
		tmpl = r.templates[core.SituationUnknown]
	}
	out, err := renderTemplate(tmpl, r.prepareState(s))
	if err != nil {
		return r.templates[core.SituationFailure]
	}
	return out
}

// templateKey picks a wording variant for situations whose reply depends on
// the facts, not just the tag.
func (r *TextRenderer) templateKey(s core.Situation) string {
	switch s.Tag {
	case core.SituationScheduleConflict:
		if slots, _ := s.Facts["suggestions"].([]core.TimeSlot); len(slots) == 0 {
			return keyScheduleConflictNoAlt
		}
	case core.SituationRecurringScheduled:
		created, _ := s.Facts["created"].(int)
		requested, _ := s.Facts["requested"].(int)
		if requested > created {
			return keyRecurringPartial
		}
	}
	return s.Tag
}

// prepareState flattens typed facts into template-friendly strings.
func (r *TextRenderer) prepareState(s core.Situation) map[string]any {
	state := make(map[string]any, len(s.Facts)+2)
	for k, v := range s.Facts {
		state[k] = v
	}

	if meeting, ok := s.Facts["meeting"].(core.Meeting); ok {
		state["title"] = meeting.Title
		state["start"] = meeting.Start.Format("2006-01-02 at 15:04")
	}
	if meetings, ok := s.Facts["meetings"].([]core.Meeting); ok {
		state["meetings"] = bulletMeetings(meetings)
		state["count"] = len(meetings)
		state["noun"] = pluralize(len(meetings), "meeting")
	}
	if events, ok := s.Facts["events"].([]core.Meeting); ok {
		state["events"] = bulletMeetings(events)
		state["count"] = len(events)
		state["noun"] = pluralize(len(events), "event")
	}
	if slots, ok := s.Facts["suggestions"].([]core.TimeSlot); ok {
		state["suggestions"] = bulletSlots(slots)
	}
	if conflicts, ok := s.Facts["conflicts"].([]time.Time); ok {
		state["conflicts"] = joinConflicts(conflicts)
	}
	if date, ok := s.Facts["date"].(time.Time); ok {
		state["date"] = date.Format("2006-01-02")
	}
	if at, ok := s.Facts["time"].(time.Time); ok {
		state["time"] = at.Format("2006-01-02 15:04")
	}
	return state
}

// missingFieldsReply asks for the outstanding slots, one focused question
// when a single slot is missing and a short list otherwise.
func (r *TextRenderer) missingFieldsReply(facts map[string]any) string {
	missing, _ := facts["missing"].([]string)
	if len(missing) == 0 {
		return r.templates[core.SituationUnknown]
	}
	if len(missing) == 1 {
		return fmt.Sprintf("Almost there! I just need one more thing: %s", prompt(missing[0]))
	}
	var b strings.Builder
	b.WriteString("I just need a few more details:\n")
	for _, field := range missing {
		fmt.Fprintf(&b, "- %s\n", prompt(field))
	}
	b.WriteString("Just give me what you can.")
	return b.String()
}

func prompt(field string) string {
	if p, ok := fieldPrompts[field]; ok {
		return p
	}
	return fmt.Sprintf("the %s", strings.ReplaceAll(field, "_", " "))
}

func bulletMeetings(meetings []core.Meeting) string {
	sorted := make([]core.Meeting, len(meetings))
	copy(sorted, meetings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	lines := make([]string, len(sorted))
	for i, m := range sorted {
		lines[i] = fmt.Sprintf("- %s", m.String())
	}
	return strings.Join(lines, "\n")
}

func bulletSlots(slots []core.TimeSlot) string {
	lines := make([]string, len(slots))
	for i, slot := range slots {
		lines[i] = fmt.Sprintf("- %s", slot.String())
	}
	return strings.Join(lines, "\n")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

func joinConflicts(conflicts []time.Time) string {
	shown := conflicts
	if len(shown) > maxConflictsShown {
		shown = shown[:maxConflictsShown]
	}
	formatted := make([]string, len(shown))
	for i, t := range shown {
		formatted[i] = t.Format(conflictLayout)
	}
	return strings.Join(formatted, ", ")
}

var _ core.Renderer = (*TextRenderer)(nil)
