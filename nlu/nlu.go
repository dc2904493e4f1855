package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/meetingmesh/core"
)

// Request captures the normalized classification input produced by the
// dialogue layer.
type Request struct {
	// Input is the raw user message for this turn.
	Input string
	// History is the recent conversation, oldest first.
	History []core.HistoryEntry
	// Now anchors relative date phrases like "tomorrow at 2pm".
	Now time.Time
}

// Info contains metadata about a provider implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Provider is the minimal interface the dialogue layer needs to classify a
// user turn.
type Provider interface {
	Classify(ctx context.Context, req Request) (core.ExtractedIntent, error)

	// Info returns information about the provider implementation.
	Info() Info
}

// ParseResponse decodes a model completion into an ExtractedIntent.
// Completions wrapped in markdown code fences are unwrapped first, since
// models routinely fence JSON output despite instructions not to.
func ParseResponse(raw string) (core.ExtractedIntent, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	}
	if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	text = strings.TrimSpace(text)

	var result core.ExtractedIntent
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return core.ExtractedIntent{}, fmt.Errorf("nlu: decode completion: %w", err)
	}
	if result.Intent == "" {
		return core.ExtractedIntent{}, fmt.Errorf("nlu: completion missing intent")
	}
	return result, nil
}

// fallbackRules is the keyword classifier used when no provider answer is
// available. Order matters: the first rule whose keywords appear wins.
var fallbackRules = []struct {
	intent   core.Intent
	keywords []string
}{
	{core.IntentAddMeeting, []string{"schedule", "add", "create", "book", "meeting"}},
	{core.IntentDeleteMeeting, []string{"delete", "cancel", "remove"}},
	{core.IntentViewCalendar, []string{"view", "show", "list", "today", "tomorrow"}},
	{core.IntentCheckAvailability, []string{"free", "available", "busy"}},
	{core.IntentConfirmation, []string{"yes", "ok", "okay", "confirm", "go ahead"}},
}

// Fallback classifies a message by keyword lookup alone. It extracts no
// fields and reports a fixed middling confidence, so downstream validation
// will ask the user for everything it needs.
func Fallback(input string) core.ExtractedIntent {
	result := core.ExtractedIntent{
		Intent:     core.IntentGeneralQuery,
		Confidence: 0.5,
	}
	lower := strings.ToLower(input)
	for _, rule := range fallbackRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				result.Intent = rule.intent
				return result
			}
		}
	}
	return result
}
