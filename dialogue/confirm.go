package dialogue

import (
	"strings"

	"github.com/hupe1980/meetingmesh/core"
)

// Plain agreement words. Multi-word phrases are matched as substrings,
// single words as whole tokens.
var confirmationWords = []string{
	"yes", "yeah", "yep", "ok", "okay", "sure", "go ahead", "proceed", "correct", "right",
}

// Words that, in a short message, tie the input to an in-flight deletion.
var deletionContextWords = []string{"delete", "cancel", "remove", "that", "this", "meeting"}

var confirmationPrefixes = []string{"yes", "yeah", "yep", "ok", "sure"}

// Message length bounds beyond which an input stops looking like a bare
// confirmation and deserves a full NLU pass.
const (
	maxConfirmationWords  = 5
	maxDeleteContextWords = 10
)

// isLikelyConfirmation reports whether input is almost certainly a yes/no
// style answer to the pending request, letting the turn skip the NLU call.
// Deletions accept a wider net ("cancel that one") because the pending
// context already names the target.
func isLikelyConfirmation(input string, action core.PendingAction) bool {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return false
	}
	words := strings.Fields(lower)

	hasConfirmWord := false
	for _, w := range confirmationWords {
		if strings.Contains(w, " ") {
			if strings.Contains(lower, w) {
				hasConfirmWord = true
				break
			}
		} else if containsWord(words, w) {
			hasConfirmWord = true
			break
		}
	}

	if action == core.ActionDeleteMeeting {
		if hasConfirmWord {
			return true
		}
		if len(words) <= maxDeleteContextWords {
			for _, w := range deletionContextWords {
				if strings.Contains(lower, w) {
					return true
				}
			}
		}
		if strings.Contains(lower, "delete") {
			for _, p := range confirmationPrefixes {
				if strings.HasPrefix(lower, p) {
					return true
				}
			}
		}
		return false
	}

	return hasConfirmWord && len(words) <= maxConfirmationWords
}

func containsWord(words []string, target string) bool {
	for _, w := range words {
		if w == target {
			return true
		}
	}
	return false
}
