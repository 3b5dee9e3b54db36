// File: internal/usecase/sanitizer.go
package usecase

import "regexp"

// FilteredMarker replaces the whole outbound message when an injection
// pattern is detected. All-or-nothing: the original text never reaches
// the model.
const FilteredMarker = "[FILTERED]"

// injectionPatterns is a small fixed heuristic set. It is a best-effort
// filter, not a security boundary.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore previous instructions`),
	regexp.MustCompile(`(?i)disregard\s+(?:\S+\s+)*?previous`),
	regexp.MustCompile(`(?i)you are now`),
	regexp.MustCompile(`(?i)^\s*system:`),
	regexp.MustCompile(`(?i)\[system\]`),
}

// PromptSanitizer screens user text for prompt-injection markers before
// it is forwarded to the model.
type PromptSanitizer struct{}

func NewPromptSanitizer() *PromptSanitizer {
	return &PromptSanitizer{}
}

// Clean returns the input unchanged when no pattern matches, or the
// FilteredMarker when any does.
func (s *PromptSanitizer) Clean(message string) string {
	for _, p := range injectionPatterns {
		if p.MatchString(message) {
			return FilteredMarker
		}
	}
	return message
}
