package moderation

import (
	goaway "github.com/TwiN/go-away"
)

// Filter is a word-list profanity predicate. It is built once at startup
// and immutable afterwards, so it is safe for concurrent use. Only user
// input is filtered; model output is trusted as-is.
type Filter struct {
	detector *goaway.ProfanityDetector
}

// NewFilter builds the detector from the default dictionary plus any
// institution-specific additions from the configuration.
func NewFilter(extraWords []string) *Filter {
	detector := goaway.NewProfanityDetector()

	if len(extraWords) > 0 {
		words := make([]string, 0, len(goaway.DefaultProfanities)+len(extraWords))
		words = append(words, goaway.DefaultProfanities...)
		words = append(words, extraWords...)
		detector = detector.WithCustomDictionary(words, goaway.DefaultFalsePositives, goaway.DefaultFalseNegatives)
	}

	return &Filter{detector: detector}
}

// IsOffensive reports whether the text contains profanity. Pure: no side
// effects, no network access.
func (f *Filter) IsOffensive(text string) bool {
	return f.detector.IsProfane(text)
}
