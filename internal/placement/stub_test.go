package placement

import "context"

// stubGenerator replays canned replies in order and records every prompt.
type stubGenerator struct {
	replies []string
	prompts []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) string {
	s.prompts = append(s.prompts, prompt)
	if len(s.replies) == 0 {
		return ""
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply
}

func (s *stubGenerator) lastPrompt() string {
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}
