package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/josi-bot/josi/internal/gemini"
)

// Sender labels for conversation turns.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Refusal is returned for flagged input. The model is never called and
// history is left untouched.
const Refusal = "I'm sorry, but I cannot respond to that."

const defaultHistoryWindow = 5

// Turn is a single conversation entry, immutable once recorded.
type Turn struct {
	Sender string
	Text   string
}

type contentGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

type moderator interface {
	IsOffensive(text string) bool
}

// Session holds the normal-mode conversation. History grows for the
// whole process lifetime, but only the most recent turns travel with
// each prompt.
type Session struct {
	generator    contentGenerator
	filter       moderator
	systemPrompt string
	window       int
	logger       *zap.Logger

	history []Turn
}

// NewSession creates a conversation session. A non-positive window falls
// back to the default of five turns.
func NewSession(generator contentGenerator, filter moderator, systemPrompt string, window int, logger *zap.Logger) *Session {
	if window <= 0 {
		window = defaultHistoryWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		generator:    generator,
		filter:       filter,
		systemPrompt: systemPrompt,
		window:       window,
		logger:       logger,
	}
}

// Respond sends the user text to the model with the system instructions
// and the recent history attached. The reply is returned unmodified,
// including Error sentinels; the user turn is always recorded, the
// assistant turn only for non-error replies.
func (s *Session) Respond(ctx context.Context, userText string) string {
	if s.filter.IsOffensive(userText) {
		s.logger.Debug("refusing flagged input")
		return Refusal
	}

	reply := s.generator.Generate(ctx, s.buildPrompt(userText))

	s.history = append(s.history, Turn{Sender: SenderUser, Text: userText})
	if !gemini.IsErrorReply(reply) {
		s.history = append(s.history, Turn{Sender: SenderAssistant, Text: reply})
	}

	return reply
}

func (s *Session) buildPrompt(userText string) string {
	var b strings.Builder
	b.WriteString(s.systemPrompt)
	b.WriteString("\n\n")

	start := len(s.history) - s.window
	if start < 0 {
		start = 0
	}
	for _, turn := range s.history[start:] {
		fmt.Fprintf(&b, "%s: %s\n", turn.Sender, turn.Text)
	}

	fmt.Fprintf(&b, "User: %s", userText)
	return b.String()
}

// History returns a copy of the full recorded conversation.
func (s *Session) History() []Turn {
	return append([]Turn(nil), s.history...)
}
