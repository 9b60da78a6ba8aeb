package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/josi-bot/josi/internal/chat"
	"github.com/josi-bot/josi/internal/placement"
)

type scriptedGenerator struct {
	replies []string
	prompts []string
}

func (s *scriptedGenerator) Generate(_ context.Context, prompt string) string {
	s.prompts = append(s.prompts, prompt)
	if len(s.replies) == 0 {
		return ""
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply
}

type wordModerator struct {
	word string
}

func (m *wordModerator) IsOffensive(text string) bool {
	return m.word != "" && strings.Contains(text, m.word)
}

func newScriptedTerminal(t *testing.T, generator *scriptedGenerator, filter moderator, inputs ...string) (*Terminal, *bytes.Buffer) {
	t.Helper()

	session := chat.NewSession(generator, filter, "system instructions", 5, zap.NewNop())
	validator := placement.NewValidator(generator, zap.NewNop())
	questions := placement.NewQuestionGenerator(generator, zap.NewNop())
	sequencer := placement.NewSequencer(generator, validator, questions, zap.NewNop())

	term := NewTerminal(session, sequencer, filter, NewRenderer(false), zap.NewNop())

	var out bytes.Buffer
	term.out = &out

	remaining := inputs
	term.readLine = func() (string, error) {
		if len(remaining) == 0 {
			return "", io.EOF
		}
		line := remaining[0]
		remaining = remaining[1:]
		return line, nil
	}

	return term, &out
}

func TestRunQuitsOnCommand(t *testing.T) {
	generator := &scriptedGenerator{}
	term, out := newScriptedTerminal(t, generator, &wordModerator{}, "/quit", "never read")

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "Welcome to JoSi!") {
		t.Fatalf("expected welcome banner, got:\n%s", out.String())
	}
	if len(generator.prompts) != 0 {
		t.Fatalf("expected no model calls, got %d", len(generator.prompts))
	}
}

func TestRunChatsInNormalMode(t *testing.T) {
	generator := &scriptedGenerator{replies: []string{"The highest package is **24 LPA**."}}
	term, out := newScriptedTerminal(t, generator, &wordModerator{}, "what is the highest package?", "/quit")

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "The highest package is 24 LPA.") {
		t.Fatalf("expected rendered reply, got:\n%s", out.String())
	}
}

func TestRunRefusesOffensiveInputWithoutModelCall(t *testing.T) {
	generator := &scriptedGenerator{}
	term, out := newScriptedTerminal(t, generator, &wordModerator{word: "flibber"}, "you flibber!", "/quit")

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), quickRefusal) {
		t.Fatalf("expected refusal, got:\n%s", out.String())
	}
	if len(generator.prompts) != 0 {
		t.Fatalf("expected no model calls for flagged input, got %d", len(generator.prompts))
	}
}

func TestRunRendersErrorSentinel(t *testing.T) {
	generator := &scriptedGenerator{replies: []string{"Error 500: server error"}}
	term, out := newScriptedTerminal(t, generator, &wordModerator{}, "hello", "/quit")

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "Error 500: server error") {
		t.Fatalf("expected error sentinel in output, got:\n%s", out.String())
	}
}

func TestRunCommandModeExclusion(t *testing.T) {
	generator := &scriptedGenerator{}
	term, out := newScriptedTerminal(t, generator, &wordModerator{},
		"/exit", // no test running yet
		"/test",
		"/test", // already running
		"/exit",
		"/quit",
	)

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	for _, want := range []string{noTestRunningText, testAlreadyRunningText} {
		if !strings.Contains(output, NewRenderer(false).Render(want)) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
	if !strings.Contains(output, exitTestText) {
		t.Fatalf("expected exit confirmation, got:\n%s", output)
	}
}

func TestRunFullPlacementTest(t *testing.T) {
	questionsJSON := `{"technical_questions":["t1","t2","t3","t4","t5"],"behavioral_questions":["b1","b2","b3","b4","b5"]}`

	generator := &scriptedGenerator{replies: []string{
		"VALID",
		questionsJSON,
		"Great answers overall. Placement probability: 70%",
		"Normal chat works again.",
	}}

	inputs := []string{"/test", "Acme Corp", "Software Engineer"}
	for i := 0; i < 10; i++ {
		inputs = append(inputs, "my answer")
	}
	inputs = append(inputs, "back to normal chat", "/quit")

	term, out := newScriptedTerminal(t, generator, &wordModerator{}, inputs...)

	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()

	for _, want := range []string{
		"Please enter a",
		"Now enter the role you're applying for at Acme Corp",
		"Q1: t1",
		"Q10: b5",
		"Placement probability: 70%",
		exitTestText,
		"Normal chat works again.",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}

	// Validation, questions, evaluation, then one normal chat call.
	if len(generator.prompts) != 4 {
		t.Fatalf("expected 4 model calls, got %d", len(generator.prompts))
	}

	if got := term.sequencer.State(); got != placement.StateAwaitingCompany {
		t.Fatalf("expected sequencer reset after evaluation, got %v", got)
	}
}
