package placement

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"go.uber.org/zap"
)

//go:embed evaluation.md
var evaluationTemplate string

// State identifies the sequencer position in the placement-test flow.
type State int

const (
	// StateAwaitingCompany expects a company name to validate.
	StateAwaitingCompany State = iota
	// StateAwaitingRole expects the role applied for, stored verbatim.
	StateAwaitingRole
	// StateAwaitingAnswer expects the answer to the current question.
	StateAwaitingAnswer
	// StateDone means the evaluation was emitted; the session must be reset.
	StateDone
)

const (
	msgCompanyRejected = "That company is **NOT recognized** for campus placements (or the model isn't sure). " +
		"Please try another company name."
	msgFirstQuestion = "Excellent! Let's begin with the first question:"
)

// Sequencer drives the placement test: company check, role entry, ten
// questions answered one by one, then a single evaluation call. It blocks
// in its current state until the next input; the only way back to the
// start is Reset.
type Sequencer struct {
	generator contentGenerator
	validator *Validator
	questions *QuestionGenerator
	logger    *zap.Logger

	state   State
	session TestSession
}

// NewSequencer creates a sequencer in StateAwaitingCompany.
func NewSequencer(generator contentGenerator, validator *Validator, questions *QuestionGenerator, logger *zap.Logger) *Sequencer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequencer{
		generator: generator,
		validator: validator,
		questions: questions,
		logger:    logger,
	}
}

// Handle consumes one user input and returns the next assistant message.
func (s *Sequencer) Handle(ctx context.Context, input string) string {
	switch s.state {
	case StateAwaitingCompany:
		if !s.validator.IsRecognizedCompany(ctx, input) {
			return msgCompanyRejected
		}
		s.session.Company = input
		s.state = StateAwaitingRole
		s.logger.Debug("company accepted", zap.String("company", input))
		return fmt.Sprintf("Great! Now enter the role you're applying for at %s:", input)

	case StateAwaitingRole:
		s.session.Role = input
		s.session.Questions = s.questions.Generate(ctx, input)
		s.session.Cursor = 0
		s.state = StateAwaitingAnswer
		s.logger.Debug("questions ready", zap.String("role", input))
		return msgFirstQuestion + "\n\n" + s.currentQuestion()

	case StateAwaitingAnswer:
		s.session.Answers = append(s.session.Answers, input)
		s.session.Cursor++
		if s.session.Cursor < s.session.Questions.Len() {
			return s.currentQuestion()
		}
		s.state = StateDone
		return s.evaluate(ctx)

	default:
		// Done: the caller resets before sending more input.
		return ""
	}
}

// State returns the current flow position.
func (s *Sequencer) State() State {
	return s.state
}

// Done reports whether the evaluation was emitted and a reset is due.
func (s *Sequencer) Done() bool {
	return s.state == StateDone
}

// Session returns a copy of the current test session for inspection.
func (s *Sequencer) Session() TestSession {
	copied := s.session
	copied.Answers = append([]string(nil), s.session.Answers...)
	return copied
}

// Reset discards the session wholesale and returns to StateAwaitingCompany.
// This is the only reset path, used both for explicit exits and after Done.
func (s *Sequencer) Reset() {
	s.state = StateAwaitingCompany
	s.session = TestSession{}
}

func (s *Sequencer) currentQuestion() string {
	return fmt.Sprintf("**Q%d:** %s", s.session.Cursor+1, s.session.Questions.At(s.session.Cursor))
}

// evaluate builds the single evaluation prompt embedding company, role,
// both question lists and all ten answers, and emits the raw model text.
// The placement probability inside is for the reader, not parsed.
func (s *Sequencer) evaluate(ctx context.Context) string {
	prompt := evaluationTemplate
	prompt = strings.ReplaceAll(prompt, "{{COMPANY}}", s.session.Company)
	prompt = strings.ReplaceAll(prompt, "{{ROLE}}", s.session.Role)
	prompt = strings.ReplaceAll(prompt, "{{TECHNICAL}}", numberedList(s.session.Questions.Technical, 0))
	prompt = strings.ReplaceAll(prompt, "{{BEHAVIORAL}}", numberedList(s.session.Questions.Behavioral, questionsPerKind))
	prompt = strings.ReplaceAll(prompt, "{{ANSWERS}}", numberedList(s.session.Answers, 0))

	s.logger.Debug("evaluating placement test",
		zap.String("company", s.session.Company),
		zap.String("role", s.session.Role),
		zap.Int("answers", len(s.session.Answers)),
	)

	return s.generator.Generate(ctx, prompt)
}

func numberedList(items []string, offset int) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", offset+i+1, item)
	}
	return strings.TrimRight(b.String(), "\n")
}
