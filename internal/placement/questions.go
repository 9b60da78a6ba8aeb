package placement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/josi-bot/josi/internal/utils"
)

//go:embed questions.md
var questionsTemplate string

// fallbackQuestions is emitted whenever the model response cannot be
// parsed into exactly five technical and five behavioral questions.
func fallbackQuestions() QuestionSet {
	return QuestionSet{
		Technical: []string{
			"Explain what OOP is.",
			"What is a database index?",
			"How does a binary search work?",
			"What is an API, and how do you use it?",
			"Describe how you would optimize a slow SQL query.",
		},
		Behavioral: []string{
			"Tell me about a challenge you overcame in a team.",
			"How do you handle tight deadlines?",
			"Describe a time you received critical feedback.",
			"What does work-life balance mean to you?",
			"What motivates you to succeed?",
		},
	}
}

// QuestionGenerator builds role-specific interview question sets. Coding
// questions for software roles are requested in the prompt and left to
// the model's judgment.
type QuestionGenerator struct {
	generator contentGenerator
	logger    *zap.Logger
}

// NewQuestionGenerator creates a question generator backed by the given generator.
func NewQuestionGenerator(generator contentGenerator, logger *zap.Logger) *QuestionGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionGenerator{generator: generator, logger: logger}
}

// Generate returns a 5+5 question set for the role. It never fails: any
// parse or shape mismatch discards the response and falls back to the
// static set.
func (g *QuestionGenerator) Generate(ctx context.Context, role string) QuestionSet {
	prompt := strings.ReplaceAll(questionsTemplate, "{{ROLE}}", role)

	raw := g.generator.Generate(ctx, prompt)

	set, err := parseQuestions(raw)
	if err != nil {
		g.logger.Debug("falling back to default questions",
			zap.String("role", role),
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, maxLogPreview)),
		)
		return fallbackQuestions()
	}

	return set
}

// parseQuestions extracts the outermost {...} span before parsing, since
// the model's output format is not contractually guaranteed and may wrap
// the JSON payload in prose.
func parseQuestions(raw string) (QuestionSet, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return QuestionSet{}, errors.New("no JSON object in response")
	}

	var payload struct {
		Technical  []string `json:"technical_questions"`
		Behavioral []string `json:"behavioral_questions"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return QuestionSet{}, fmt.Errorf("parse questions JSON: %w", err)
	}

	if len(payload.Technical) != questionsPerKind || len(payload.Behavioral) != questionsPerKind {
		return QuestionSet{}, fmt.Errorf("expected %d+%d questions, got %d+%d",
			questionsPerKind, questionsPerKind, len(payload.Technical), len(payload.Behavioral))
	}

	return QuestionSet{Technical: payload.Technical, Behavioral: payload.Behavioral}, nil
}
