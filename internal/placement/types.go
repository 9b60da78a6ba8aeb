package placement

import "context"

const (
	questionsPerKind = 5

	maxLogPreview = 200
)

// contentGenerator produces model text for a prompt. Failures surface as
// sentinel strings, not errors; see gemini.IsErrorReply.
type contentGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// QuestionSet pairs the technical and behavioral interview questions for
// one test run, exactly five of each. Partial sets are never produced:
// question generation falls back to a fixed set instead.
type QuestionSet struct {
	Technical  []string
	Behavioral []string
}

// At returns the i-th question in interview order: technical first, then
// behavioral.
func (q QuestionSet) At(i int) string {
	if i < len(q.Technical) {
		return q.Technical[i]
	}
	return q.Behavioral[i-len(q.Technical)]
}

// Len returns the total number of questions.
func (q QuestionSet) Len() int {
	return len(q.Technical) + len(q.Behavioral)
}

// TestSession is the state of one placement-test run. Company is set only
// after a positive company check, Role only after Company. The session is
// replaced wholesale on reset, never mutated back to an earlier step.
type TestSession struct {
	Company   string
	Role      string
	Questions QuestionSet
	Answers   []string
	Cursor    int
}
