package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/josi-bot/josi/internal/chat"
	"github.com/josi-bot/josi/internal/college"
	"github.com/josi-bot/josi/internal/gemini"
	"github.com/josi-bot/josi/internal/placement"
)

// Commands available in the chat loop. /test and /exit are mutually
// exclusive by mode, like the start/exit buttons they replace.
const (
	cmdTest = "/test"
	cmdExit = "/exit"
	cmdQuit = "/quit"
)

const (
	welcomeText = "### Welcome to JoSi! 👋\n\n" +
		"I'm your **placement & academic guide** at St. Xavier's College, Mumbai.\n" +
		"Ask about courses, highest package info, or the placement cell.\n" +
		"I can assist with interview prep, career guidance, and more.\n\n" +
		"Type `/test` to start a placement test, `/exit` to leave one, `/quit` to leave the chat.\n\n" +
		"**Disclaimer**: I'm an AI-generated chatbot. Information provided is for **reference only**.\n" +
		"For official details, please contact the college placement cell.\n\n" +
		"How can I help you today?"

	startTestText = "Starting placement test!\n" +
		"Please enter a **company name** you believe visits St. Xavier's College for placements:"

	exitTestText = "Exited test mode. How else can I help you?"

	quickRefusal = "Sorry, I can't respond to that language."

	testAlreadyRunningText = "A placement test is already running. Use `/exit` to leave it first."
	noTestRunningText      = "No placement test is running. Use `/test` to start one."
)

type moderator interface {
	IsOffensive(text string) bool
}

// Terminal owns all interactive state: the chat session, the test
// sequencer and the mode flag. Each message is processed by exactly one
// worker goroutine that hands its reply back over a channel; the loop
// blocks on that channel, so at most one model call is ever in flight
// and no lock is needed.
type Terminal struct {
	session   *chat.Session
	sequencer *placement.Sequencer
	filter    moderator
	renderer  *Renderer
	logger    *zap.Logger

	inTest bool

	// readLine is swapped out in tests.
	readLine func() (string, error)
	out      io.Writer
}

// NewTerminal wires the interactive chat surface.
func NewTerminal(session *chat.Session, sequencer *placement.Sequencer, filter moderator, renderer *Renderer, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Terminal{
		session:   session,
		sequencer: sequencer,
		filter:    filter,
		renderer:  renderer,
		logger:    logger,
		out:       os.Stdout,
	}
	t.readLine = t.promptLine

	return t
}

func (t *Terminal) promptLine() (string, error) {
	prompt := promptui.Prompt{Label: "You"}
	return prompt.Run()
}

// Run drives the chat loop until /quit, ^C or end of input.
func (t *Terminal) Run(ctx context.Context) error {
	t.say(welcomeText)

	for {
		input, err := t.readLine()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch input {
		case cmdQuit:
			return nil
		case cmdTest:
			if t.inTest {
				t.say(testAlreadyRunningText)
				continue
			}
			t.inTest = true
			t.logger.Debug("placement test started")
			t.say(startTestText)
			continue
		case cmdExit:
			if !t.inTest {
				t.say(noTestRunningText)
				continue
			}
			t.exitTest()
			continue
		}

		if t.filter.IsOffensive(input) {
			t.logger.Debug("refusing flagged input")
			t.say(quickRefusal)
			continue
		}

		reply := t.dispatch(ctx, input)
		if gemini.IsErrorReply(reply) {
			t.sayError(reply)
		} else {
			t.say(reply)
		}

		// The evaluation ends the test; fall back to normal chat.
		if t.inTest && t.sequencer.Done() {
			t.exitTest()
		}
	}
}

// dispatch runs the model-bound work in one worker goroutine and blocks
// on its reply. Input is unavailable until the call lands, so calls are
// serialized by construction; the worker runs to completion, there is no
// cancellation.
func (t *Terminal) dispatch(ctx context.Context, input string) string {
	replies := make(chan string, 1)

	go func() {
		if t.inTest {
			replies <- t.sequencer.Handle(ctx, input)
			return
		}
		replies <- t.session.Respond(ctx, input)
	}()

	return <-replies
}

func (t *Terminal) exitTest() {
	t.sequencer.Reset()
	t.inTest = false
	t.logger.Debug("placement test exited")
	t.say(exitTestText)
}

func (t *Terminal) say(text string) {
	fmt.Fprintf(t.out, "%s %s\n\n", t.renderer.Label(college.AssistantName+":"), t.renderer.Render(text))
}

func (t *Terminal) sayError(text string) {
	fmt.Fprintf(t.out, "%s %s\n\n", t.renderer.Label(college.AssistantName+":"), t.renderer.RenderError(text))
}
