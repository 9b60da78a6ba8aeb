package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/manifoldco/promptui"
)

var (
	boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
	codeRe = regexp.MustCompile("`([^`]*)`")
)

// bullet glyphs accepted at the start of a line.
var bulletGlyphs = []string{"• ", "- ", "* "}

// Renderer draws the restricted markup subset the assistant is
// instructed to emit: leading ### headings, leading bullet glyphs,
// **bold** and backtick inline code. Everything else is literal.
type Renderer struct {
	heading func(interface{}) string
	bold    func(interface{}) string
	code    func(interface{}) string
	bullet  func(interface{}) string
	errText func(interface{}) string
	label   func(interface{}) string
}

// NewRenderer creates a renderer. With styled false the markers are
// stripped but no ANSI codes are emitted, for tests and piped output.
func NewRenderer(styled bool) *Renderer {
	plain := func(v interface{}) string { return fmt.Sprint(v) }

	r := &Renderer{
		heading: plain,
		bold:    plain,
		code:    plain,
		bullet:  plain,
		errText: plain,
		label:   plain,
	}

	if styled {
		r.heading = promptui.Styler(promptui.FGBold, promptui.FGCyan)
		r.bold = promptui.Styler(promptui.FGBold)
		r.code = promptui.Styler(promptui.FGYellow)
		r.bullet = promptui.Styler(promptui.FGCyan)
		r.errText = promptui.Styler(promptui.FGRed)
		r.label = promptui.Styler(promptui.FGGreen, promptui.FGBold)
	}

	return r
}

// Render formats a whole assistant message.
func (r *Renderer) Render(text string) string {
	lines := strings.Split(text, "\n")
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, r.renderLine(line))
	}
	return strings.Join(rendered, "\n")
}

// RenderError formats a sentinel error reply; no markup is interpreted.
func (r *Renderer) RenderError(text string) string {
	return r.errText(text)
}

// Label formats the speaker label in front of a message.
func (r *Renderer) Label(name string) string {
	return r.label(name)
}

func (r *Renderer) renderLine(line string) string {
	if strings.HasPrefix(line, "###") {
		return r.heading(strings.TrimSpace(strings.TrimLeft(line, "#")))
	}

	trimmed := strings.TrimSpace(line)
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			item := strings.TrimSpace(strings.TrimPrefix(trimmed, glyph))
			return "  " + r.bullet("• ") + r.renderSpans(item)
		}
	}

	return r.renderSpans(line)
}

func (r *Renderer) renderSpans(line string) string {
	line = boldRe.ReplaceAllStringFunc(line, func(m string) string {
		return r.bold(strings.TrimSuffix(strings.TrimPrefix(m, "**"), "**"))
	})
	line = codeRe.ReplaceAllStringFunc(line, func(m string) string {
		return r.code(strings.Trim(m, "`"))
	})
	return line
}
