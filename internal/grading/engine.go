// Package grading evaluates candidate responses against a question's answer
// specification. Verdicts live in the model, never in the view: the engine
// is pure, and the per-question Attempt state machine owns the response
// lifecycle.
package grading

import (
	"html"
	"regexp"
	"strings"

	"github.com/quizmark/quizmark/internal/model"
)

// Verdict is the grading outcome for a question or a single field.
// Unattempted is a distinct third state: an empty blank is neither correct
// nor incorrect.
type Verdict int

const (
	Unattempted Verdict = iota
	Correct
	Incorrect
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unattempted"
	}
}

func verdict(ok bool) Verdict {
	if ok {
		return Correct
	}
	return Incorrect
}

// Engine grades responses. It holds no state; all inputs arrive per call.
type Engine struct{}

// NewEngine returns a grading engine.
func NewEngine() *Engine { return &Engine{} }

// MultipleChoice grades a single-select response. The selection is the
// stored 1-based option index (pre-shuffle order); zero means no selection.
func (e *Engine) MultipleChoice(spec *model.MultipleChoiceSpec, selected int) Verdict {
	if selected == 0 {
		return Unattempted
	}
	return verdict(selected == spec.CorrectIndex)
}

// TrueFalse grades a true/false response.
func (e *Engine) TrueFalse(spec *model.TrueFalseSpec, value bool) Verdict {
	return verdict(value == spec.CorrectValue)
}

// Blank grades a text blank. Empty and whitespace-only responses are
// unattempted, not incorrect.
func (e *Engine) Blank(spec model.AnswerSpec, response string) Verdict {
	if strings.TrimSpace(response) == "" {
		return Unattempted
	}

	switch spec.Mode {
	case model.MatchContains:
		// The correct token must appear inside what the user typed.
		if spec.CaseSensitive {
			return verdict(strings.Contains(response, spec.CorrectValue))
		}
		return verdict(strings.Contains(strings.ToLower(response), strings.ToLower(spec.CorrectValue)))

	case model.MatchRegex:
		re, err := compilePattern(spec.CorrectValue)
		if err != nil {
			return Incorrect
		}
		return verdict(re.MatchString(response))

	default:
		got := strings.TrimSpace(html.UnescapeString(response))
		want := spec.CorrectValue
		if spec.CaseSensitive {
			return verdict(got == want)
		}
		return verdict(strings.ToLower(got) == strings.ToLower(want))
	}
}

// Dropdown grades a dropdown selection by stored choice index; -1 is the
// nothing-selected sentinel and stays unattempted.
func (e *Engine) Dropdown(field model.AnswerField, selected int) Verdict {
	if selected < 0 || selected >= len(field.Choices) {
		return Unattempted
	}
	return verdict(field.Choices[selected].Correct)
}

var patternFlagsRE = regexp.MustCompile(`/([gimy]*)$`)

// compilePattern parses a delimited /pattern/flags value. The flags are the
// trailing run after the final slash; i and m translate to Go inline flags,
// g and y have no anywhere-match equivalent and are ignored. A value without
// delimiters compiles as-is.
func compilePattern(s string) (*regexp.Regexp, error) {
	flags := ""
	if m := patternFlagsRE.FindStringSubmatch(s); m != nil {
		flags = m[1]
	}
	body := strings.TrimPrefix(s, "/")
	body = patternFlagsRE.ReplaceAllString(body, "")

	var inline string
	if strings.Contains(flags, "i") {
		inline += "i"
	}
	if strings.Contains(flags, "m") {
		inline += "m"
	}
	if inline != "" {
		body = "(?" + inline + ")" + body
	}
	return regexp.Compile(body)
}
