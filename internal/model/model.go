package model

import "regexp"

// QuestionType identifies how a question is presented and graded.
type QuestionType string

const (
	// TypeMultipleChoice is a single-select question with an answers section.
	TypeMultipleChoice QuestionType = "mc"
	// TypeTrueFalse is a two-option question graded against a boolean key.
	TypeTrueFalse QuestionType = "tf"
	// TypeFillInBlank is a question with blanks or dropdowns embedded in the body.
	TypeFillInBlank QuestionType = "fib"
)

// MatchMode selects how a fill-in-blank response is compared to its key.
type MatchMode int

const (
	// MatchExact compares the trimmed, entity-decoded response for full equality.
	MatchExact MatchMode = iota
	// MatchContains checks that the correct value appears inside the response.
	MatchContains
	// MatchRegex treats the correct value as a delimited /pattern/flags expression.
	MatchRegex
)

func (m MatchMode) String() string {
	switch m {
	case MatchContains:
		return "contains"
	case MatchRegex:
		return "regex"
	default:
		return "exact"
	}
}

// AnswerSpec is the grading key for a single text blank.
type AnswerSpec struct {
	CorrectValue  string
	Mode          MatchMode
	CaseSensitive bool
	// Width is a presentation hint (CSS length), passed through untouched.
	Width string
}

// Choice is one entry of a dropdown field.
type Choice struct {
	Text    string
	Correct bool
}

// FieldKind distinguishes text blanks from dropdowns.
type FieldKind int

const (
	FieldBlank FieldKind = iota
	FieldDropdown
)

// AnswerField is one blank or dropdown extracted from a rendered question body.
// Choices are kept in authored (pre-shuffle) order; display order is a view
// concern.
type AnswerField struct {
	Kind    FieldKind
	Spec    AnswerSpec // blanks only
	Choices []Choice   // dropdowns only
	Shuffle bool       // dropdowns: shuffle choices for display
}

// MultipleChoiceSpec holds the answer options for a multiple choice question.
// Options keep their authored order; CorrectIndex is 1-based into that order.
type MultipleChoiceSpec struct {
	Options      []string
	CorrectIndex int
	Shuffle      bool
}

// TrueFalseSpec is the answer key for a true/false question.
type TrueFalseSpec struct {
	CorrectValue bool
}

// QuestionDocument is the normalized, immutable representation of one parsed
// question document. It is constructed once per fetched document and handed
// to consumers read-only.
type QuestionDocument struct {
	// ID is an opaque identifier, unique within a loaded set. Consumers
	// correlate responses and verdicts by exact match on it.
	ID string

	// Source is the location the document was fetched from, used in error
	// reports and page comments.
	Source string

	// RawText is the fetched content, unmodified, retained for feature
	// detection.
	RawText string

	// Properties holds front-matter pairs with camelCased keys.
	Properties map[string]string

	// Body is the document markdown with front matter and sections removed.
	// Blank answer values are already token-encoded for safe markdown
	// rendering.
	Body string

	// BodyHTML is the rendered body with answer fields substituted by
	// placeholder controls.
	BodyHTML string

	// Sections maps camelCased section labels to their content.
	Sections map[string]string

	Type QuestionType

	// Exactly one of the following is populated, matching Type.
	MC     *MultipleChoiceSpec
	TF     *TrueFalseSpec
	Fields []AnswerField
}

// Title returns the front-matter title, or empty.
func (q *QuestionDocument) Title() string {
	return q.Properties["title"]
}

// Explanation returns the raw markdown of the explanation section, if any.
func (q *QuestionDocument) Explanation() (string, bool) {
	s, ok := q.Sections["explanation"]
	return s, ok
}

var (
	mathRE    = regexp.MustCompile(`(?s)\$\$(.*?)\$\$`)
	mathAltRE = regexp.MustCompile(`(?s)\\\(.*?\\\)`)
	fenceRE   = regexp.MustCompile("(?s)```([A-Za-z0-9]+)")
)

// NeedsMathRenderer reports whether the document contains math markup.
func (q *QuestionDocument) NeedsMathRenderer() bool {
	return mathRE.MatchString(q.RawText) || mathAltRE.MatchString(q.RawText)
}

// NeedsDiagramRenderer reports whether the document contains a mermaid block.
func (q *QuestionDocument) NeedsDiagramRenderer() bool {
	return fencedMermaid(q.RawText)
}

func fencedMermaid(s string) bool {
	for _, m := range fenceRE.FindAllStringSubmatch(s, -1) {
		if m[1] == "mermaid" {
			return true
		}
	}
	return false
}

// NeedsHighlighter reports whether the document contains a fenced code block
// other than mermaid.
func (q *QuestionDocument) NeedsHighlighter() bool {
	for _, m := range fenceRE.FindAllStringSubmatch(q.RawText, -1) {
		if m[1] != "mermaid" {
			return true
		}
	}
	return false
}
