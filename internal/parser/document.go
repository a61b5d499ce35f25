// Package parser turns raw question-document text into the typed question
// model: front matter, named sections, question type, answer specs, and
// fill-in-blank fields.
package parser

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/quizmark/quizmark/internal/markdown"
	"github.com/quizmark/quizmark/internal/model"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Parser constructs QuestionDocuments. It owns no state beyond its
// collaborators: the markdown renderer and an ID generator.
type Parser struct {
	renderer markdown.Renderer
	newID    func() string
}

// New returns a Parser using the given markdown renderer.
func New(r markdown.Renderer) *Parser {
	return &Parser{renderer: r, newID: uuid.NewString}
}

// Parse builds an immutable QuestionDocument from raw document text. The
// source location is carried for error reports. Authoring errors (malformed
// answer keys, unknown type tags) are returned so the caller can exclude the
// document without aborting the batch.
func (p *Parser) Parse(raw, source string) (*model.QuestionDocument, error) {
	trimmed := strings.TrimSpace(raw)

	props, rest := ParseFrontMatter(trimmed)
	body, sections := SplitSections(rest)

	doc := &model.QuestionDocument{
		ID:         p.newID(),
		Source:     source,
		RawText:    raw,
		Properties: props,
		Sections:   sections,
	}

	qType, err := resolveType(props["type"], sections, source)
	if err != nil {
		return nil, err
	}
	doc.Type = qType

	switch qType {
	case model.TypeMultipleChoice:
		doc.Body = body
		doc.BodyHTML = p.renderer.Render(body)
		mc, err := resolveMultipleChoice(props, sections, source)
		if err != nil {
			return nil, err
		}
		doc.MC = mc

	case model.TypeTrueFalse:
		doc.Body = body
		doc.BodyHTML = p.renderer.Render(body)
		doc.TF = &model.TrueFalseSpec{CorrectValue: resolveTrueFalse(props)}

	case model.TypeFillInBlank:
		// Protect blank answer text from the markdown converter's escaping
		// pass, render, then pull the fields back out of the HTML.
		encoded := EncodeBlankTokens(body)
		doc.Body = encoded
		html, fields := ExtractFields(p.renderer.Render(encoded), doc.ID)
		doc.BodyHTML = html
		doc.Fields = fields
	}

	return doc, nil
}

// resolveType maps the front-matter type tag to a question type. Tags are
// case-insensitive and prefix-tolerant: "mc"/"mult*", "fib"/"fill*", "t*".
// An absent tag defaults to multiple choice only when an answers section
// exists; anything else is an authoring error, never a guess.
func resolveType(tag string, sections map[string]string, source string) (model.QuestionType, error) {
	t := strings.ToLower(strings.TrimSpace(tag))
	switch {
	case t == "mc" || strings.HasPrefix(t, "mult"):
		return model.TypeMultipleChoice, nil
	case t == "fib" || strings.HasPrefix(t, "fill"):
		return model.TypeFillInBlank, nil
	case strings.HasPrefix(t, "t"):
		return model.TypeTrueFalse, nil
	case t == "":
		if _, ok := sections["answers"]; ok {
			return model.TypeMultipleChoice, nil
		}
	}
	return "", &model.UnrecognizedTypeError{Source: source, Value: tag}
}

func resolveMultipleChoice(props, sections map[string]string, source string) (*model.MultipleChoiceSpec, error) {
	section, ok := sections["answers"]
	if !ok {
		return nil, &model.ConfigurationError{Source: source, Field: "answers", Value: ""}
	}
	options := SplitAnswerOptions(section)
	if len(options) == 0 {
		return nil, &model.ConfigurationError{Source: source, Field: "answers", Value: section}
	}

	index, err := resolveCorrectIndex(props["answer"], source)
	if err != nil {
		return nil, err
	}

	return &model.MultipleChoiceSpec{
		Options:      options,
		CorrectIndex: index,
		Shuffle:      shuffleEnabled(props),
	}, nil
}

// resolveCorrectIndex resolves the answer key to a 1-based option index: a
// single letter (A means 1) or a literal number, defaulting to 1 when
// absent. Anything else would silently grade every response against the
// wrong key, so it must surface as a ConfigurationError.
func resolveCorrectIndex(answer, source string) (int, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 1, nil
	}
	if len(answer) == 1 {
		if i := strings.IndexByte(alphabet, answer[0]&^0x20); i >= 0 {
			return i + 1, nil
		}
	}
	if n, err := strconv.Atoi(answer); err == nil && n > 0 {
		return n, nil
	}
	return 0, &model.ConfigurationError{Source: source, Field: "answer", Value: answer}
}

// shuffleEnabled reports whether option order should be randomized: on when
// the shuffle property is unset, starts with t (case-insensitive), or is the
// literal "1"; any other value turns it off.
func shuffleEnabled(props map[string]string) bool {
	v, ok := props["shuffle"]
	if !ok {
		return true
	}
	return v == "1" || strings.HasPrefix(strings.ToLower(v), "t")
}

// resolveTrueFalse resolves the answer key for a true/false question: any
// value starting with f (case-insensitive) is false, everything else
// (including absent) is true.
func resolveTrueFalse(props map[string]string) bool {
	v := strings.TrimSpace(props["answer"])
	return !strings.HasPrefix(strings.ToLower(v), "f")
}
