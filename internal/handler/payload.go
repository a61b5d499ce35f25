package handler

import (
	"github.com/quizmark/quizmark/internal/markdown"
	"github.com/quizmark/quizmark/internal/model"
	"github.com/quizmark/quizmark/internal/quiz"
)

// QuizPayload is the response body of GET /api/quiz.
type QuizPayload struct {
	Questions []QuestionPayload `json:"questions"`
	Assets    AssetsPayload     `json:"assets"`
	Lang      map[string]string `json:"lang"`
	Theme     string            `json:"theme,omitempty"`
	Message   string            `json:"message,omitempty"`
}

// AssetsPayload tells the host page which optional renderers the selected
// questions require.
type AssetsPayload struct {
	Math      bool `json:"math"`
	Diagram   bool `json:"diagram"`
	Highlight bool `json:"highlight"`
}

// GroupsPayload describes group availability and selection.
type GroupsPayload struct {
	Groups   []string `json:"groups"`
	Selected []string `json:"selected"`
}

// OptionPayload is one multiple choice option in display order. Value is the
// stored 1-based index the widget reports back when grading client-side.
type OptionPayload struct {
	HTML    string `json:"html"`
	Value   int    `json:"value"`
	Correct bool   `json:"correct"`
}

// ChoicePayload is one dropdown choice in display order; Value is the stored
// choice index.
type ChoicePayload struct {
	Text    string `json:"text"`
	Value   int    `json:"value"`
	Correct bool   `json:"correct"`
}

// BlankPayload is the grading spec for a text blank.
type BlankPayload struct {
	Correct       string `json:"correct"`
	Mode          string `json:"mode"`
	CaseSensitive bool   `json:"caseSensitive"`
	Width         string `json:"width,omitempty"`
}

// FieldPayload is one fill-in-blank field, ordered as in the body HTML.
type FieldPayload struct {
	Kind    string          `json:"kind"`
	Blank   *BlankPayload   `json:"blank,omitempty"`
	Choices []ChoicePayload `json:"choices,omitempty"`
}

// QuestionPayload is one renderable question. Answer keys ship with it by
// design: grading happens in the consumer.
type QuestionPayload struct {
	ID              string             `json:"id"`
	Source          string             `json:"source"`
	Title           string             `json:"title,omitempty"`
	Type            model.QuestionType `json:"type"`
	BodyHTML        string             `json:"bodyHtml"`
	Options         []OptionPayload    `json:"options,omitempty"`
	TrueFalseKey    *bool              `json:"trueFalseKey,omitempty"`
	Fields          []FieldPayload     `json:"fields,omitempty"`
	ExplanationHTML string             `json:"explanationHtml,omitempty"`
}

// buildQuestion assembles the view payload for one document. Display order
// of options and dropdown choices is derived here, leaving the document's
// authored order untouched.
func buildQuestion(doc *model.QuestionDocument, renderer markdown.Renderer, shuffler *quiz.Shuffler) QuestionPayload {
	p := QuestionPayload{
		ID:       doc.ID,
		Source:   doc.Source,
		Title:    doc.Title(),
		Type:     doc.Type,
		BodyHTML: doc.BodyHTML,
	}

	switch doc.Type {
	case model.TypeMultipleChoice:
		p.Options = buildOptions(doc.MC, renderer, shuffler)
	case model.TypeTrueFalse:
		v := doc.TF.CorrectValue
		p.TrueFalseKey = &v
	case model.TypeFillInBlank:
		p.Fields = buildFields(doc.Fields, shuffler)
	}

	if md, ok := doc.Explanation(); ok {
		p.ExplanationHTML = renderer.Render(md)
	}
	return p
}

func buildOptions(spec *model.MultipleChoiceSpec, renderer markdown.Renderer, shuffler *quiz.Shuffler) []OptionPayload {
	order := make([]int, len(spec.Options))
	for i := range order {
		order[i] = i
	}
	if spec.Shuffle {
		order = shuffler.Perm(len(spec.Options))
	}

	options := make([]OptionPayload, 0, len(order))
	for _, idx := range order {
		options = append(options, OptionPayload{
			HTML:    renderer.Render(spec.Options[idx]),
			Value:   idx + 1,
			Correct: idx+1 == spec.CorrectIndex,
		})
	}
	return options
}

func buildFields(fields []model.AnswerField, shuffler *quiz.Shuffler) []FieldPayload {
	out := make([]FieldPayload, 0, len(fields))
	for _, f := range fields {
		if f.Kind == model.FieldBlank {
			out = append(out, FieldPayload{
				Kind: "blank",
				Blank: &BlankPayload{
					Correct:       f.Spec.CorrectValue,
					Mode:          f.Spec.Mode.String(),
					CaseSensitive: f.Spec.CaseSensitive,
					Width:         f.Spec.Width,
				},
			})
			continue
		}

		order := make([]int, len(f.Choices))
		for i := range order {
			order[i] = i
		}
		if f.Shuffle {
			order = shuffler.Perm(len(f.Choices))
		}
		choices := make([]ChoicePayload, 0, len(order))
		for _, idx := range order {
			choices = append(choices, ChoicePayload{
				Text:    f.Choices[idx].Text,
				Value:   idx,
				Correct: f.Choices[idx].Correct,
			})
		}
		out = append(out, FieldPayload{Kind: "dropdown", Choices: choices})
	}
	return out
}
