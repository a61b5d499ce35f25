package grading

import (
	"errors"
	"fmt"

	"github.com/quizmark/quizmark/internal/model"
)

// State tracks where a question sits in its answer lifecycle.
type State int

const (
	// StateUnanswered means no selection or value exists yet; checking is
	// not possible.
	StateUnanswered State = iota
	// StateAnswered means a response exists but has not been checked, or
	// was edited after a check.
	StateAnswered
	// StateChecked means a verdict has been derived for the current
	// response.
	StateChecked
)

// ErrNoResponse is returned when Check is called before any response exists.
// Callers should gate on CanCheck instead of handling this at runtime.
var ErrNoResponse = errors.New("no response recorded")

// Result carries the verdicts from one check. Overall applies to multiple
// choice and true/false questions. Fill-in-blank questions have no single
// pass/fail: Overall stays Unattempted and Fields holds one verdict per
// blank or dropdown, in document order.
type Result struct {
	Overall Verdict
	Fields  []Verdict
}

// Attempt is the answer state machine for one question:
// Unanswered -> Answered -> Checked, re-enterable. Any edit after a check
// drops back to Answered and clears the verdict, so no stale result is ever
// visible.
type Attempt struct {
	engine *Engine
	doc    *model.QuestionDocument

	state     State
	selection int   // MC: stored 1-based index, 0 = none
	tfValue   bool  // TF: selected value
	blanks    []string
	choices   []int // dropdowns: stored choice index, -1 = none
	result    *Result
}

// NewAttempt creates the state machine for a question.
func NewAttempt(e *Engine, doc *model.QuestionDocument) *Attempt {
	a := &Attempt{engine: e, doc: doc}
	if doc.Type == model.TypeFillInBlank {
		a.blanks = make([]string, len(doc.Fields))
		a.choices = make([]int, len(doc.Fields))
		for i := range a.choices {
			a.choices[i] = -1
		}
	}
	return a
}

// Question returns the document this attempt belongs to.
func (a *Attempt) Question() *model.QuestionDocument { return a.doc }

// State returns the current lifecycle state.
func (a *Attempt) State() State { return a.state }

// CanCheck reports whether a response exists to grade.
func (a *Attempt) CanCheck() bool { return a.state != StateUnanswered }

// Result returns the verdict from the last check, or nil if the current
// response has not been checked.
func (a *Attempt) Result() *Result { return a.result }

// SelectOption records a multiple choice selection by stored 1-based index.
func (a *Attempt) SelectOption(index int) error {
	if a.doc.Type != model.TypeMultipleChoice {
		return fmt.Errorf("select option on %s question", a.doc.Type)
	}
	if index < 1 || index > len(a.doc.MC.Options) {
		return fmt.Errorf("option index %d out of range", index)
	}
	a.selection = index
	a.edited()
	return nil
}

// SelectTrueFalse records a true/false selection.
func (a *Attempt) SelectTrueFalse(value bool) error {
	if a.doc.Type != model.TypeTrueFalse {
		return fmt.Errorf("select true/false on %s question", a.doc.Type)
	}
	a.tfValue = value
	a.edited()
	return nil
}

// SetBlank records text typed into a blank. Setting an empty string clears
// the field but still counts as an edit.
func (a *Attempt) SetBlank(field int, text string) error {
	if err := a.fieldOfKind(field, model.FieldBlank); err != nil {
		return err
	}
	a.blanks[field] = text
	a.edited()
	return nil
}

// SelectChoice records a dropdown selection by stored choice index; -1
// clears the selection.
func (a *Attempt) SelectChoice(field, choice int) error {
	if err := a.fieldOfKind(field, model.FieldDropdown); err != nil {
		return err
	}
	if choice < -1 || choice >= len(a.doc.Fields[field].Choices) {
		return fmt.Errorf("choice index %d out of range", choice)
	}
	a.choices[field] = choice
	a.edited()
	return nil
}

func (a *Attempt) fieldOfKind(field int, kind model.FieldKind) error {
	if a.doc.Type != model.TypeFillInBlank {
		return fmt.Errorf("set field on %s question", a.doc.Type)
	}
	if field < 0 || field >= len(a.doc.Fields) {
		return fmt.Errorf("field index %d out of range", field)
	}
	if a.doc.Fields[field].Kind != kind {
		return fmt.Errorf("field %d is not of the expected kind", field)
	}
	return nil
}

// edited transitions to Answered and discards any previous verdict.
func (a *Attempt) edited() {
	a.state = StateAnswered
	a.result = nil
}

// Check derives a verdict for the current response. It returns ErrNoResponse
// before any response exists; otherwise it transitions to Checked.
func (a *Attempt) Check() (*Result, error) {
	if a.state == StateUnanswered {
		return nil, ErrNoResponse
	}

	res := &Result{}
	switch a.doc.Type {
	case model.TypeMultipleChoice:
		res.Overall = a.engine.MultipleChoice(a.doc.MC, a.selection)
	case model.TypeTrueFalse:
		res.Overall = a.engine.TrueFalse(a.doc.TF, a.tfValue)
	case model.TypeFillInBlank:
		res.Fields = make([]Verdict, len(a.doc.Fields))
		for i, f := range a.doc.Fields {
			if f.Kind == model.FieldDropdown {
				res.Fields[i] = a.engine.Dropdown(f, a.choices[i])
			} else {
				res.Fields[i] = a.engine.Blank(f.Spec, a.blanks[i])
			}
		}
	}

	a.state = StateChecked
	a.result = res
	return res, nil
}
