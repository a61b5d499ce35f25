package grading

import (
	"testing"

	"github.com/quizmark/quizmark/internal/model"
)

func TestMultipleChoice(t *testing.T) {
	spec := &model.MultipleChoiceSpec{
		Options:      []string{"London", "Paris", "Berlin"},
		CorrectIndex: 2,
	}
	e := NewEngine()

	tests := []struct {
		name     string
		selected int
		want     Verdict
	}{
		{"no selection", 0, Unattempted},
		{"correct", 2, Correct},
		{"wrong", 1, Incorrect},
		{"other wrong", 3, Incorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.MultipleChoice(spec, tt.selected); got != tt.want {
				t.Errorf("verdict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrueFalse(t *testing.T) {
	e := NewEngine()
	isFalse := &model.TrueFalseSpec{CorrectValue: false}
	if got := e.TrueFalse(isFalse, false); got != Correct {
		t.Errorf("false vs false = %v, want correct", got)
	}
	if got := e.TrueFalse(isFalse, true); got != Incorrect {
		t.Errorf("true vs false = %v, want incorrect", got)
	}
}

func TestBlankExact(t *testing.T) {
	e := NewEngine()
	tests := []struct {
		name     string
		spec     model.AnswerSpec
		response string
		want     Verdict
	}{
		{
			name:     "empty is unattempted",
			spec:     model.AnswerSpec{CorrectValue: "gopher"},
			response: "",
			want:     Unattempted,
		},
		{
			name:     "whitespace only is unattempted",
			spec:     model.AnswerSpec{CorrectValue: "gopher"},
			response: "   \t",
			want:     Unattempted,
		},
		{
			name:     "exact match",
			spec:     model.AnswerSpec{CorrectValue: "gopher"},
			response: "gopher",
			want:     Correct,
		},
		{
			name:     "case folded by default",
			spec:     model.AnswerSpec{CorrectValue: "Gopher"},
			response: "gOPHER",
			want:     Correct,
		},
		{
			name:     "case sensitive rejects",
			spec:     model.AnswerSpec{CorrectValue: "Gopher", CaseSensitive: true},
			response: "gopher",
			want:     Incorrect,
		},
		{
			name:     "surrounding whitespace trimmed",
			spec:     model.AnswerSpec{CorrectValue: "gopher"},
			response: "  gopher  ",
			want:     Correct,
		},
		{
			name:     "html entities decoded",
			spec:     model.AnswerSpec{CorrectValue: "a < b"},
			response: "a &lt; b",
			want:     Correct,
		},
		{
			name:     "wrong answer",
			spec:     model.AnswerSpec{CorrectValue: "gopher"},
			response: "ferret",
			want:     Incorrect,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Blank(tt.spec, tt.response); got != tt.want {
				t.Errorf("verdict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlankContains(t *testing.T) {
	e := NewEngine()
	spec := model.AnswerSpec{CorrectValue: "go", Mode: model.MatchContains}

	// The required token must appear inside the response, not the other
	// way around.
	if got := e.Blank(spec, "I love the Go language"); got != Correct {
		t.Errorf("token inside response = %v, want correct", got)
	}
	if got := e.Blank(spec, "g"); got != Incorrect {
		t.Errorf("response inside token = %v, want incorrect", got)
	}

	cs := model.AnswerSpec{CorrectValue: "Go", Mode: model.MatchContains, CaseSensitive: true}
	if got := e.Blank(cs, "i write go daily"); got != Incorrect {
		t.Errorf("case sensitive contains = %v, want incorrect", got)
	}
	if got := e.Blank(cs, "i write Go daily"); got != Correct {
		t.Errorf("case sensitive contains = %v, want correct", got)
	}
}

func TestBlankRegex(t *testing.T) {
	e := NewEngine()
	tests := []struct {
		name     string
		pattern  string
		response string
		want     Verdict
	}{
		{"bare pattern", `^go(pher)?$`, "gopher", Correct},
		{"bare pattern no match", `^go(pher)?$`, "ferret", Incorrect},
		{"delimited with i flag", `/^GOPHER$/i`, "gopher", Correct},
		{"delimited without flags", `/^gopher$/`, "gopher", Correct},
		{"g and y flags ignored", `/go/gy`, "a gopher", Correct},
		{"m flag", `/^second$/m`, "first\nsecond", Correct},
		{"invalid pattern is incorrect", `/(/`, "anything", Incorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := model.AnswerSpec{CorrectValue: tt.pattern, Mode: model.MatchRegex}
			if got := e.Blank(spec, tt.response); got != tt.want {
				t.Errorf("verdict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDropdown(t *testing.T) {
	e := NewEngine()
	field := model.AnswerField{
		Kind: model.FieldDropdown,
		Choices: []model.Choice{
			{Text: "red"},
			{Text: "green", Correct: true},
			{Text: "blue"},
		},
	}

	tests := []struct {
		name     string
		selected int
		want     Verdict
	}{
		{"nothing selected", -1, Unattempted},
		{"out of range", 3, Unattempted},
		{"correct choice", 1, Correct},
		{"wrong choice", 0, Incorrect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Dropdown(field, tt.selected); got != tt.want {
				t.Errorf("verdict = %v, want %v", got, tt.want)
			}
		})
	}
}
