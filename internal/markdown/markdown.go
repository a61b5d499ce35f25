// Package markdown is the boundary to the markdown-to-HTML converter. The
// rest of the code treats rendering as a pure function so that the converter
// can be swapped (or faked in tests) without touching parsing or grading.
package markdown

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

// Renderer converts markdown text to HTML. Implementations must be pure: no
// side effects, same output for the same input.
type Renderer interface {
	Render(text string) string
}

// Func adapts a plain function to the Renderer interface.
type Func func(string) string

func (f Func) Render(text string) string { return f(text) }

// Blackfriday renders markdown with blackfriday's common extensions
// (tables, fenced code, autolinks).
type Blackfriday struct{}

// New returns the default renderer.
func New() Renderer { return Blackfriday{} }

func (Blackfriday) Render(text string) string {
	out := blackfriday.Run([]byte(text), blackfriday.WithExtensions(blackfriday.CommonExtensions))
	return strings.TrimSpace(string(out))
}
