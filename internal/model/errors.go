package model

import "fmt"

// ConfigurationError reports an authoring mistake in a question document that
// would otherwise cause silent mis-grading, such as an answer key that is
// neither a letter nor a number. It names the offending document so the
// operator can fix it; it never aborts the rest of the set.
type ConfigurationError struct {
	Source string
	Field  string
	Value  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("question %s: malformed %s value %q", e.Source, e.Field, e.Value)
}

// UnrecognizedTypeError reports a front-matter type tag that matches none of
// the known question types. The document is excluded rather than guessed at.
type UnrecognizedTypeError struct {
	Source string
	Value  string
}

func (e *UnrecognizedTypeError) Error() string {
	return fmt.Sprintf("question %s: unrecognized question type %q", e.Source, e.Value)
}
