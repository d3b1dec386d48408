package catalog

import "errors"

var (
	// ErrNotFound indicates a question id or index outside the catalog.
	ErrNotFound = errors.New("question not found")

	// ErrNoQuestions indicates a catalog source with no usable questions.
	// There is no degraded mode without questions, so session start
	// treats this as fatal.
	ErrNoQuestions = errors.New("catalog has no questions")
)
