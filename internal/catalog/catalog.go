// Package catalog holds the export-readiness question catalog and the
// loaders that normalize its two on-disk shapes into a single model.
package catalog

import (
	"fmt"
)

// Kind classifies what an answered option says about the company.
type Kind string

const (
	KindStrength    Kind = "strength"
	KindOpportunity Kind = "opportunity"
	KindImprovement Kind = "improvement"
	KindWeakness    Kind = "weakness"
)

// Option is one selectable answer for a question. Score feeds the
// readiness total; Message is the finding reported when selected.
type Option struct {
	Label   string
	Score   int
	Kind    Kind
	Message string
}

// Question is a normalized catalog entry. Every question carries at
// least two options regardless of the source shape.
type Question struct {
	ID       int
	Prompt   string
	Category string
	Help     string
	Options  []Option
}

// Option returns the option matching label, or false when no option
// carries that label.
func (q Question) Option(label string) (Option, bool) {
	for _, o := range q.Options {
		if o.Label == label {
			return o, true
		}
	}
	return Option{}, false
}

// Catalog is an ordered, immutable question sequence.
type Catalog struct {
	questions []Question
	maxWeight int
}

// New validates questions and builds a catalog. IDs must be unique and
// every question needs at least two options.
func New(questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	seen := make(map[int]bool, len(questions))
	maxWeight := 1
	for _, q := range questions {
		if seen[q.ID] {
			return nil, fmt.Errorf("catalog: duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("catalog: question %d has %d options, need at least 2", q.ID, len(q.Options))
		}
		for _, o := range q.Options {
			if o.Score > maxWeight {
				maxWeight = o.Score
			}
		}
	}
	return &Catalog{questions: questions, maxWeight: maxWeight}, nil
}

// All returns the questions in ask order.
func (c *Catalog) All() []Question {
	return c.questions
}

// ByID returns the question with the given id.
func (c *Catalog) ByID(id int) (Question, error) {
	for _, q := range c.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, fmt.Errorf("catalog: question %d: %w", id, ErrNotFound)
}

// At returns the question at position idx in ask order.
func (c *Catalog) At(idx int) (Question, error) {
	if idx < 0 || idx >= len(c.questions) {
		return Question{}, fmt.Errorf("catalog: index %d out of range: %w", idx, ErrNotFound)
	}
	return c.questions[idx], nil
}

// Len reports the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// MaxWeight is the highest option score anywhere in the catalog. The
// scoring engine normalizes totals against Len()*MaxWeight.
func (c *Catalog) MaxWeight() int {
	return c.maxWeight
}
