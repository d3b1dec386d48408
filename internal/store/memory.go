package store

import (
	"context"
	"sync"

	"github.com/samyrami/exporta-facil-bot/internal/contact"
	"github.com/samyrami/exporta-facil-bot/internal/diagnosis"
	"github.com/samyrami/exporta-facil-bot/internal/scoring"
)

// MemoryGateway is an in-memory Gateway for tests. Values are copied
// on read and write so callers cannot alias internal state.
type MemoryGateway struct {
	mu        sync.Mutex
	contact   *contact.Info
	answers   map[int]scoring.Answer
	diagnosis *diagnosis.Result
	completed *bool
	apiKey    string

	// Writes counts mutating calls, for asserting persistence behavior.
	Writes int
}

// NewMemoryGateway creates an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

func (m *MemoryGateway) Contact(_ context.Context) (*contact.Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.contact == nil {
		return nil, nil
	}
	cp := *m.contact
	return &cp, nil
}

func (m *MemoryGateway) SaveContact(_ context.Context, info contact.Info) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contact = &info
	m.Writes++
	return nil
}

func (m *MemoryGateway) Answers(_ context.Context) (map[int]scoring.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.answers == nil {
		return nil, nil
	}
	cp := make(map[int]scoring.Answer, len(m.answers))
	for k, v := range m.answers {
		cp[k] = v
	}
	return cp, nil
}

func (m *MemoryGateway) SaveAnswers(_ context.Context, answers map[int]scoring.Answer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(map[int]scoring.Answer, len(answers))
	for k, v := range answers {
		cp[k] = v
	}
	m.answers = cp
	m.Writes++
	return nil
}

func (m *MemoryGateway) Diagnosis(_ context.Context) (*diagnosis.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.diagnosis == nil {
		return nil, nil
	}
	return m.diagnosis.Clone(), nil
}

func (m *MemoryGateway) SaveDiagnosis(_ context.Context, result *diagnosis.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.diagnosis = result.Clone()
	m.Writes++
	return nil
}

func (m *MemoryGateway) Completed(_ context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completed != nil && *m.completed, nil
}

func (m *MemoryGateway) SetCompleted(_ context.Context, done bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = &done
	m.Writes++
	return nil
}

func (m *MemoryGateway) APIKey(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apiKey, nil
}

func (m *MemoryGateway) SaveAPIKey(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiKey = key
	m.Writes++
	return nil
}

func (m *MemoryGateway) ClearSession(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contact = nil
	m.answers = nil
	m.diagnosis = nil
	m.completed = nil
	m.Writes++
	return nil
}
