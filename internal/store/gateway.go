package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samyrami/exporta-facil-bot/internal/contact"
	"github.com/samyrami/exporta-facil-bot/internal/diagnosis"
	"github.com/samyrami/exporta-facil-bot/internal/scoring"
)

// Session state is a small string-keyed JSON blob store. Absence of a
// key means that stage has not been reached yet, never corruption.
const (
	keyContact   = "contact_info"
	keyAnswers   = "answers"
	keyDiagnosis = "diagnosis"
	keyCompleted = "questionnaire_completed"
	keyAPIKey    = "api_key"
)

// Gateway persists the wizard's session state. Each write covers one
// whole logical unit (the full answer set, the full contact block) so
// an interrupted run can always resume from a consistent snapshot.
type Gateway interface {
	Contact(ctx context.Context) (*contact.Info, error)
	SaveContact(ctx context.Context, info contact.Info) error
	Answers(ctx context.Context) (map[int]scoring.Answer, error)
	SaveAnswers(ctx context.Context, answers map[int]scoring.Answer) error
	Diagnosis(ctx context.Context) (*diagnosis.Result, error)
	SaveDiagnosis(ctx context.Context, result *diagnosis.Result) error
	Completed(ctx context.Context) (bool, error)
	SetCompleted(ctx context.Context, done bool) error
	APIKey(ctx context.Context) (string, error)
	SaveAPIKey(ctx context.Context, key string) error

	// ClearSession removes contact, answers, diagnosis and the
	// completion flag together. The stored API key survives restarts.
	ClearSession(ctx context.Context) error
}

type sqlGateway struct {
	db *sql.DB
}

func (g *sqlGateway) get(ctx context.Context, key string, out any) (bool, error) {
	var raw string
	err := g.db.QueryRowContext(ctx,
		`SELECT value FROM session_state WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (g *sqlGateway) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = g.db.ExecContext(ctx,
		`INSERT INTO session_state (key, value, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (g *sqlGateway) Contact(ctx context.Context) (*contact.Info, error) {
	var info contact.Info
	ok, err := g.get(ctx, keyContact, &info)
	if err != nil || !ok {
		return nil, err
	}
	return &info, nil
}

func (g *sqlGateway) SaveContact(ctx context.Context, info contact.Info) error {
	return g.put(ctx, keyContact, info)
}

func (g *sqlGateway) Answers(ctx context.Context) (map[int]scoring.Answer, error) {
	answers := map[int]scoring.Answer{}
	ok, err := g.get(ctx, keyAnswers, &answers)
	if err != nil || !ok {
		return nil, err
	}
	return answers, nil
}

func (g *sqlGateway) SaveAnswers(ctx context.Context, answers map[int]scoring.Answer) error {
	return g.put(ctx, keyAnswers, answers)
}

func (g *sqlGateway) Diagnosis(ctx context.Context) (*diagnosis.Result, error) {
	var result diagnosis.Result
	ok, err := g.get(ctx, keyDiagnosis, &result)
	if err != nil || !ok {
		return nil, err
	}
	return &result, nil
}

func (g *sqlGateway) SaveDiagnosis(ctx context.Context, result *diagnosis.Result) error {
	return g.put(ctx, keyDiagnosis, result)
}

func (g *sqlGateway) Completed(ctx context.Context) (bool, error) {
	var done bool
	ok, err := g.get(ctx, keyCompleted, &done)
	if err != nil || !ok {
		return false, err
	}
	return done, nil
}

func (g *sqlGateway) SetCompleted(ctx context.Context, done bool) error {
	return g.put(ctx, keyCompleted, done)
}

func (g *sqlGateway) APIKey(ctx context.Context) (string, error) {
	var key string
	ok, err := g.get(ctx, keyAPIKey, &key)
	if err != nil || !ok {
		return "", err
	}
	return key, nil
}

func (g *sqlGateway) SaveAPIKey(ctx context.Context, key string) error {
	return g.put(ctx, keyAPIKey, key)
}

func (g *sqlGateway) ClearSession(ctx context.Context) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	defer tx.Rollback()

	for _, key := range []string{keyContact, keyAnswers, keyDiagnosis, keyCompleted} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session_state WHERE key = ?`, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return tx.Commit()
}
