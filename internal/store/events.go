package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/samyrami/exporta-facil-bot/internal/llm"
)

// LLMRequestEvent is a stored audit row for one text-completion call.
type LLMRequestEvent struct {
	ID        int64
	CreatedAt time.Time
	llm.RequestRecord
}

// EventRepo records and queries LLM request events. It satisfies
// llm.RequestLog so providers can be wrapped with logging directly.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data llm.RequestRecord) error
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)
}

var _ llm.RequestLog = EventRepo(nil)

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data llm.RequestRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events
			(provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, provider, model, purpose, input_tokens, output_tokens,
		        latency_ms, success, error_message, request_body, response_body
		 FROM llm_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query LLM request events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		var e LLMRequestEvent
		var created string
		if err := rows.Scan(&e.ID, &created, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody); err != nil {
			return nil, fmt.Errorf("scan LLM request event: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", created); err == nil {
			e.CreatedAt = t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
