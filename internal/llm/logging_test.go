package llm

import (
	"context"
	"encoding/json"
	"testing"
)

type captureLog struct {
	records []RequestRecord
}

func (c *captureLog) AppendLLMRequest(_ context.Context, data RequestRecord) error {
	c.records = append(c.records, data)
	return nil
}

func TestLoggingRecordsSuccessfulRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"fortalezas":["Cuenta con certificaciones de calidad"],"debilidades":["Sin experiencia exportadora previa"],"recomendaciones":["Inicie con mercados de la CAN"]}`),
		Usage:   Usage{InputTokens: 120, OutputTokens: 80},
	})
	log := &captureLog{}
	p := WithLogging(mock, log)

	ctx := WithPurpose(context.Background(), "diagnosis-refinement")
	resp, err := p.Generate(ctx, Request{
		System:   "Eres un asesor en comercio exterior.",
		Messages: []Message{{Role: RoleUser, Content: "Reescribe el diagnóstico."}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp == nil || len(resp.Content) == 0 {
		t.Fatal("expected a response body")
	}

	if len(log.records) != 1 {
		t.Fatalf("records = %d, want 1", len(log.records))
	}
	rec := log.records[0]
	if !rec.Success || rec.Purpose != "diagnosis-refinement" {
		t.Errorf("record = %+v", rec)
	}
	if rec.InputTokens != 120 || rec.OutputTokens != 80 {
		t.Errorf("tokens = %d/%d", rec.InputTokens, rec.OutputTokens)
	}
}

func TestLoggingRecordsFailureAndSurfacesError(t *testing.T) {
	mock := NewMockProvider() // empty queue: provider unavailable
	log := &captureLog{}
	p := WithLogging(mock, log)

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "¿Cómo exporto a Europa?"}},
	})
	if err == nil {
		t.Fatal("expected the provider error to surface")
	}

	if len(log.records) != 1 {
		t.Fatalf("records = %d, want 1", len(log.records))
	}
	if log.records[0].Success || log.records[0].ErrorMessage == "" {
		t.Errorf("record = %+v", log.records[0])
	}
}
