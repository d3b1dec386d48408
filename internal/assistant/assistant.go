// Package assistant implements the follow-up consultation chat seeded
// with the diagnosis as context.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samyrami/exporta-facil-bot/internal/diagnosis"
	"github.com/samyrami/exporta-facil-bot/internal/llm"
)

// Config holds generation parameters for chat replies.
type Config struct {
	MaxTokens   int
	Temperature float64

	// HistoryLimit caps how many prior transcript messages are sent
	// with each request.
	HistoryLimit int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    800,
		Temperature:  0.7,
		HistoryLimit: 12,
	}
}

// Message is one transcript entry.
type Message struct {
	ID      string    `json:"id"`
	Role    llm.Role  `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// FallbackReply is appended when the service call fails. The failure
// never propagates past the assistant.
const FallbackReply = "Lo siento, tuve un problema al procesar tu mensaje. Por favor, inténtalo de nuevo en unos momentos."

// Assistant holds the transcript and delegates replies to the
// text-completion service. It reads the diagnosis but never writes
// back into it.
type Assistant struct {
	provider   llm.Provider
	cfg        Config
	summary    string
	transcript []Message
}

// New creates an assistant seeded with the diagnosis summary. The
// provider may be nil: the assistant reports unconfigured until
// SetProvider is called with a working one.
func New(provider llm.Provider, diag *diagnosis.Result, cfg Config) *Assistant {
	a := &Assistant{provider: provider, cfg: cfg}
	if diag != nil {
		a.summary = diag.Summary()
	}
	return a
}

// Configured reports whether a provider is available. When false the
// caller should obtain a credential interactively before asking.
func (a *Assistant) Configured() bool {
	return a.provider != nil
}

// SetProvider installs a provider, typically after an interactive
// credential prompt.
func (a *Assistant) SetProvider(p llm.Provider) {
	a.provider = p
}

// Transcript returns the conversation so far.
func (a *Assistant) Transcript() []Message {
	return a.transcript
}

// Welcome appends and returns the assistant's opening message.
func (a *Assistant) Welcome() Message {
	msg := a.append(llm.RoleAssistant,
		"¡Hola! Soy tu asesor en comercio internacional. Ya revisé tu diagnóstico exportador y estoy listo para resolver tus dudas. ¿En qué puedo ayudarte?")
	return msg
}

// Ask appends the user message, requests a reply and appends it. On
// any service failure the reply is the static fallback; the error
// never reaches the caller. Ask must not be called while unconfigured.
func (a *Assistant) Ask(ctx context.Context, text string) Message {
	a.append(llm.RoleUser, text)

	if a.provider == nil {
		return a.append(llm.RoleAssistant, FallbackReply)
	}

	ctx = llm.WithPurpose(ctx, "follow-up-chat")
	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      a.systemPrompt(),
		Messages:    a.history(),
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil || len(resp.Content) == 0 {
		return a.append(llm.RoleAssistant, FallbackReply)
	}

	return a.append(llm.RoleAssistant, string(resp.Content))
}

func (a *Assistant) append(role llm.Role, content string) Message {
	msg := Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		Time:    time.Now(),
	}
	a.transcript = append(a.transcript, msg)
	return msg
}

// history converts the most recent transcript entries into request
// messages.
func (a *Assistant) history() []llm.Message {
	start := 0
	if limit := a.cfg.HistoryLimit; limit > 0 && len(a.transcript) > limit {
		start = len(a.transcript) - limit
	}
	var msgs []llm.Message
	for _, m := range a.transcript[start:] {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}
	return msgs
}

func (a *Assistant) systemPrompt() string {
	prompt := `Eres un asesor especializado en comercio internacional del Laboratorio de Comercio Internacional de la Universidad de La Sabana.

Ayudas a empresas colombianas a prepararse para exportar. Respondes en español, con un tono profesional pero cercano, y das recomendaciones concretas y realizables adaptadas al contexto colombiano y latinoamericano. Mantén las respuestas enfocadas y razonablemente breves.`
	if a.summary != "" {
		prompt += fmt.Sprintf("\n\nDiagnóstico exportador de la empresa:\n%s", a.summary)
	}
	return prompt
}
