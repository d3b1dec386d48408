package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"text/template"

	"github.com/samyrami/exporta-facil-bot/internal/llm"
)

// RefinerConfig holds configuration for the LLM refiner.
type RefinerConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultRefinerConfig returns sensible defaults.
func DefaultRefinerConfig() RefinerConfig {
	return RefinerConfig{
		MaxTokens:   1500,
		Temperature: 0.7,
	}
}

// Refiner rewrites a diagnosis through an LLM while preserving its
// structure. Refinement is best-effort: any transport, parse or shape
// failure yields the original result unchanged.
type Refiner struct {
	provider llm.Provider
	cfg      RefinerConfig
}

// NewRefiner creates an LLM-backed refiner.
func NewRefiner(provider llm.Provider, cfg RefinerConfig) *Refiner {
	return &Refiner{provider: provider, cfg: cfg}
}

type refineOutput struct {
	Strengths       []string `json:"fortalezas"`
	Weaknesses      []string `json:"debilidades"`
	Recommendations []string `json:"recomendaciones"`
}

// Refine sends the result to the model and returns the rewritten copy.
// The boolean reports whether a refinement was applied; on any failure
// the input is returned as-is and the caller observes "unchanged", not
// an error. Score, category and metadata are never modified.
func (r *Refiner) Refine(ctx context.Context, result *Result) (*Result, bool) {
	if r == nil || r.provider == nil || result == nil {
		return result, false
	}
	ctx = llm.WithPurpose(ctx, "diagnosis-refinement")

	userMsg, err := buildRefineMessage(result)
	if err != nil {
		return result, false
	}

	resp, err := r.provider.Generate(ctx, llm.Request{
		System: refineSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      RefineSchema,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return result, false
	}

	var raw refineOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return result, false
	}
	if len(raw.Strengths) == 0 || len(raw.Weaknesses) == 0 || len(raw.Recommendations) == 0 {
		return result, false
	}

	refined := result.Clone()
	refined.Strengths = raw.Strengths
	refined.Weaknesses = raw.Weaknesses
	refined.Recommendations = raw.Recommendations
	return refined, true
}

const refineSystemPrompt = `Eres un asesor especializado del Laboratorio de Comercio Internacional de la Universidad de La Sabana.

Tu tarea es mejorar la redacción de un diagnóstico de capacidad exportadora manteniendo las tres secciones principales: Fortalezas, Debilidades y Recomendaciones.

Pautas:
- Usa un lenguaje profesional pero cercano
- Mantén el tono constructivo y orientado a la acción
- Las fortalezas deben ser específicas y motivadoras
- Las debilidades deben presentarse como oportunidades de mejora
- Las recomendaciones deben ser concretas y realizables
- Adapta el contenido al contexto colombiano y latinoamericano
- Responde únicamente con un JSON válido con la estructura: {"fortalezas": string[], "debilidades": string[], "recomendaciones": string[]}`

var refineUserTemplate = template.Must(template.New("refine").Parse(`Empresa: {{.Company}}
Responsable: {{.Name}}
Ciudad: {{.City}}
Puntaje: {{.Score}}/100

Diagnóstico actual:

FORTALEZAS:
{{range .Strengths}}- {{.}}
{{end}}
DEBILIDADES:
{{range .Weaknesses}}- {{.}}
{{end}}
RECOMENDACIONES:
{{range .Recommendations}}- {{.}}
{{end}}
Por favor, mejora la redacción manteniendo la estructura y el contenido esencial.`))

func buildRefineMessage(result *Result) (string, error) {
	var buf bytes.Buffer
	if err := refineUserTemplate.Execute(&buf, result); err != nil {
		return "", err
	}
	return buf.String(), nil
}
