package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

//go:embed questions.json
var embeddedJSON []byte

// Embedded returns the bundled catalog. The bundled data is validated
// at startup; a broken bundle is a build defect.
func Embedded() *Catalog {
	c, err := Parse(embeddedJSON)
	if err != nil {
		panic(fmt.Sprintf("catalog: bundled questions.json: %v", err))
	}
	return c
}

// LoadFile reads and parses a catalog from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

var fetchClient = &http.Client{Timeout: 30 * time.Second}

// Fetch retrieves a catalog JSON document over HTTP. A hung source
// cannot block startup: the client times out after 30 seconds on top
// of whatever deadline ctx carries.
func Fetch(ctx context.Context, url string) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", url, err)
	}
	resp, err := fetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", url, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", url, err)
	}
	return c, nil
}

// Two source shapes exist: a short form where every question carries
// explicit options with score and finding, and a long form where each
// question is yes/no with one finding text per branch. The long form
// additionally encodes the company-size question as a tier list. Parse
// accepts both, mixed freely, and normalizes everything to Question.

type rawCatalog struct {
	Questions []rawQuestion `json:"questions"`
}

type rawQuestion struct {
	ID       int         `json:"id"`
	Prompt   string      `json:"pregunta"`
	Text     string      `json:"text"`
	Category string      `json:"category"`
	Help     string      `json:"help"`
	YesText  string      `json:"opcion_si"`
	NoText   string      `json:"opcion_no"`
	Options  []rawOption `json:"options"`
}

type rawOption struct {
	Label     string `json:"label"`
	Value     int    `json:"value"`
	Diagnosis struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"diagnosis"`
}

// Parse decodes a catalog JSON document and normalizes each entry.
func Parse(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	questions := make([]Question, 0, len(raw.Questions))
	for _, rq := range raw.Questions {
		q, err := normalize(rq)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return New(questions)
}

func normalize(rq rawQuestion) (Question, error) {
	prompt := rq.Prompt
	if prompt == "" {
		prompt = rq.Text
	}
	q := Question{ID: rq.ID, Prompt: prompt, Category: rq.Category, Help: rq.Help}

	switch {
	case len(rq.Options) > 0:
		for _, ro := range rq.Options {
			kind, err := parseKind(ro.Diagnosis.Type)
			if err != nil {
				return Question{}, fmt.Errorf("question %d: %w", rq.ID, err)
			}
			q.Options = append(q.Options, Option{
				Label:   ro.Label,
				Score:   ro.Value,
				Kind:    kind,
				Message: ro.Diagnosis.Message,
			})
		}
	case isSizeTiered(rq):
		q.Options = sizeTierOptions(rq)
	case rq.YesText != "" && rq.NoText != "":
		q.Options = []Option{
			{Label: "Sí", Score: 4, Kind: KindStrength, Message: rq.YesText},
			{Label: "No", Score: 1, Kind: KindWeakness, Message: rq.NoText},
		}
	default:
		return Question{}, fmt.Errorf("question %d: no options and no yes/no texts", rq.ID)
	}
	return q, nil
}

func parseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindStrength, KindOpportunity, KindImprovement, KindWeakness:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown diagnosis kind %q", s)
}

// The long-form size question lists the first tier in opcion_si and the
// remaining tiers comma-separated in opcion_no.
func isSizeTiered(rq rawQuestion) bool {
	return strings.Contains(strings.ToLower(rq.Prompt), "tamaño") ||
		strings.Contains(rq.YesText, "empleados")
}

func sizeTierOptions(rq rawQuestion) []Option {
	tiers := []string{strings.TrimSpace(rq.YesText)}
	for _, t := range strings.Split(rq.NoText, ", ") {
		if t = strings.TrimSpace(t); t != "" {
			tiers = append(tiers, t)
		}
	}
	opts := make([]Option, 0, len(tiers))
	for i, label := range tiers {
		score := 2 + i
		if score > 5 {
			score = 5
		}
		opts = append(opts, Option{
			Label:   label,
			Score:   score,
			Kind:    sizeTierKind(score),
			Message: sizeTierMessage(score),
		})
	}
	return opts
}

func sizeTierKind(score int) Kind {
	switch {
	case score <= 2:
		return KindImprovement
	case score == 3:
		return KindOpportunity
	default:
		return KindStrength
	}
}

func sizeTierMessage(score int) string {
	switch {
	case score <= 2:
		return "El tamaño actual de la empresa limita la capacidad de respuesta ante pedidos internacionales de gran volumen."
	case score == 3:
		return "La empresa tiene potencial de crecimiento para atender mercados internacionales."
	default:
		return "El tamaño de la empresa respalda la capacidad productiva necesaria para exportar."
	}
}
