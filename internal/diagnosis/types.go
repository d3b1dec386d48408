// Package diagnosis defines the export-readiness diagnosis report and
// the optional LLM-backed refinement step.
package diagnosis

import (
	"fmt"
	"strings"
	"time"
)

// Category is the readiness band a normalized score falls into.
type Category string

const (
	CategoryPrincipiante Category = "Principiante"
	CategoryIntermedio   Category = "Intermedio"
	CategoryAvanzado     Category = "Avanzado"
	CategoryExperto      Category = "Experto"
)

// CategoryFor maps a normalized score to its band. Bands are contiguous
// and exhaustive over [0,100] with boundaries at 25, 50 and 75.
func CategoryFor(score int) Category {
	switch {
	case score < 25:
		return CategoryPrincipiante
	case score < 50:
		return CategoryIntermedio
	case score < 75:
		return CategoryAvanzado
	default:
		return CategoryExperto
	}
}

// AllCategories returns the bands in ascending order.
func AllCategories() []Category {
	return []Category{CategoryPrincipiante, CategoryIntermedio, CategoryAvanzado, CategoryExperto}
}

// Result is the diagnosis report. It is created once when the last
// question is answered, optionally replaced wholesale by the refiner,
// and cleared only on restart.
type Result struct {
	Score           int      `json:"score"`
	Category        Category `json:"category"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`

	// Metadata snapshot taken at compute time.
	Company string `json:"company"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Date    string `json:"date"`
}

// Clone returns a deep copy. The refiner works on a copy so a failed
// refinement can never leave the original partially overwritten.
func (r *Result) Clone() *Result {
	cp := *r
	cp.Strengths = append([]string(nil), r.Strengths...)
	cp.Weaknesses = append([]string(nil), r.Weaknesses...)
	cp.Recommendations = append([]string(nil), r.Recommendations...)
	return &cp
}

// Summary serializes the result for use as LLM context: score, band and
// the top findings.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Empresa: %s\n", r.Company)
	fmt.Fprintf(&b, "Ciudad: %s\n", r.City)
	fmt.Fprintf(&b, "Puntaje: %d/100 (%s)\n", r.Score, r.Category)
	b.WriteString("Fortalezas:\n")
	for _, s := range top(r.Strengths, 3) {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("Debilidades:\n")
	for _, w := range top(r.Weaknesses, 3) {
		fmt.Fprintf(&b, "- %s\n", w)
	}
	return b.String()
}

func top(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders t as a long-form Spanish date, e.g.
// "29 de agosto de 2026".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}
