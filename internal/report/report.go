// Package report renders a computed diagnosis as downloadable
// plain-text and CSV documents.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/samyrami/exporta-facil-bot/internal/diagnosis"
)

const contactFooter = `PRÓXIMOS PASOS
---------------
El Laboratorio de Gobierno y el Laboratorio de Comercio Internacional de la Universidad de La Sabana ofrecen:
• Programas especializados en comercio internacional
• Servicios de consultoría para exportadores
• Capacitaciones en preparación exportadora
• Inteligencia de mercados y oportunidades comerciales

Contacto: Laboratorio de Gobierno y Laboratorio de Comercio Internacional
Universidad de La Sabana
Email: comercio.internacional@unisabana.edu.co

Desarrollado por el Laboratorio de Gobierno con el apoyo del Laboratorio de Comercio Internacional - Universidad de La Sabana © 2024`

// Text renders the full diagnosis as a plain-text report.
func Text(r *diagnosis.Result) string {
	var b strings.Builder

	b.WriteString("DIAGNÓSTICO DE CAPACIDAD EXPORTADORA\n")
	b.WriteString("===============================================\n\n")

	b.WriteString("DATOS DE LA EVALUACIÓN\n")
	b.WriteString("----------------------\n")
	fmt.Fprintf(&b, "Empresa: %s\n", r.Company)
	fmt.Fprintf(&b, "Responsable: %s\n", r.Name)
	fmt.Fprintf(&b, "Ciudad: %s\n", r.City)
	fmt.Fprintf(&b, "Fecha: %s\n", r.Date)
	fmt.Fprintf(&b, "Categoría: %s\n", r.Category)
	fmt.Fprintf(&b, "Puntuación: %d/100\n\n", r.Score)

	b.WriteString("FORTALEZAS IDENTIFICADAS\n")
	b.WriteString("------------------------\n")
	for _, s := range r.Strengths {
		fmt.Fprintf(&b, "• %s\n", s)
	}
	b.WriteString("\n")

	b.WriteString("ÁREAS DE MEJORA\n")
	b.WriteString("----------------\n")
	for _, w := range r.Weaknesses {
		fmt.Fprintf(&b, "• %s\n", w)
	}
	b.WriteString("\n")

	b.WriteString("RECOMENDACIONES ESTRATÉGICAS\n")
	b.WriteString("----------------------------\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	b.WriteString("\n")

	b.WriteString(contactFooter)
	b.WriteString("\n")
	return b.String()
}

// CSV renders the diagnosis as a two-column CSV. Every cell is quoted,
// section names appear in the first column and their items in the
// second, so the file opens cleanly in a spreadsheet.
func CSV(r *diagnosis.Result) string {
	rows := [][2]string{
		{"Campo", "Valor"},
		{"Empresa", r.Company},
		{"Responsable", r.Name},
		{"Ciudad", r.City},
		{"Fecha", r.Date},
		{"Categoría", string(r.Category)},
		{"Puntuación", fmt.Sprintf("%d", r.Score)},
		{"", ""},
		{"FORTALEZAS", ""},
	}
	for _, s := range r.Strengths {
		rows = append(rows, [2]string{"", s})
	}
	rows = append(rows, [2]string{"", ""}, [2]string{"ÁREAS DE MEJORA", ""})
	for _, w := range r.Weaknesses {
		rows = append(rows, [2]string{"", w})
	}
	rows = append(rows, [2]string{"", ""}, [2]string{"RECOMENDACIONES", ""})
	for i, rec := range r.Recommendations {
		rows = append(rows, [2]string{"", fmt.Sprintf("%d. %s", i+1, rec)})
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, quote(row[0])+","+quote(row[1]))
	}
	return strings.Join(lines, "\n")
}

func quote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

// Filename builds the download name for a report: the company slug and
// the given date, with the extension ("txt" or "csv") appended.
func Filename(r *diagnosis.Result, ext string, now time.Time) string {
	return fmt.Sprintf("diagnostico-exportador-%s-%s.%s",
		slug(r.Company), now.Format("2006-01-02"), ext)
}

// slug lowercases and strips the company name down to filename-safe
// runes. Runs of anything else collapse into a single dash.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
