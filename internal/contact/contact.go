// Package contact models the respondent data collected before the
// questionnaire and the per-field validation grammar.
package contact

import (
	"fmt"
	"regexp"
	"strings"
)

// Info is the contact block captured during onboarding. All fields are
// required before scoring.
type Info struct {
	Company string `json:"company"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	NIT     string `json:"nit"`
	City    string `json:"city"`
}

// Field describes one collectable field in ask order.
type Field struct {
	Key         string
	Label       string
	Prompt      string
	Placeholder string
}

var fields = []Field{
	{Key: "company", Label: "Nombre de la compañía", Prompt: "¿Cuál es el nombre de su empresa?", Placeholder: "Ingrese el nombre de su empresa"},
	{Key: "name", Label: "Nombre de quien responde", Prompt: "¿Cuál es su nombre completo?", Placeholder: "Ingrese su nombre completo"},
	{Key: "email", Label: "Email", Prompt: "¿Cuál es su correo electrónico?", Placeholder: "correo@empresa.com"},
	{Key: "phone", Label: "Teléfono del contacto", Prompt: "¿Cuál es su número de teléfono?", Placeholder: "Número de contacto"},
	{Key: "nit", Label: "NIT", Prompt: "¿Cuál es el NIT de la empresa?", Placeholder: "Número de identificación tributaria"},
	{Key: "city", Label: "Ciudad", Prompt: "¿En qué ciudad opera la empresa?", Placeholder: "Ciudad donde opera"},
}

// Fields returns the collectable fields in ask order.
func Fields() []Field {
	return fields
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-\(\)]{7,15}$`)
	digitRe = regexp.MustCompile(`\D`)
)

// ValidationError reports a field value that fails its grammar. The
// caller re-prompts for the same field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: %s: %s", e.Field, e.Reason)
}

// ValidateField checks a single value against the grammar for key.
func ValidateField(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "email":
		if !emailRe.MatchString(value) {
			return &ValidationError{Field: key, Reason: "correo electrónico inválido"}
		}
	case "phone":
		if !phoneRe.MatchString(value) {
			return &ValidationError{Field: key, Reason: "número de teléfono inválido"}
		}
	case "nit":
		digits := digitRe.ReplaceAllString(value, "")
		if len(digits) < 9 || len(digits) > 15 {
			return &ValidationError{Field: key, Reason: "el NIT debe tener entre 9 y 15 dígitos"}
		}
	case "company", "name", "city":
		if value == "" {
			return &ValidationError{Field: key, Reason: "este campo es obligatorio"}
		}
	default:
		return &ValidationError{Field: key, Reason: "campo desconocido"}
	}
	return nil
}

// Set stores a validated value on the info struct.
func (i *Info) Set(key, value string) error {
	if err := ValidateField(key, value); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	switch key {
	case "company":
		i.Company = value
	case "name":
		i.Name = value
	case "email":
		i.Email = value
	case "phone":
		i.Phone = value
	case "nit":
		i.NIT = value
	case "city":
		i.City = value
	}
	return nil
}

// Get returns the current value for key.
func (i Info) Get(key string) string {
	switch key {
	case "company":
		return i.Company
	case "name":
		return i.Name
	case "email":
		return i.Email
	case "phone":
		return i.Phone
	case "nit":
		return i.NIT
	case "city":
		return i.City
	}
	return ""
}

// Validate checks every field and returns the first failure.
func (i Info) Validate() error {
	for _, f := range fields {
		if err := ValidateField(f.Key, i.Get(f.Key)); err != nil {
			return err
		}
	}
	return nil
}

// Complete reports whether every field holds a valid value.
func (i Info) Complete() bool {
	return i.Validate() == nil
}
