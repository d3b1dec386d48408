package contact

import (
	"errors"
	"testing"
)

func TestValidateField(t *testing.T) {
	tests := []struct {
		key   string
		value string
		ok    bool
	}{
		{"email", "ana@empresa.com", true},
		{"email", "ana@empresa.co", true},
		{"email", "ana@empresa", false},
		{"email", "ana empresa@x.com", false},
		{"email", "@empresa.com", false},
		{"email", "", false},
		{"phone", "3001234567", true},
		{"phone", "+57 300 123 4567", true},
		{"phone", "(601) 555-1234", true},
		{"phone", "123456", false},
		{"phone", "abc1234567", false},
		{"nit", "900123456", true},
		{"nit", "900.123.456-7", true},
		{"nit", "12345678", false},
		{"nit", "1234567890123456", false},
		{"nit", "sin numero", false},
		{"company", "Café de la Sabana S.A.S.", true},
		{"company", "   ", false},
		{"name", "Ana María Gómez", true},
		{"name", "", false},
		{"city", "Chía", true},
		{"city", "", false},
		{"sector", "agro", false},
	}

	for _, tt := range tests {
		err := ValidateField(tt.key, tt.value)
		if tt.ok && err != nil {
			t.Errorf("ValidateField(%q, %q) = %v, want nil", tt.key, tt.value, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ValidateField(%q, %q) = nil, want error", tt.key, tt.value)
		}
	}
}

func TestValidationErrorType(t *testing.T) {
	err := ValidateField("email", "nope")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Field != "email" {
		t.Errorf("Field = %q", verr.Field)
	}
}

func TestSetTrimsAndStores(t *testing.T) {
	var info Info
	if err := info.Set("company", "  Frutas del Valle  "); err != nil {
		t.Fatal(err)
	}
	if info.Company != "Frutas del Valle" {
		t.Errorf("Company = %q", info.Company)
	}
	if err := info.Set("email", "not-an-email"); err == nil {
		t.Error("expected validation error")
	}
	if info.Email != "" {
		t.Errorf("invalid value was stored: %q", info.Email)
	}
}

func TestFieldsOrder(t *testing.T) {
	want := []string{"company", "name", "email", "phone", "nit", "city"}
	fs := Fields()
	if len(fs) != len(want) {
		t.Fatalf("len(Fields()) = %d", len(fs))
	}
	for i, f := range fs {
		if f.Key != want[i] {
			t.Errorf("Fields()[%d].Key = %q, want %q", i, f.Key, want[i])
		}
		if f.Label == "" || f.Prompt == "" {
			t.Errorf("field %q missing label or prompt", f.Key)
		}
	}
}

func TestComplete(t *testing.T) {
	info := Info{
		Company: "Frutas del Valle",
		Name:    "Ana Gómez",
		Email:   "ana@frutas.co",
		Phone:   "3001234567",
		NIT:     "900123456",
		City:    "Cali",
	}
	if !info.Complete() {
		t.Errorf("Complete() = false: %v", info.Validate())
	}
	info.Email = ""
	if info.Complete() {
		t.Error("Complete() = true with empty email")
	}
}
