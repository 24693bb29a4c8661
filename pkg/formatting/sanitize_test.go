package formatting_test

import (
	"testing"

	"github.com/agentia/vendormail/pkg/formatting"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"formatted us number", "(555) 123-4567", "5551234567", true},
		{"dotted separator", "555.123.4567", "5551234567", true},
		{"international prefix", "+1 555 123 4567", "15551234567", true},
		{"already clean", "5551234567", "5551234567", true},
		{"too short", "123", "", false},
		{"letters only", "call me", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := formatting.NormalizePhone(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("NormalizePhone(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"billing@acme.example",
		"jordan.miles+ap@acme-corp.co.uk",
	}
	invalid := []string{
		"",
		"not-an-email",
		"missing@domain",
		"@acme.example",
	}

	for _, s := range valid {
		if !formatting.ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if formatting.ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = true, want false", s)
		}
	}
}

func TestExtractInvoiceNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"uppercase", "Please check INV-100 for me", "INV-100", true},
		{"lowercase", "status of inv-2024-001?", "INV-2024-001", true},
		{"embedded punctuation", "Re: INV-55.", "INV-55", true},
		{"first of several", "INV-1 and INV-2", "INV-1", true},
		{"no match", "where is my money", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := formatting.ExtractInvoiceNumber(tt.text)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ExtractInvoiceNumber(%q) = (%q, %v), want (%q, %v)",
					tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}
