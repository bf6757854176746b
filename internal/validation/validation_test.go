package validation

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase passthrough", "bob@example.com", "bob@example.com"},
		{"uppercase folded", "Bob@Example.COM", "bob@example.com"},
		{"whitespace trimmed", "  bob@example.com  ", "bob@example.com"},
		{"mixed", " BOB@example.Com\t", "bob@example.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmail(tt.input); got != tt.expected {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "bob@example.com", false},
		{"valid with plus", "bob+tag@example.com", false},
		{"valid subdomain", "bob@mail.example.co.uk", false},
		{"empty", "", true},
		{"missing at", "bobexample.com", true},
		{"missing domain", "bob@", true},
		{"missing tld", "bob@example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Rex", false},
		{"two characters", "Al", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"single character", "R", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
