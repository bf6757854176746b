package repository

import (
	"strings"
	"testing"
)

func TestGenerateInvitationCode(t *testing.T) {
	repo := NewInvitationRepository(nil)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := repo.GenerateInvitationCode()
		if err != nil {
			t.Fatalf("GenerateInvitationCode failed: %v", err)
		}

		if len(code) != invitationCodeLength {
			t.Fatalf("code length = %d, want %d (%q)", len(code), invitationCodeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(invitationCodeAlphabet, c) {
				t.Fatalf("code %q contains character outside the alphabet", code)
			}
		}
		seen[code] = true
	}

	if len(seen) < 95 {
		t.Errorf("generated only %d distinct codes out of 100", len(seen))
	}
}
