package models

import (
	"testing"
	"time"
)

func TestInvitationIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		expected  bool
	}{
		{"future expiry", time.Now().Add(time.Hour), false},
		{"past expiry", time.Now().Add(-time.Hour), true},
		{"just expired", time.Now().Add(-time.Millisecond), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invitation{ExpiresAt: tt.expiresAt}
			if got := inv.IsExpired(); got != tt.expected {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInvitationIsPending(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{InvitationStatusPending, true},
		{InvitationStatusPendingUnregistered, true},
		{InvitationStatusAccepted, false},
		{"revoked", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			inv := &Invitation{Status: tt.status}
			if got := inv.IsPending(); got != tt.expected {
				t.Errorf("IsPending() = %v, want %v", got, tt.expected)
			}
		})
	}
}
