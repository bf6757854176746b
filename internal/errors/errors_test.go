package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "typed error",
			err:      New(KindNotFound, "Family not found."),
			expected: KindNotFound,
		},
		{
			name:     "wrapped typed error",
			err:      fmt.Errorf("handling request: %w", New(KindPermissionDenied, "nope")),
			expected: KindPermissionDenied,
		},
		{
			name:     "typed error with cause",
			err:      Wrap(KindFailedPrecondition, "bad input", fmt.Errorf("boom")),
			expected: KindFailedPrecondition,
		},
		{
			name:     "untyped error",
			err:      fmt.Errorf("boom"),
			expected: KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected int
	}{
		{KindUnauthenticated, http.StatusUnauthorized},
		{KindNotFound, http.StatusNotFound},
		{KindPermissionDenied, http.StatusForbidden},
		{KindAlreadyExists, http.StatusConflict},
		{KindFailedPrecondition, http.StatusPreconditionFailed},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.HTTPStatus(); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(KindAlreadyExists, "This user is already a member of the family.")
	if err.Error() != "This user is already a member of the family." {
		t.Errorf("Error() = %q, want the plain message", err.Error())
	}
}

func TestUnwrapReturnsCause(t *testing.T) {
	cause := fmt.Errorf("constraint violated")
	err := Wrap(KindInternal, "write failed", cause)
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() did not return the cause")
	}
}
