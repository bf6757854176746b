package models

import "time"

// User represents an account in the system. Accounts are created by the
// registration flow, not by the invitation workflows; they are only read
// here.
type User struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}
