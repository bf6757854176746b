package models

import "time"

// Family member roles. Admins are the only members allowed to invite.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Family represents a group of people (and pets) tracked together
type Family struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FamilyMember represents the confirmed relationship between a user and a family
type FamilyMember struct {
	ID       int64
	FamilyID string
	UserID   string
	Role     string // 'admin' or 'member'
	JoinedAt time.Time
}

// PendingEntry is an identifier awaiting confirmation: either a user ID
// (registered invitee) or a normalized email (invitee without an account yet)
type PendingEntry struct {
	ID         int64
	FamilyID   string
	PendingKey string
	CreatedAt  time.Time
}

// UnregisteredMember is a family entry with no login identity:
// a pet, a deceased person, or an otherwise account-less individual
type UnregisteredMember struct {
	ID           string
	FamilyID     string
	Name         string
	Relationship string
	IsDeceased   bool
	IsPet        bool
	ProfileData  string // JSON object, empty at creation
	CreatedAt    time.Time
}
