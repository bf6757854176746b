package models

import "time"

// Invitation statuses. The only valid transition is pending (either form)
// to accepted.
const (
	InvitationStatusPending             = "pending"
	InvitationStatusPendingUnregistered = "pending_unregistered"
	InvitationStatusAccepted            = "accepted"
)

// Defaults applied when an invitation omits role or relationship metadata.
const (
	DefaultInitialRole             = "child"
	DefaultInitialRelationshipType = "other"
)

// Invitation is a time-bounded offer for a specific person to join a family.
// InvitedUserID is empty until a registered account is matched or the
// invitee signs up and accepts.
type Invitation struct {
	ID                      string
	FamilyID                string
	InvitedByUserID         string
	InvitedByDisplayName    string
	InvitedEmail            string
	InvitedUserID           string
	InitialRole             string
	InitialRelationshipType string
	Status                  string
	InvitationCode          string
	CreatedAt               time.Time
	ExpiresAt               time.Time
}

func (i *Invitation) IsExpired() bool {
	return !i.ExpiresAt.After(time.Now())
}

// IsPending reports whether the invitation is still awaiting acceptance.
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending || i.Status == InvitationStatusPendingUnregistered
}
