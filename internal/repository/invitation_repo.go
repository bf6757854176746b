package repository

import (
	"crypto/rand"
	"database/sql"
	"fmt"

	"healthyfamilies/internal/database"
	"healthyfamilies/internal/models"
)

// Invitation codes are short upper-alphanumeric tokens, unique enough for
// lookup and easy to type manually.
const (
	invitationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	invitationCodeLength   = 8
)

// InvitationRepository handles database operations for invitations
type InvitationRepository struct {
	db *database.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *database.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// GenerateInvitationCode generates a random invitation code
func (r *InvitationRepository) GenerateInvitationCode() (string, error) {
	bytes := make([]byte, invitationCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	for i, b := range bytes {
		bytes[i] = invitationCodeAlphabet[int(b)%len(invitationCodeAlphabet)]
	}
	return string(bytes), nil
}

// Create inserts an invitation as part of a write batch. An empty
// InvitedUserID is stored as NULL until an account is matched.
func (r *InvitationRepository) Create(q database.DBTX, inv *models.Invitation) error {
	var invitedUserID interface{}
	if inv.InvitedUserID != "" {
		invitedUserID = inv.InvitedUserID
	}

	query := `
		INSERT INTO invitations (
			id, family_id, invited_by_user_id, invited_by_display_name,
			invited_email, invited_user_id, initial_role, initial_relationship_type,
			status, invitation_code, expires_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := q.Exec(query,
		inv.ID, inv.FamilyID, inv.InvitedByUserID, inv.InvitedByDisplayName,
		inv.InvitedEmail, invitedUserID, inv.InitialRole, inv.InitialRelationshipType,
		inv.Status, inv.InvitationCode, inv.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

// GetByCode retrieves an invitation by code, returning nil when absent
func (r *InvitationRepository) GetByCode(code string) (*models.Invitation, error) {
	query := `
		SELECT id, family_id, invited_by_user_id, invited_by_display_name,
		       invited_email, invited_user_id, initial_role, initial_relationship_type,
		       status, invitation_code, created_at, expires_at
		FROM invitations
		WHERE invitation_code = ?
		LIMIT 1
	`

	inv := &models.Invitation{}
	var invitedUserID sql.NullString

	err := r.db.QueryRow(query, code).Scan(
		&inv.ID, &inv.FamilyID, &inv.InvitedByUserID, &inv.InvitedByDisplayName,
		&inv.InvitedEmail, &invitedUserID, &inv.InitialRole, &inv.InitialRelationshipType,
		&inv.Status, &inv.InvitationCode, &inv.CreatedAt, &inv.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	inv.InvitedUserID = invitedUserID.String
	return inv, nil
}

// MarkAccepted transitions an invitation to accepted within a write
// batch, backfilling invited_user_id when it was still NULL
func (r *InvitationRepository) MarkAccepted(q database.DBTX, invitationID, userID string) error {
	query := `
		UPDATE invitations
		SET status = ?, invited_user_id = COALESCE(invited_user_id, ?)
		WHERE id = ?
	`
	if _, err := q.Exec(query, models.InvitationStatusAccepted, userID, invitationID); err != nil {
		return fmt.Errorf("failed to mark invitation accepted: %w", err)
	}
	return nil
}
