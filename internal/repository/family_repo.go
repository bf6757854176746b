package repository

import (
	"database/sql"
	"fmt"

	"healthyfamilies/internal/database"
	"healthyfamilies/internal/models"
)

// FamilyRepository handles database operations for families and their
// membership, pending and unregistered-member sets
type FamilyRepository struct {
	db *database.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *database.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// CreateFamily creates a new family and adds the creator as an admin
func (r *FamilyRepository) CreateFamily(id, name, creatorUserID string) (*models.Family, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT INTO families (id, name) VALUES (?, ?)", id, name); err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	query := "INSERT INTO family_members (family_id, user_id, role) VALUES (?, ?, ?)"
	if _, err := tx.Exec(query, id, creatorUserID, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to add family admin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetFamilyByID(id)
}

// GetFamilyByID retrieves a family by ID, returning nil when absent
func (r *FamilyRepository) GetFamilyByID(familyID string) (*models.Family, error) {
	query := "SELECT id, name, created_at, updated_at FROM families WHERE id = ?"
	family := &models.Family{}
	err := r.db.QueryRow(query, familyID).Scan(
		&family.ID,
		&family.Name,
		&family.CreatedAt,
		&family.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	return family, nil
}

// IsAdmin checks if a user is an administrator of a family
func (r *FamilyRepository) IsAdmin(familyID, userID string) (bool, error) {
	query := "SELECT COUNT(*) FROM family_members WHERE family_id = ? AND user_id = ? AND role = ?"
	var count int
	if err := r.db.QueryRow(query, familyID, userID, models.RoleAdmin).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check family admin: %w", err)
	}
	return count > 0, nil
}

// IsMember checks if a user is a confirmed member of a family
func (r *FamilyRepository) IsMember(familyID, userID string) (bool, error) {
	query := "SELECT COUNT(*) FROM family_members WHERE family_id = ? AND user_id = ?"
	var count int
	if err := r.db.QueryRow(query, familyID, userID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check family membership: %w", err)
	}
	return count > 0, nil
}

// IsPending checks if an identifier (user ID or normalized email) is
// already on the family's pending set
func (r *FamilyRepository) IsPending(familyID, pendingKey string) (bool, error) {
	query := "SELECT COUNT(*) FROM family_pending WHERE family_id = ? AND pending_key = ?"
	var count int
	if err := r.db.QueryRow(query, familyID, pendingKey).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check pending entry: %w", err)
	}
	return count > 0, nil
}

// AddMember adds a user to a family's member set
func (r *FamilyRepository) AddMember(q database.DBTX, familyID, userID, role string) error {
	query := "INSERT INTO family_members (family_id, user_id, role) VALUES (?, ?, ?)"
	if _, err := q.Exec(query, familyID, userID, role); err != nil {
		return fmt.Errorf("failed to add family member: %w", err)
	}
	return nil
}

// AddPending adds an identifier to a family's pending set
func (r *FamilyRepository) AddPending(q database.DBTX, familyID, pendingKey string) error {
	query := "INSERT INTO family_pending (family_id, pending_key) VALUES (?, ?)"
	if _, err := q.Exec(query, familyID, pendingKey); err != nil {
		return fmt.Errorf("failed to add pending entry: %w", err)
	}
	return nil
}

// RemovePending removes identifiers from a family's pending set. Missing
// keys are ignored.
func (r *FamilyRepository) RemovePending(q database.DBTX, familyID string, pendingKeys ...string) error {
	query := "DELETE FROM family_pending WHERE family_id = ? AND pending_key = ?"
	for _, key := range pendingKeys {
		if key == "" {
			continue
		}
		if _, err := q.Exec(query, familyID, key); err != nil {
			return fmt.Errorf("failed to remove pending entry: %w", err)
		}
	}
	return nil
}

// AddUnregisteredMember appends an account-less member to a family
func (r *FamilyRepository) AddUnregisteredMember(q database.DBTX, m *models.UnregisteredMember) error {
	query := `
		INSERT INTO unregistered_members (id, family_id, name, relationship, is_deceased, is_pet, profile_data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := q.Exec(query, m.ID, m.FamilyID, m.Name, m.Relationship, m.IsDeceased, m.IsPet, m.ProfileData)
	if err != nil {
		return fmt.Errorf("failed to add unregistered member: %w", err)
	}
	return nil
}

// GetUnregisteredMembers retrieves a family's account-less members
func (r *FamilyRepository) GetUnregisteredMembers(familyID string) ([]models.UnregisteredMember, error) {
	query := `
		SELECT id, family_id, name, relationship, is_deceased, is_pet, profile_data, created_at
		FROM unregistered_members
		WHERE family_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unregistered members: %w", err)
	}
	defer rows.Close()

	var members []models.UnregisteredMember
	for rows.Next() {
		var m models.UnregisteredMember
		if err := rows.Scan(&m.ID, &m.FamilyID, &m.Name, &m.Relationship, &m.IsDeceased, &m.IsPet, &m.ProfileData, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unregistered member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// GetMembers retrieves all confirmed members of a family
func (r *FamilyRepository) GetMembers(familyID string) ([]models.FamilyMember, error) {
	query := `
		SELECT id, family_id, user_id, role, joined_at
		FROM family_members
		WHERE family_id = ?
		ORDER BY joined_at ASC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	defer rows.Close()

	var members []models.FamilyMember
	for rows.Next() {
		var m models.FamilyMember
		if err := rows.Scan(&m.ID, &m.FamilyID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// GetPending retrieves a family's pending identifiers
func (r *FamilyRepository) GetPending(familyID string) ([]string, error) {
	query := "SELECT pending_key FROM family_pending WHERE family_id = ? ORDER BY created_at ASC"
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending entries: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan pending entry: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// Touch bumps a family's updated_at timestamp within a write batch
func (r *FamilyRepository) Touch(q database.DBTX, familyID string) error {
	query := "UPDATE families SET updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := q.Exec(query, familyID); err != nil {
		return fmt.Errorf("failed to touch family: %w", err)
	}
	return nil
}
