package repository

import (
	"fmt"

	"healthyfamilies/internal/database"
	"healthyfamilies/internal/models"
)

// RelationshipRepository handles database operations for relationship
// edges between family participants
type RelationshipRepository struct {
	db *database.DB
}

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(db *database.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// ExistsBetween checks whether a relationship edge already exists between
// two participant identifiers within a family, in either direction
func (r *RelationshipRepository) ExistsBetween(familyID, id1, id2 string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM family_relationships
		WHERE family_id = ?
		  AND ((member1_id = ? AND member2_id = ?) OR (member1_id = ? AND member2_id = ?))
	`
	var count int
	if err := r.db.QueryRow(query, familyID, id1, id2, id2, id1).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check relationship: %w", err)
	}
	return count > 0, nil
}

// Create inserts a relationship edge as part of a write batch
func (r *RelationshipRepository) Create(q database.DBTX, rel *models.FamilyRelationship) error {
	query := `
		INSERT INTO family_relationships (
			id, family_id, member1_type, member1_id, member2_type, member2_id,
			relationship_type, dynamic_type, description,
			frequency, ia_confidence_score, interaction_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := q.Exec(query,
		rel.ID, rel.FamilyID,
		rel.Member1Ref.Type, rel.Member1Ref.ID,
		rel.Member2Ref.Type, rel.Member2Ref.ID,
		rel.RelationshipType, rel.DynamicType, rel.Description,
		rel.Frequency, rel.IAConfidenceScore, rel.InteractionCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create relationship: %w", err)
	}
	return nil
}

// GetByFamily retrieves all relationship edges within a family
func (r *RelationshipRepository) GetByFamily(familyID string) ([]models.FamilyRelationship, error) {
	query := `
		SELECT id, family_id, member1_type, member1_id, member2_type, member2_id,
		       relationship_type, dynamic_type, description,
		       frequency, ia_confidence_score, interaction_count, last_interaction
		FROM family_relationships
		WHERE family_id = ?
		ORDER BY last_interaction ASC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer rows.Close()

	var rels []models.FamilyRelationship
	for rows.Next() {
		var rel models.FamilyRelationship
		if err := rows.Scan(
			&rel.ID, &rel.FamilyID,
			&rel.Member1Ref.Type, &rel.Member1Ref.ID,
			&rel.Member2Ref.Type, &rel.Member2Ref.ID,
			&rel.RelationshipType, &rel.DynamicType, &rel.Description,
			&rel.Frequency, &rel.IAConfidenceScore, &rel.InteractionCount, &rel.LastInteraction,
		); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		rels = append(rels, rel)
	}

	return rels, rows.Err()
}
