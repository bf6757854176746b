package models

import "time"

// Member reference types for relationship endpoints.
const (
	MemberRefUser         = "user"
	MemberRefUnregistered = "unregisteredMember"
)

// Seed values for a relationship created at first contact. The record is
// intended for later enrichment as interactions accumulate.
const (
	DynamicTypeInitialConnection = "initial_connection"
	InitialFrequency             = 0.1
	InitialConfidenceScore       = 0.1
	InitialInteractionCount      = 1
)

// MemberRef is a tagged reference to a family participant: a registered
// user or an unregistered member.
type MemberRef struct {
	Type string
	ID   string
}

// FamilyRelationship describes the connection between two family
// participants within one family. At most one edge exists per unordered
// pair of references.
type FamilyRelationship struct {
	ID                string
	FamilyID          string
	Member1Ref        MemberRef
	Member2Ref        MemberRef
	RelationshipType  string
	DynamicType       string
	Description       string
	Frequency         float64
	IAConfidenceScore float64
	InteractionCount  int
	LastInteraction   time.Time
}
