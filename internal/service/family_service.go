package service

import (
	"fmt"
	"strings"
	"time"

	"healthyfamilies/internal/database"
	apperrors "healthyfamilies/internal/errors"
	"healthyfamilies/internal/models"
	"healthyfamilies/internal/repository"
	"healthyfamilies/internal/validation"

	"github.com/google/uuid"
)

// StatusSuccess is the acknowledgment status carried by both operations.
const StatusSuccess = "success"

// SignInLinkGenerator produces single-use sign-in URLs for invitees
// without an account. Implemented by the auth token service.
type SignInLinkGenerator interface {
	GenerateSignInLink(email, continueURL string) (string, error)
}

// InviteMemberInput selects one of the three invitation scenarios:
// IsRegisteredUser invites an existing account by email,
// IsUnregisteredUserEmail invites a person without an account by email,
// and neither flag adds an account-less member by name.
type InviteMemberInput struct {
	FamilyID                string `json:"familyId"`
	EmailOrName             string `json:"emailOrName"`
	IsRegisteredUser        bool   `json:"isRegisteredUser"`
	IsUnregisteredUserEmail bool   `json:"isUnregisteredUserEmail,omitempty"`
	InitialRole             string `json:"initialRole,omitempty"`
	InitialRelationshipType string `json:"initialRelationshipType,omitempty"`
	IsDeceased              bool   `json:"isDeceased,omitempty"`
	IsPet                   bool   `json:"isPet,omitempty"`
}

// InviteMemberResult acknowledges a successful invitation
type InviteMemberResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JoinFamilyResult acknowledges a successful join and carries the joined
// family's identifier
type JoinFamilyResult struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	FamilyID string `json:"familyId"`
}

// FamilyService implements the invitation and acceptance workflows. All
// writes of one invocation commit as a single transaction; the reads that
// inform the decision run before it.
type FamilyService struct {
	db               *database.DB
	familyRepo       *repository.FamilyRepository
	userRepo         *repository.UserRepository
	invitationRepo   *repository.InvitationRepository
	relationshipRepo *repository.RelationshipRepository
	mailRepo         *repository.MailRepository
	links            SignInLinkGenerator
	appBaseURL       string
	invitationTTL    time.Duration
}

// NewFamilyService creates a new family service
func NewFamilyService(
	db *database.DB,
	familyRepo *repository.FamilyRepository,
	userRepo *repository.UserRepository,
	invitationRepo *repository.InvitationRepository,
	relationshipRepo *repository.RelationshipRepository,
	mailRepo *repository.MailRepository,
	links SignInLinkGenerator,
	appBaseURL string,
	invitationTTL time.Duration,
) *FamilyService {
	return &FamilyService{
		db:               db,
		familyRepo:       familyRepo,
		userRepo:         userRepo,
		invitationRepo:   invitationRepo,
		relationshipRepo: relationshipRepo,
		mailRepo:         mailRepo,
		links:            links,
		appBaseURL:       appBaseURL,
		invitationTTL:    invitationTTL,
	}
}

// InviteMember invites a person into a family. The caller must be an
// administrator of the family.
func (s *FamilyService) InviteMember(callerID string, in InviteMemberInput) (*InviteMemberResult, error) {
	if callerID == "" {
		return nil, apperrors.New(apperrors.KindUnauthenticated, "User is not authenticated.")
	}

	family, err := s.familyRepo.GetFamilyByID(in.FamilyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Family not found.")
	}

	isAdmin, err := s.familyRepo.IsAdmin(family.ID, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperrors.New(apperrors.KindPermissionDenied, "Only administrators can invite new members.")
	}

	inviter, err := s.userRepo.GetUserByID(callerID)
	if err != nil {
		return nil, err
	}
	inviterName := "Administrator"
	if inviter != nil && inviter.DisplayName != "" {
		inviterName = inviter.DisplayName
	}

	switch {
	case in.IsRegisteredUser:
		return s.inviteRegisteredUser(family, callerID, inviterName, in)
	case in.IsUnregisteredUserEmail:
		return s.inviteUnregisteredByEmail(family, callerID, inviterName, in)
	default:
		return s.addUnregisteredMember(family, callerID, in)
	}
}

// inviteRegisteredUser handles scenario 1: the invitee already has an
// account, looked up by email.
func (s *FamilyService) inviteRegisteredUser(family *models.Family, callerID, inviterName string, in InviteMemberInput) (*InviteMemberResult, error) {
	email := validation.NormalizeEmail(in.EmailOrName)

	invited, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if invited == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "No registered user found with that email address.")
	}

	isMember, err := s.familyRepo.IsMember(family.ID, invited.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.New(apperrors.KindAlreadyExists, "This user is already a member of the family.")
	}

	isPending, err := s.familyRepo.IsPending(family.ID, invited.ID)
	if err != nil {
		return nil, err
	}
	if isPending {
		return nil, apperrors.New(apperrors.KindAlreadyExists, "An invitation is already pending for this user.")
	}

	inv, err := s.newInvitation(family.ID, callerID, inviterName, email, in)
	if err != nil {
		return nil, err
	}
	inv.InvitedUserID = invited.ID

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.invitationRepo.Create(tx, inv); err != nil {
		return nil, err
	}
	// The pending set holds the user ID; there is an account to match.
	if err := s.familyRepo.AddPending(tx, family.ID, invited.ID); err != nil {
		return nil, err
	}
	if err := s.familyRepo.Touch(tx, family.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &InviteMemberResult{Status: StatusSuccess, Message: "Invitation sent to registered user."}, nil
}

// inviteUnregisteredByEmail handles scenario 2: the invitee has no
// account yet. A sign-in link is generated and emailed through the
// outgoing mail queue.
func (s *FamilyService) inviteUnregisteredByEmail(family *models.Family, callerID, inviterName string, in InviteMemberInput) (*InviteMemberResult, error) {
	email := validation.NormalizeEmail(in.EmailOrName)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperrors.Wrap(apperrors.KindFailedPrecondition, "A valid email address is required.", err)
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.KindAlreadyExists, "This email belongs to a registered user. Invite them as a registered user instead.")
	}

	isPending, err := s.familyRepo.IsPending(family.ID, email)
	if err != nil {
		return nil, err
	}
	if isPending {
		return nil, apperrors.New(apperrors.KindAlreadyExists, "An invitation is already pending for this email.")
	}

	inv, err := s.newInvitation(family.ID, callerID, inviterName, email, in)
	if err != nil {
		return nil, err
	}

	// The sign-in link lands the invitee on the join flow with the code
	// pre-filled. Link generation is an external call; a failure here
	// aborts before anything is written.
	continueURL := fmt.Sprintf("%s/join?invitationCode=%s", s.appBaseURL, inv.InvitationCode)
	link, err := s.links.GenerateSignInLink(email, continueURL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sign-in link: %w", err)
	}

	msg := buildInvitationEmail(email, inviterName, link, inv.InvitationCode)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.invitationRepo.Create(tx, inv); err != nil {
		return nil, err
	}
	if _, err := s.mailRepo.Enqueue(tx, msg); err != nil {
		return nil, err
	}
	// No account yet, so the pending set holds the normalized email.
	if err := s.familyRepo.AddPending(tx, family.ID, email); err != nil {
		return nil, err
	}
	if err := s.familyRepo.Touch(tx, family.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &InviteMemberResult{Status: StatusSuccess, Message: "Invitation sent to unregistered person (email link)."}, nil
}

// addUnregisteredMember handles scenario 3: a pet, deceased person or
// otherwise account-less individual, added by name with no invitation.
func (s *FamilyService) addUnregisteredMember(family *models.Family, callerID string, in InviteMemberInput) (*InviteMemberResult, error) {
	name := strings.TrimSpace(in.EmailOrName)
	if err := validation.ValidateName(name); err != nil {
		return nil, apperrors.Wrap(apperrors.KindFailedPrecondition, "A name is required for an unregistered member.", err)
	}

	member := &models.UnregisteredMember{
		ID:           uuid.New().String(),
		FamilyID:     family.ID,
		Name:         name,
		Relationship: defaultString(in.InitialRelationshipType, models.DefaultInitialRelationshipType),
		IsDeceased:   in.IsDeceased,
		IsPet:        in.IsPet,
		ProfileData:  "{}",
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.familyRepo.AddUnregisteredMember(tx, member); err != nil {
		return nil, err
	}
	// Seed the inviter's connection to the new member right away; there
	// is no join step that would do it later.
	rel := newInitialRelationship(
		family.ID,
		models.MemberRef{Type: models.MemberRefUser, ID: callerID},
		models.MemberRef{Type: models.MemberRefUnregistered, ID: member.ID},
		member.Relationship,
	)
	if err := s.relationshipRepo.Create(tx, rel); err != nil {
		return nil, err
	}
	if err := s.familyRepo.Touch(tx, family.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &InviteMemberResult{Status: StatusSuccess, Message: "Unregistered member added successfully."}, nil
}

// JoinFamily accepts an invitation by code on behalf of the caller.
func (s *FamilyService) JoinFamily(callerID, invitationCode string) (*JoinFamilyResult, error) {
	if callerID == "" {
		return nil, apperrors.New(apperrors.KindUnauthenticated, "User is not authenticated.")
	}

	inv, err := s.invitationRepo.GetByCode(strings.TrimSpace(invitationCode))
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Invitation not found.")
	}

	if !inv.IsPending() {
		return nil, apperrors.New(apperrors.KindFailedPrecondition, "The invitation is no longer available.")
	}
	if inv.IsExpired() {
		return nil, apperrors.New(apperrors.KindFailedPrecondition, "The invitation has expired.")
	}

	user, err := s.userRepo.GetUserByID(callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "User profile not found.")
	}

	family, err := s.familyRepo.GetFamilyByID(inv.FamilyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Family not found.")
	}

	userEmail := validation.NormalizeEmail(user.Email)
	if userEmail == "" {
		return nil, apperrors.New(apperrors.KindFailedPrecondition, "The user has no email on file.")
	}

	// The invitation must address the caller: by user ID when an account
	// was matched at invite time, by email otherwise.
	if inv.InvitedUserID != "" && inv.InvitedUserID != callerID {
		return nil, apperrors.New(apperrors.KindPermissionDenied, "This invitation is for a different user.")
	}
	if inv.InvitedUserID == "" {
		invitedEmail := validation.NormalizeEmail(inv.InvitedEmail)
		if invitedEmail == "" || invitedEmail != userEmail {
			return nil, apperrors.New(apperrors.KindPermissionDenied, "This invitation is for a different email address.")
		}
	}

	isMember, err := s.familyRepo.IsMember(family.ID, callerID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.New(apperrors.KindAlreadyExists, "You are already a member of this family.")
	}

	// Idempotence check for the relationship seed, in both directions.
	// This read runs outside the batch; a concurrent join could slip
	// between it and the commit, which is an accepted risk.
	relExists, err := s.relationshipRepo.ExistsBetween(family.ID, inv.InvitedByUserID, callerID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.familyRepo.AddMember(tx, family.ID, callerID, models.RoleMember); err != nil {
		return nil, err
	}
	// Clear both possible pending forms: the user ID and the email.
	if err := s.familyRepo.RemovePending(tx, family.ID, callerID, userEmail); err != nil {
		return nil, err
	}
	if err := s.invitationRepo.MarkAccepted(tx, inv.ID, callerID); err != nil {
		return nil, err
	}
	if !relExists {
		rel := newInitialRelationship(
			family.ID,
			models.MemberRef{Type: models.MemberRefUser, ID: inv.InvitedByUserID},
			models.MemberRef{Type: models.MemberRefUser, ID: callerID},
			defaultString(inv.InitialRelationshipType, models.DefaultInitialRelationshipType),
		)
		if err := s.relationshipRepo.Create(tx, rel); err != nil {
			return nil, err
		}
	}
	if err := s.familyRepo.Touch(tx, family.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &JoinFamilyResult{
		Status:   StatusSuccess,
		Message:  "You have joined the family!",
		FamilyID: family.ID,
	}, nil
}

// newInvitation builds a pending invitation with a fresh code and the
// configured expiry.
func (s *FamilyService) newInvitation(familyID, inviterID, inviterName, email string, in InviteMemberInput) (*models.Invitation, error) {
	code, err := s.invitationRepo.GenerateInvitationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation code: %w", err)
	}

	return &models.Invitation{
		ID:                      uuid.New().String(),
		FamilyID:                familyID,
		InvitedByUserID:         inviterID,
		InvitedByDisplayName:    inviterName,
		InvitedEmail:            email,
		InitialRole:             defaultString(in.InitialRole, models.DefaultInitialRole),
		InitialRelationshipType: defaultString(in.InitialRelationshipType, models.DefaultInitialRelationshipType),
		Status:                  models.InvitationStatusPending,
		InvitationCode:          code,
		ExpiresAt:               time.Now().Add(s.invitationTTL),
	}, nil
}

// newInitialRelationship builds the relationship edge seeded at first
// contact between two participants.
func newInitialRelationship(familyID string, m1, m2 models.MemberRef, relationshipType string) *models.FamilyRelationship {
	return &models.FamilyRelationship{
		ID:                uuid.New().String(),
		FamilyID:          familyID,
		Member1Ref:        m1,
		Member2Ref:        m2,
		RelationshipType:  relationshipType,
		DynamicType:       models.DynamicTypeInitialConnection,
		Description:       "Initial relationship established on joining the family.",
		Frequency:         models.InitialFrequency,
		IAConfidenceScore: models.InitialConfidenceScore,
		InteractionCount:  models.InitialInteractionCount,
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
