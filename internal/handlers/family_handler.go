package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "healthyfamilies/internal/errors"
	"healthyfamilies/internal/service"
)

// FamilyHandler handles family membership HTTP requests
type FamilyHandler struct {
	familyService *service.FamilyService
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
	}
}

type joinFamilyRequest struct {
	InvitationCode string `json:"invitationCode"`
}

// InviteMember handles POST /family/invite
func (h *FamilyHandler) InviteMember(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())
	if claims == nil {
		respondWithError(w, apperrors.New(apperrors.KindUnauthenticated, "User is not authenticated."))
		return
	}

	var input service.InviteMemberInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{
			Status:  "error",
			Code:    "BAD_REQUEST",
			Message: "Invalid request body.",
		})
		return
	}

	result, err := h.familyService.InviteMember(claims.UserID, input)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// JoinFamily handles POST /family/join
func (h *FamilyHandler) JoinFamily(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())
	if claims == nil {
		respondWithError(w, apperrors.New(apperrors.KindUnauthenticated, "User is not authenticated."))
		return
	}

	var req joinFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{
			Status:  "error",
			Code:    "BAD_REQUEST",
			Message: "Invalid request body.",
		})
		return
	}

	result, err := h.familyService.JoinFamily(claims.UserID, req.InvitationCode)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Health handles GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
