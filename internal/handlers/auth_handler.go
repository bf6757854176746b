package handlers

import (
	"encoding/json"
	"net/http"

	"healthyfamilies/internal/service"
)

// AuthHandler handles sign-in HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type signInRequest struct {
	OOBToken string `json:"oobToken"`
}

// SignIn handles POST /auth/signin, redeeming an emailed sign-in link
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{
			Status:  "error",
			Code:    "BAD_REQUEST",
			Message: "Invalid request body.",
		})
		return
	}

	result, err := h.authService.RedeemSignInLink(req.OOBToken)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
