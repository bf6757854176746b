package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "healthyfamilies/internal/errors"
)

// errorResponse is the JSON body returned for every failed request
type errorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondWithJSON writes a JSON response with the given status code
func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// respondWithError maps a service error to an HTTP status and a JSON
// error body. Uncategorized errors are logged and reported as a generic
// internal error so internals never leak to the client.
func respondWithError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	message := err.Error()

	if kind == apperrors.KindInternal {
		log.Printf("Internal error: %v", err)
		message = "An internal error occurred."
	}

	respondWithJSON(w, kind.HTTPStatus(), errorResponse{
		Status:  "error",
		Code:    string(kind),
		Message: message,
	})
}
