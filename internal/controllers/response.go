package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hoteldesk/hoteldesk/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the service error kinds onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, services.Message(err))
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, services.Message(err))
	default:
		log.Printf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
