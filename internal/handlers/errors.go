package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"questforge/internal/engine"
	"questforge/internal/generator"
	"questforge/internal/repository"
	"questforge/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

func respondWithError(w http.ResponseWriter, logger *zap.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil && logger != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		logger.Error(logMsg, zap.Int("status", status), zap.Error(err))
	}
	respondWithJSON(w, status, errorResponse{Error: userMsg})
}

// respondWithServiceError maps domain errors to status codes. Only
// unexpected errors are logged.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr validation.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, generator.ErrInvalidParams):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, engine.ErrUnknownQuest):
		respondWithJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, engine.ErrAlreadyCompleted),
		errors.Is(err, engine.ErrChallengeCompleted),
		errors.Is(err, engine.ErrNotTodaysChallenge),
		errors.Is(err, engine.ErrNoChallenge):
		respondWithJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrConcurrentUpdate):
		respondWithError(w, logger, http.StatusConflict, ErrConflict, "save conflict persisted after retries", err)
	default:
		respondWithError(w, logger, http.StatusInternalServerError, ErrInternalServerError, "request failed", err)
	}
}
