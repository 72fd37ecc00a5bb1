package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hackboard/internal/domain"
	apperrors "hackboard/pkg/errors"
)

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondAppError writes a structured error response
func respondAppError(w http.ResponseWriter, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	response := map[string]interface{}{
		"error": map[string]interface{}{
			"type":      appErr.Type,
			"message":   appErr.Message,
			"details":   appErr.Details,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}
	_ = json.NewEncoder(w).Encode(response)
}

// respondError maps a service error onto the HTTP taxonomy and writes it.
// Validation failures and finalization races are expected outcomes and get
// their proper status; everything else is internal.
func respondError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		respondAppError(w, appErr)
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidScore):
		respondAppError(w, apperrors.NewValidationError("Score is outside the allowed range", nil))
	case errors.Is(err, domain.ErrSelfVoteForbidden):
		respondAppError(w, apperrors.NewValidationError("You cannot vote for your own team", nil))
	case errors.Is(err, domain.ErrTeamLocked):
		respondAppError(w, apperrors.NewConflictError("You already voted for another team"))
	case errors.Is(err, domain.ErrEventFinalized):
		respondAppError(w, apperrors.NewConflictError("Voting is closed, the event is finalized"))
	case errors.Is(err, domain.ErrAlreadyFinalized):
		respondAppError(w, apperrors.NewConflictError("Event is already finalized"))
	case errors.Is(err, domain.ErrLedgerReconciliation):
		respondAppError(w, apperrors.NewInternalError("Point distribution incomplete, manual reconciliation required", err))
	case errors.Is(err, domain.ErrTeamNotFound):
		respondAppError(w, apperrors.NewNotFoundError("Team not found"))
	case errors.Is(err, domain.ErrCriterionNotFound):
		respondAppError(w, apperrors.NewNotFoundError("Criterion not found"))
	case errors.Is(err, domain.ErrJuryMemberNotFound):
		respondAppError(w, apperrors.NewNotFoundError("Jury member not found"))
	default:
		respondAppError(w, apperrors.NewInternalError("Internal server error", err))
	}
}
