package handler

import (
	"encoding/json"
	"net/http"

	"hackboard/internal/domain"
	"hackboard/internal/middleware"
	"hackboard/internal/service"
	apperrors "hackboard/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type JuryHandler struct {
	juryService service.JuryService
	validate    *validator.Validate
}

func NewJuryHandler(juryService service.JuryService) *JuryHandler {
	return &JuryHandler{
		juryService: juryService,
		validate:    validator.New(),
	}
}

// AddMember handles POST /api/v1/events/{eventID}/jury (operator only)
func (h *JuryHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	var req domain.JuryMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Missing or invalid jury member fields", nil))
		return
	}

	addedBy := ""
	if claims := middleware.ClaimsFromContext(ctx); claims != nil {
		addedBy = claims.Sub
	}

	member, err := h.juryService.AddMember(ctx, eventID, addedBy, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, member)
}

// ListMembers handles GET /api/v1/events/{eventID}/jury
func (h *JuryHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	members, err := h.juryService.ListMembers(ctx, eventID)
	if err != nil {
		respondError(w, err)
		return
	}

	if members == nil {
		members = []domain.JuryMember{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"event_id": eventID,
		"jury":     members,
	})
}

// RemoveMember handles DELETE /api/v1/jury/{juryID} (operator only)
func (h *JuryHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	juryID := chi.URLParam(r, "juryID")

	if juryID == "" {
		respondAppError(w, apperrors.NewValidationError("Jury member ID is required", nil))
		return
	}

	if err := h.juryService.RemoveMember(ctx, juryID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"removed": true,
		"jury_id": juryID,
	})
}
