package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hackboard/internal/domain"
	"hackboard/internal/middleware"
	"hackboard/internal/service"
	apperrors "hackboard/pkg/errors"
	"hackboard/pkg/logger"
	"hackboard/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type FinalizeHandler struct {
	finalizeService service.FinalizeService
	metrics         *metrics.Metrics
	validate        *validator.Validate
	logger          *logger.Logger
}

func NewFinalizeHandler(finalize service.FinalizeService, m *metrics.Metrics, log *logger.Logger) *FinalizeHandler {
	return &FinalizeHandler{
		finalizeService: finalize,
		metrics:         m,
		validate:        validator.New(),
		logger:          log,
	}
}

// Finalize handles POST /api/v1/events/{eventID}/finalize (operator only)
func (h *FinalizeHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	var req domain.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("A finalization label is required", nil))
		return
	}

	claims := middleware.ClaimsFromContext(ctx)
	operator := ""
	if claims != nil {
		operator = claims.Sub
	}

	record, err := h.finalizeService.Finalize(ctx, eventID, req.Label)
	if err != nil {
		h.metrics.FinalizeAttempts.WithLabelValues(finalizeOutcome(err)).Inc()
		if errors.Is(err, domain.ErrLedgerReconciliation) {
			h.logger.WithError(err).WithField("event_id", eventID).Error("Finalization needs reconciliation")
		}
		respondError(w, err)
		return
	}

	h.metrics.FinalizeAttempts.WithLabelValues(metrics.OutcomeOK).Inc()
	h.logger.WithFields(map[string]interface{}{
		"event_id": eventID,
		"operator": operator,
	}).Info("Event finalized by operator")

	respondJSON(w, http.StatusCreated, record)
}

// GetFinalized handles GET /api/v1/events/{eventID}/finalized
func (h *FinalizeHandler) GetFinalized(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	record, err := h.finalizeService.GetRecord(ctx, eventID)
	if err != nil {
		respondError(w, err)
		return
	}

	response := map[string]interface{}{
		"event_id":  eventID,
		"finalized": record != nil,
	}
	if record != nil {
		response["record"] = record
	}

	respondJSON(w, http.StatusOK, response)
}

// finalizeOutcome maps a finalize error to a metrics label
func finalizeOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyFinalized):
		return metrics.OutcomeAlreadyFinalized
	case errors.Is(err, domain.ErrLedgerReconciliation):
		return metrics.OutcomeReconciliation
	default:
		return metrics.OutcomeError
	}
}
