package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hackboard/internal/domain"
	"hackboard/internal/middleware"
	"hackboard/internal/service"
	apperrors "hackboard/pkg/errors"
	"hackboard/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type VotingHandler struct {
	votingService service.VotingService
	metrics       *metrics.Metrics
	validate      *validator.Validate
}

func NewVotingHandler(votingService service.VotingService, m *metrics.Metrics) *VotingHandler {
	return &VotingHandler{
		votingService: votingService,
		metrics:       m,
		validate:      validator.New(),
	}
}

// SubmitVote handles POST /api/v1/events/{eventID}/votes
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	voter := h.voterFromRequest(r)
	if voter == nil {
		respondAppError(w, apperrors.NewAuthorizationError("Only students and jury members can vote"))
		return
	}

	var req domain.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Invalid request body", nil))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		respondAppError(w, apperrors.NewValidationError("Missing or invalid vote fields", nil))
		return
	}

	response, err := h.votingService.SubmitVote(ctx, eventID, voter, &req)
	if err != nil {
		h.metrics.VotesSubmitted.WithLabelValues(voteOutcome(err)).Inc()
		respondError(w, err)
		return
	}

	h.metrics.VotesSubmitted.WithLabelValues(metrics.OutcomeOK).Inc()
	respondJSON(w, http.StatusCreated, response)
}

// GetMyVotes handles GET /api/v1/events/{eventID}/votes/me
func (h *VotingHandler) GetMyVotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	voter := h.voterFromRequest(r)
	if voter == nil {
		respondAppError(w, apperrors.NewAuthorizationError("Only students and jury members have votes"))
		return
	}

	votes, err := h.votingService.GetVoterVotes(ctx, eventID, voter.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	if votes == nil {
		votes = []domain.Vote{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"event_id": eventID,
		"votes":    votes,
	})
}

// GetMyStatus handles GET /api/v1/events/{eventID}/votes/me/status
func (h *VotingHandler) GetMyStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	voter := h.voterFromRequest(r)
	if voter == nil {
		respondAppError(w, apperrors.NewAuthorizationError("Only students and jury members have a vote status"))
		return
	}

	status, err := h.votingService.GetVoteStatus(ctx, eventID, voter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// ListCriteria handles GET /api/v1/events/{eventID}/criteria
func (h *VotingHandler) ListCriteria(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	criteria, err := h.votingService.ListCriteria(ctx, eventID)
	if err != nil {
		respondError(w, err)
		return
	}

	if criteria == nil {
		criteria = []domain.Criterion{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"event_id": eventID,
		"criteria": criteria,
	})
}

// voterFromRequest maps the authenticated claims to a voter identity,
// nil for roles that do not vote.
func (h *VotingHandler) voterFromRequest(r *http.Request) *domain.Voter {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		return nil
	}
	return claims.Voter()
}

// voteOutcome maps a submission error to a metrics label
func voteOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidScore):
		return metrics.OutcomeInvalidScore
	case errors.Is(err, domain.ErrSelfVoteForbidden):
		return metrics.OutcomeSelfVote
	case errors.Is(err, domain.ErrTeamLocked):
		return metrics.OutcomeTeamLocked
	case errors.Is(err, domain.ErrEventFinalized):
		return metrics.OutcomeFinalized
	default:
		return metrics.OutcomeError
	}
}
