package handler

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"

	"hackboard/internal/service"
	"hackboard/pkg/metrics"

	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	scoringService     service.ScoringService
	leaderboardService service.LeaderboardService
	metrics            *metrics.Metrics
}

func NewLeaderboardHandler(scoring service.ScoringService, leaderboard service.LeaderboardService, m *metrics.Metrics) *LeaderboardHandler {
	return &LeaderboardHandler{
		scoringService:     scoring,
		leaderboardService: leaderboard,
		metrics:            m,
	}
}

// GetSummary handles GET /api/v1/events/{eventID}/summary (polling endpoint)
func (h *LeaderboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	summary, err := h.scoringService.GetEventSummary(ctx, eventID)
	if err != nil {
		respondError(w, err)
		return
	}

	// The validator is set before the If-None-Match check so 304 responses
	// carry it too.
	etag := generateETag(summary.Teams)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=10")

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetLeaderboard handles GET /api/v1/events/{eventID}/leaderboard (polling endpoint)
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	h.metrics.LeaderboardPolls.Inc()

	snapshot, err := h.leaderboardService.Snapshot(ctx, eventID)
	if err != nil {
		respondError(w, err)
		return
	}

	// The ETag covers the entries only; GeneratedAt changes every call and
	// would defeat 304s.
	etag := generateETag(snapshot.Entries)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=10")

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// generateETag builds a weak content hash for polling clients
func generateETag(data interface{}) string {
	encoded, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(`"%x"`, md5.Sum(encoded))
}
