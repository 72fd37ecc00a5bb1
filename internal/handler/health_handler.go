package handler

import (
	"net/http"
	"time"

	"hackboard/internal/service"
	"hackboard/pkg/database"
)

type HealthHandler struct {
	db    *database.PostgresDB
	cache *service.CacheService
}

func NewHealthHandler(db *database.PostgresDB, cache *service.CacheService) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := http.StatusOK
	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}

	if err := h.db.Health(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if err := h.cache.HealthCheck(ctx); err != nil {
		// Cache trouble degrades performance, not correctness.
		checks["cache"] = err.Error()
	}

	respondJSON(w, status, map[string]interface{}{
		"status":    http.StatusText(status),
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
