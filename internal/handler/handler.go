package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"releaseradar/backend/internal/service"
	"releaseradar/backend/internal/store"
)

// ErrorResponse defines the structure of error payloads.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler bundles the HTTP endpoints over the application services.
type Handler struct {
	store     store.Store
	games     *service.GameService
	analytics *service.AnalyticsService
	sync      *service.SyncService
}

// New creates a Handler.
func New(st store.Store, games *service.GameService, analytics *service.AnalyticsService, sync *service.SyncService) *Handler {
	return &Handler{store: st, games: games, analytics: analytics, sync: sync}
}

// respondError maps service errors onto HTTP statuses. Callers always get a
// distinguishable outcome for "no data" versus "could not determine".
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidMonth):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSourceUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, service.ErrSinkUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// splitCommaSeparated flattens repeated query values and comma-separated
// lists into one slice.
func splitCommaSeparated(values []string) []string {
	var result []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}
