package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports backing store reachability. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers exposes liveness and readiness probes
type HealthHandlers struct {
	db    Pinger // nil when running on the in-memory store
	store string
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db Pinger, store string) *HealthHandlers {
	return &HealthHandlers{db: db, store: store}
}

// Health reports process liveness
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"store":  h.store,
	})
}

// Ready reports whether the backing store is reachable
func (h *HealthHandlers) Ready(c echo.Context) error {
	if h.db != nil {
		if err := h.db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  "database unreachable",
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
