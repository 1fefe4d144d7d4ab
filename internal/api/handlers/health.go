package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DefaultReadyTimeout bounds the database ping behind /readyz.
const DefaultReadyTimeout = 2 * time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides liveness and readiness endpoints.
type HealthHandler struct {
	db      Pinger
	version string
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. version is echoed by Healthz.
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version, timeout: DefaultReadyTimeout}
}

// Healthz returns 200 while the process is serving.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok", Version: h.version})
}

// Readyz returns 200 if the database answers a ping within the timeout and
// 503 with the failure otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{
			Status: "unavailable",
			Error:  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
