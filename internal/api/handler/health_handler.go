package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// HealthHandler handles GET /health, the liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness handles GET /health.
//
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Check probes one dependency.
type Check func(ctx context.Context) error

// CatalogReadiness reports whether a catalog snapshot is loaded.
type CatalogReadiness interface {
	Ready() bool
}

// ReadinessHandler handles GET /health/ready.
// The catalog must be loaded and every configured dependency must answer.
type ReadinessHandler struct {
	catalog CatalogReadiness
	checks  map[string]Check
}

// NewReadinessHandler builds the probe. checks may be empty; nil entries are
// skipped.
func NewReadinessHandler(catalog CatalogReadiness, checks map[string]Check) *ReadinessHandler {
	return &ReadinessHandler{catalog: catalog, checks: checks}
}

// Readiness handles GET /health/ready.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  readinessResponse
// @Failure  503  {object}  readinessResponse
// @Router   /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks)+1)
	healthy := true

	if h.catalog.Ready() {
		deps["catalog"] = dependencyStatus{Status: "ok"}
	} else {
		deps["catalog"] = dependencyStatus{Status: "unhealthy", Error: "catalog not loaded"}
		healthy = false
	}

	for name, check := range h.checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps[name] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
