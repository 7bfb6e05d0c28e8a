package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formpilot/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The pipeline has no boot-time dependencies
// to probe (records live in process memory, browser sessions are created per
// run), so readiness reports the configured backends instead.
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"extractor": h.cfg.Extractor.PrimaryConfig().Provider,
		"mapper":    h.cfg.Mapper.PrimaryConfig().Provider,
		"browser":   h.cfg.Browser.Provider,
		"artifacts": h.cfg.Artifacts.Backend,
		"email":     h.cfg.Email.Provider,
	})
}
