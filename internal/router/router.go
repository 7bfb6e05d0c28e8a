package router

import (
	"github.com/gin-gonic/gin"

	"formpilot/internal/config"
	"formpilot/internal/handler"
	"formpilot/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	extractH *handler.ExtractHandler,
	populateH *handler.PopulateHandler,
	recordH *handler.RecordHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.POST("/extract", extractH.Extract)
	v1.POST("/populate", populateH.Populate)

	records := v1.Group("/records")
	records.GET("/:token", recordH.GetByToken)
	records.DELETE("/:token", recordH.Delete)
	records.GET("/:token/export", recordH.Export)

	return r
}
