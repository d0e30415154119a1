package router

import (
	"github.com/gin-gonic/gin"

	"medgen/internal/config"
	"medgen/internal/handler"
	"medgen/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	jwtCfg config.JWTConfig,
	reportH *handler.ReportHandler,
	documentH *handler.DocumentHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Auth(jwtCfg))

	v1.POST("/reports", reportH.Generate)
	v1.GET("/reports/:patient_id/audit", reportH.Audit)
	v1.GET("/reports/:patient_id/archived/:timestamp", reportH.GetArchived)
	v1.POST("/documents/analyze", documentH.Analyze)

	return r
}
