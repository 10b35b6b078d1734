package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/interfaces/http/handlers"
)

type SystemRouteConfig struct {
	MetricsHandler http.Handler
	UploadDir      string
	UploadPrefix   string
}

// SetupSystemRoutes registers health, Prometheus scraping and static uploads.
func SetupSystemRoutes(engine *gin.Engine, config *SystemRouteConfig) {
	engine.GET("/health", handlers.Health)

	if config.MetricsHandler != nil {
		engine.GET("/internal/metrics", gin.WrapH(config.MetricsHandler))
	}

	if config.UploadDir != "" {
		prefix := config.UploadPrefix
		if prefix == "" {
			prefix = "/uploads"
		}
		engine.Static(prefix, config.UploadDir)
	}
}
