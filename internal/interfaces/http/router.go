package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fixdesk/fixdesk/internal/infrastructure/config"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/middleware"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/routes"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

// maxMultipartMemory bounds the in-memory part of an upload form; larger
// parts spill to temp files.
const maxMultipartMemory = 8 << 20

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	cfg := r.cfg

	r.engine.MaxMultipartMemory = maxMultipartMemory
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.Metrics(r.recorder))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.PathGate(r.authMiddleware, cfg.Gate.LoginPath))

	routes.SetupSystemRoutes(r.engine, &routes.SystemRouteConfig{
		MetricsHandler: r.recorder.Handler(),
		UploadDir:      r.fileStore.Dir(),
		UploadPrefix:   cfg.Upload.PublicPrefix,
	})

	api := r.engine.Group(constants.APIPrefix)

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler: r.hdlrs.authHandler,
		RateLimiter: r.rateLimiter,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        r.hdlrs.ticketHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupNotificationRoutes(api, &routes.NotificationRouteConfig{
		NotificationHandler:  r.hdlrs.notificationHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:          r.hdlrs.userHandler,
		UploadHandler:        r.hdlrs.uploadHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimiter:          r.rateLimiter,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Handler returns the engine as a plain http.Handler
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Shutdown waits for background work such as notification emails and then
// releases redis. Call it after the HTTP server stopped accepting requests.
func (r *Router) Shutdown(ctx context.Context) {
	if err := r.runner.Wait(ctx); err != nil {
		r.log.Warnw("background tasks did not finish before shutdown", "error", err)
	}

	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.log.Errorw("failed to close redis client", "error", err)
		}
	}
}
