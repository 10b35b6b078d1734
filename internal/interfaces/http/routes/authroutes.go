package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/interfaces/http/handlers"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler *handlers.AuthHandler
	RateLimiter *middleware.RateLimiter // nil when rate limiting is disabled
}

// SetupAuthRoutes configures authentication routes. All of them are public;
// logout resolves the session on its own.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.RateLimiter.Limit("register"), cfg.AuthHandler.Register)
		auth.POST("/login", cfg.RateLimiter.Limit("login"), cfg.AuthHandler.Login)
		auth.POST("/logout", cfg.AuthHandler.Logout)
	}
}
