package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/infrastructure/permission"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/handlers"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	UploadHandler        *handlers.UploadHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimiter          *middleware.RateLimiter
}

// SetupUserRoutes configures the user directory and the image upload endpoint.
func SetupUserRoutes(api *gin.RouterGroup, config *UserRouteConfig) {
	api.GET("/users",
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequirePermission(permission.ResourceUser, permission.ActionList),
		config.UserHandler.ListUsers)

	api.POST("/upload",
		config.AuthMiddleware.RequireAuth(),
		config.PermissionMiddleware.RequirePermission(permission.ResourceUpload, permission.ActionCreate),
		config.RateLimiter.Limit("upload"),
		config.UploadHandler.UploadImages)
}
