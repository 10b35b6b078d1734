package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/infrastructure/permission"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/handlers"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler  *handlers.NotificationHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupNotificationRoutes(api *gin.RouterGroup, config *NotificationRouteConfig) {
	notifications := api.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		notifications.GET("",
			config.PermissionMiddleware.RequirePermission(permission.ResourceNotification, permission.ActionRead),
			config.NotificationHandler.ListNotifications)
		notifications.PATCH("",
			config.PermissionMiddleware.RequirePermission(permission.ResourceNotification, permission.ActionUpdate),
			config.NotificationHandler.MarkAllRead)
	}
}
