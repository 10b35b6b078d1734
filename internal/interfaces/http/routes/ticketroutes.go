package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fixdesk/fixdesk/internal/infrastructure/permission"
	tickethandlers "github.com/fixdesk/fixdesk/internal/interfaces/http/handlers/ticket"
	"github.com/fixdesk/fixdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	perm := config.PermissionMiddleware

	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		tickets.POST("",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionCreate),
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.ListTickets)

		// POST assigns (manager), PATCH moves the lifecycle (technician)
		tickets.POST("/:id/status",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionAssign),
			config.TicketHandler.AssignTicket)
		tickets.POST("/:id/assign",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionAssign),
			config.TicketHandler.AssignTicket)
		tickets.PATCH("/:id/status",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionUpdateStatus),
			config.TicketHandler.UpdateStatus)
		tickets.POST("/:id/notes",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionNote),
			config.TicketHandler.AddNote)

		tickets.GET("/:id",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.GetTicket)
	}

	api.GET("/metrics",
		config.AuthMiddleware.RequireAuth(),
		perm.RequirePermission(permission.ResourceMetrics, permission.ActionRead),
		config.TicketHandler.GetMetrics)
}
