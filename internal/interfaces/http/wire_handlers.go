package http

import (
	"github.com/fixdesk/fixdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/fixdesk/fixdesk/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	uploadHandler       *handlers.UploadHandler
	ticketHandler       *ticketHandlers.TicketHandler
	notificationHandler *handlers.NotificationHandler
}
