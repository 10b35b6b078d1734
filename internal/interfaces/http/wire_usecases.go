package http

import (
	notificationUsecases "github.com/fixdesk/fixdesk/internal/application/notification/usecases"
	ticketUsecases "github.com/fixdesk/fixdesk/internal/application/ticket/usecases"
	uploadUsecases "github.com/fixdesk/fixdesk/internal/application/upload/usecases"
	"github.com/fixdesk/fixdesk/internal/application/user/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// User / Auth
	registerUC        *usecases.RegisterUseCase
	loginUC           *usecases.LoginUseCase
	logoutUC          *usecases.LogoutUseCase
	listUsersByRoleUC *usecases.ListUsersByRoleUseCase

	// Ticket lifecycle
	createTicketUC *ticketUsecases.CreateTicketUseCase
	assignTicketUC *ticketUsecases.AssignTicketUseCase
	updateStatusUC *ticketUsecases.UpdateStatusUseCase
	addNoteUC      *ticketUsecases.AddNoteUseCase
	getTicketUC    *ticketUsecases.GetTicketUseCase
	listTicketsUC  *ticketUsecases.ListTicketsUseCase
	getMetricsUC   *ticketUsecases.GetMetricsUseCase

	// Notification
	listNotificationsUC *notificationUsecases.ListNotificationsUseCase
	markAllReadUC       *notificationUsecases.MarkAllReadUseCase

	// Upload
	uploadImagesUC *uploadUsecases.UploadImagesUseCase
}
