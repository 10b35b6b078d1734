package http

import (
	"gorm.io/gorm"

	"github.com/fixdesk/fixdesk/internal/domain/notification"
	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/infrastructure/repository"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo         user.Repository
	ticketRepo       ticket.TicketRepository
	activityLogRepo  ticket.ActivityLogRepository
	notificationRepo notification.NotificationRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db, log),
		ticketRepo:       repository.NewTicketRepository(db),
		activityLogRepo:  repository.NewActivityLogRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
}
