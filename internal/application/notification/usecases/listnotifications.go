package usecases

import (
	"context"

	"github.com/fixdesk/fixdesk/internal/application/notification/dto"
	"github.com/fixdesk/fixdesk/internal/domain/notification"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

// DefaultListLimit is how many notifications the bell shows
const DefaultListLimit = 10

type ListNotificationsQuery struct {
	UserID string
}

type ListNotificationsExecutor interface {
	Execute(ctx context.Context, query ListNotificationsQuery) (*dto.NotificationListDTO, error)
}

type ListNotificationsUseCase struct {
	repo   notification.NotificationRepository
	limit  int
	logger logger.Interface
}

func NewListNotificationsUseCase(
	repo notification.NotificationRepository,
	limit int,
	logger logger.Interface,
) *ListNotificationsUseCase {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return &ListNotificationsUseCase{
		repo:   repo,
		limit:  limit,
		logger: logger,
	}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, query ListNotificationsQuery) (*dto.NotificationListDTO, error) {
	if query.UserID == "" {
		return nil, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}

	items, err := uc.repo.ListRecentByUserID(ctx, query.UserID, uc.limit)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", query.UserID, "error", err)
		return nil, errors.NewInternalError("Failed to fetch notifications")
	}

	unread, err := uc.repo.CountUnread(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", query.UserID, "error", err)
		return nil, errors.NewInternalError("Failed to fetch notifications")
	}

	return &dto.NotificationListDTO{
		Notifications: dto.ToNotificationDTOs(items),
		UnreadCount:   unread,
	}, nil
}
