package usecases

import (
	"context"

	"github.com/fixdesk/fixdesk/internal/domain/notification"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

type MarkAllReadCommand struct {
	UserID string
}

type MarkAllReadResult struct {
	Updated int64
}

type MarkAllReadExecutor interface {
	Execute(ctx context.Context, cmd MarkAllReadCommand) (*MarkAllReadResult, error)
}

type MarkAllReadUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewMarkAllReadUseCase(repo notification.NotificationRepository, logger logger.Interface) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *MarkAllReadUseCase) Execute(ctx context.Context, cmd MarkAllReadCommand) (*MarkAllReadResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}

	updated, err := uc.repo.MarkAllRead(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to mark notifications as read", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("Failed to update notifications")
	}

	uc.logger.Debugw("notifications marked as read", "user_id", cmd.UserID, "count", updated)
	return &MarkAllReadResult{Updated: updated}, nil
}
