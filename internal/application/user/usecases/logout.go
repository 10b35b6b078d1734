package usecases

import (
	"context"
	"time"

	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

type LogoutCommand struct {
	UserID    string
	SessionID string
	ExpiresAt time.Time
}

type LogoutExecutor interface {
	Execute(ctx context.Context, cmd LogoutCommand) error
}

type LogoutUseCase struct {
	revoker SessionRevoker
	logger  logger.Interface
}

// NewLogoutUseCase accepts a nil revoker. Logout then only clears the cookie
// and the token stays valid until it expires.
func NewLogoutUseCase(revoker SessionRevoker, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		revoker: revoker,
		logger:  logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if uc.revoker == nil || cmd.SessionID == "" {
		uc.logger.Debugw("logout without revocation", "user_id", cmd.UserID)
		return nil
	}

	if err := uc.revoker.Revoke(ctx, cmd.SessionID, cmd.UserID, cmd.ExpiresAt); err != nil {
		uc.logger.Errorw("failed to revoke session", "error", err, "session_id", cmd.SessionID)
		return errors.NewInternalError("Failed to logout")
	}

	uc.logger.Infow("user logged out successfully", "user_id", cmd.UserID, "session_id", cmd.SessionID)
	return nil
}
