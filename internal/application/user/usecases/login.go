package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/fixdesk/fixdesk/internal/application/user/dto"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

const msgInvalidCredentials = "Invalid credentials"

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User      *dto.UserDTO
	Token     string
	ExpiresAt time.Time
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(userRepo user.Repository, hasher PasswordHasher, tokens TokenIssuer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	uc.logger.Infow("executing login use case", "email", utils.MaskEmail(email))

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			uc.hasher.SpendComparison(cmd.Password)
			uc.logger.Warnw("login with unknown email", "email", utils.MaskEmail(email))
			return nil, errors.NewValidationError(msgInvalidCredentials)
		}
		uc.logger.Errorw("failed to load user for login", "error", err)
		return nil, errors.NewInternalError("Failed to login")
	}

	if !uc.hasher.Matches(u.PasswordHash(), cmd.Password) {
		uc.logger.Warnw("login with wrong password", "user_id", u.ID())
		return nil, errors.NewValidationError(msgInvalidCredentials)
	}

	token, claims, err := uc.tokens.Issue(u.ID(), u.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue session token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to login")
	}

	uc.logger.Infow("user logged in", "user_id", u.ID(), "session_id", claims.SessionID())
	return &LoginResult{
		User:      dto.ToUserSummary(u),
		Token:     token,
		ExpiresAt: claims.ExpiresAtTime(),
	}, nil
}
