package usecases

import (
	"context"
	stderrors "errors"

	"github.com/fixdesk/fixdesk/internal/application/user/dto"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	vo "github.com/fixdesk/fixdesk/internal/domain/user/value_objects"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
	"github.com/fixdesk/fixdesk/internal/shared/utils"
)

const (
	minPasswordLength = 6

	msgEmailExists     = "Email already exists"
	msgInvalidEmail    = "Invalid email address"
	msgInvalidRole     = "Invalid role"
	msgPasswordTooWeak = "Password must be at least 6 characters long"
)

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	// Role is optional and defaults to TENANT
	Role string
}

type RegisterExecutor interface {
	Execute(ctx context.Context, cmd RegisterCommand) (*dto.UserDTO, error)
}

type RegisterUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewRegisterUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing register use case", "email", utils.MaskEmail(cmd.Email), "role", cmd.Role)

	name, err := vo.NewName(cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(msgInvalidEmail)
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, errors.NewValidationError(msgPasswordTooWeak)
	}

	role := authorization.RoleTenant
	if cmd.Role != "" {
		parsed, ok := authorization.ParseUserRole(cmd.Role)
		if !ok {
			return nil, errors.NewValidationError(msgInvalidRole)
		}
		role = parsed
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email", "error", err)
		return nil, errors.NewInternalError("Failed to register user")
	}
	if exists {
		uc.logger.Warnw("registration with existing email", "email", utils.MaskEmail(email.String()))
		return nil, errors.NewValidationError(msgEmailExists)
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("Failed to register user")
	}

	u, err := user.NewUser(name, email, hash, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		// a concurrent registration may win between the check and the insert
		if stderrors.Is(err, user.ErrEmailTaken) {
			return nil, errors.NewValidationError(msgEmailExists)
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, errors.NewInternalError("Failed to register user")
	}

	uc.logger.Infow("user registered", "user_id", u.ID(), "role", role)
	return dto.ToUserDTO(u), nil
}
