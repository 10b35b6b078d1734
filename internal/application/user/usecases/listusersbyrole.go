package usecases

import (
	"context"

	"github.com/fixdesk/fixdesk/internal/application/user/dto"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

type ListUsersByRoleQuery struct {
	Role string
}

type ListUsersByRoleExecutor interface {
	Execute(ctx context.Context, query ListUsersByRoleQuery) ([]*dto.UserDTO, error)
}

type ListUsersByRoleUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersByRoleUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersByRoleUseCase {
	return &ListUsersByRoleUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersByRoleUseCase) Execute(ctx context.Context, query ListUsersByRoleQuery) ([]*dto.UserDTO, error) {
	role, ok := authorization.ParseUserRole(query.Role)
	if !ok {
		return nil, errors.NewValidationError("Role parameter required")
	}

	users, err := uc.userRepo.ListByRole(ctx, role)
	if err != nil {
		uc.logger.Errorw("failed to list users by role", "role", role, "error", err)
		return nil, errors.NewInternalError("Failed to fetch users")
	}

	return dto.ToUserSummaries(users), nil
}
