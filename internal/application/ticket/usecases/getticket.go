package usecases

import (
	"context"

	"github.com/fixdesk/fixdesk/internal/application/ticket/dto"
	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID string
	UserID   string
	UserRole authorization.UserRole
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logRepo    ticket.ActivityLogRepository
	userRepo   user.Repository
	projector  *dto.Projector
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logRepo ticket.ActivityLogRepository,
	userRepo user.Repository,
	projector *dto.Projector,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logRepo:    logRepo,
		userRepo:   userRepo,
		projector:  projector,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, query.TicketID, uc.logger)
	if err != nil {
		return nil, err
	}

	if err := checkTicketAccess(t, query.UserID, query.UserRole); err != nil {
		uc.logger.Warnw("ticket access denied",
			"ticket_id", query.TicketID,
			"user_id", query.UserID,
			"role", query.UserRole)
		return nil, err
	}

	logs, err := uc.logRepo.ListByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list activity logs", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError(msgTicketFetchFailed)
	}

	users := loadUsers(ctx, uc.userRepo, dto.RelatedUserIDs([]*ticket.Ticket{t}, logs), uc.logger)

	result := uc.projector.ProjectTicket(t, users, query.UserRole)
	result.ActivityLogs = make([]dto.ActivityLogDTO, 0, len(logs))
	for _, l := range logs {
		result.ActivityLogs = append(result.ActivityLogs, dto.ProjectLog(l, users))
	}
	return result, nil
}

// checkTicketAccess applies the per-ticket access rule and names the reason on denial
func checkTicketAccess(t *ticket.Ticket, userID string, role authorization.UserRole) error {
	if authorization.CanAccessTicket(t.TenantID(), t.AssignedToID(), userID, role) {
		return nil
	}
	switch role {
	case authorization.RoleTenant:
		return errors.NewForbiddenError(msgForbiddenTenant)
	case authorization.RoleTechnician:
		return errors.NewForbiddenError(msgForbiddenAssignee)
	default:
		return errors.NewForbiddenError("Forbidden")
	}
}
