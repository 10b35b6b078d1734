package usecases

import (
	"context"

	"github.com/fixdesk/fixdesk/internal/application/ticket/dto"
	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

type ListTicketsQuery struct {
	UserID   string
	UserRole authorization.UserRole
	Status   string
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) ([]*dto.TicketDTO, error)
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	projector  *dto.Projector
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	projector *dto.Projector,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		projector:  projector,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]*dto.TicketDTO, error) {
	filter, ok := scopeForViewer(query.UserID, query.UserRole)
	if !ok {
		// unknown roles see nothing
		uc.logger.Warnw("ticket list requested by unknown role", "user_id", query.UserID, "role", query.UserRole)
		return []*dto.TicketDTO{}, nil
	}

	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(msgInvalidStatus, query.Status)
		}
		filter.Status = &status
	}

	tickets, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "user_id", query.UserID, "error", err)
		return nil, errors.NewInternalError(msgTicketsFetchFailed)
	}

	users := loadUsers(ctx, uc.userRepo, dto.RelatedUserIDs(tickets, nil), uc.logger)
	return uc.projector.ProjectTickets(tickets, users, query.UserRole), nil
}

// scopeForViewer restricts a ticket query to what role may see. ok is false
// for roles that may see nothing.
func scopeForViewer(userID string, role authorization.UserRole) (ticket.TicketFilter, bool) {
	switch role {
	case authorization.RoleManager:
		return ticket.TicketFilter{}, true
	case authorization.RoleTenant:
		return ticket.TicketFilter{TenantID: &userID}, true
	case authorization.RoleTechnician:
		return ticket.TicketFilter{AssignedToID: &userID}, true
	default:
		return ticket.TicketFilter{}, false
	}
}
