package usecases

import (
	"context"

	"github.com/fixdesk/fixdesk/internal/application/ticket/dto"
	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

type GetMetricsQuery struct {
	UserID   string
	UserRole authorization.UserRole
}

type GetMetricsExecutor interface {
	Execute(ctx context.Context, query GetMetricsQuery) (*dto.MetricsDTO, error)
}

// GetMetricsUseCase computes the dashboard counters of the caller's role
type GetMetricsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetMetricsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GetMetricsUseCase {
	return &GetMetricsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

type namedCount struct {
	target **int64
	filter ticket.TicketFilter
}

func (uc *GetMetricsUseCase) Execute(ctx context.Context, query GetMetricsQuery) (*dto.MetricsDTO, error) {
	result := &dto.MetricsDTO{}
	userID := query.UserID

	var counts []namedCount
	switch query.UserRole {
	case authorization.RoleManager:
		counts = []namedCount{
			{&result.Total, ticket.TicketFilter{}},
			{&result.Open, ticket.TicketFilter{Status: statusPtr(vo.StatusOpen)}},
			{&result.InProgress, ticket.TicketFilter{Status: statusPtr(vo.StatusInProgress)}},
			{&result.Done, ticket.TicketFilter{Status: statusPtr(vo.StatusDone)}},
			{&result.HighPriority, ticket.TicketFilter{Priority: priorityPtr(vo.PriorityHigh)}},
		}
	case authorization.RoleTechnician:
		counts = []namedCount{
			{&result.Assigned, ticket.TicketFilter{AssignedToID: &userID, Status: statusPtr(vo.StatusAssigned)}},
			{&result.InProgress, ticket.TicketFilter{AssignedToID: &userID, Status: statusPtr(vo.StatusInProgress)}},
			{&result.Done, ticket.TicketFilter{AssignedToID: &userID, Status: statusPtr(vo.StatusDone)}},
		}
	case authorization.RoleTenant:
		counts = []namedCount{
			{&result.TotalSubmitted, ticket.TicketFilter{TenantID: &userID}},
			{&result.Pending, ticket.TicketFilter{TenantID: &userID, Statuses: vo.PendingStatuses()}},
		}
	default:
		return nil, errors.NewValidationError("Invalid role")
	}

	for _, c := range counts {
		n, err := uc.ticketRepo.Count(ctx, c.filter)
		if err != nil {
			uc.logger.Errorw("failed to count tickets", "role", query.UserRole, "error", err)
			return nil, errors.NewInternalError("Failed to fetch metrics")
		}
		*c.target = &n
	}

	return result, nil
}

func statusPtr(s vo.TicketStatus) *vo.TicketStatus {
	return &s
}

func priorityPtr(p vo.Priority) *vo.Priority {
	return &p
}
