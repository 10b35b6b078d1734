package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fixdesk/fixdesk/internal/application/ticket/dto"
	"github.com/fixdesk/fixdesk/internal/domain/notification"
	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/db"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID     string
	TechnicianID string
	ManagerID    string
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error)
}

type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logRepo    ticket.ActivityLogRepository
	userRepo   user.Repository
	txMgr      db.Transactor
	notifier   NotificationSink
	projector  *dto.Projector
	metrics    LifecycleMetrics
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logRepo ticket.ActivityLogRepository,
	userRepo user.Repository,
	txMgr db.Transactor,
	notifier NotificationSink,
	projector *dto.Projector,
	metrics LifecycleMetrics,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo: ticketRepo,
		logRepo:    logRepo,
		userRepo:   userRepo,
		txMgr:      txMgr,
		notifier:   notifier,
		projector:  projector,
		metrics:    metricsOrNop(metrics),
		logger:     logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing assign ticket use case",
		"ticket_id", cmd.TicketID,
		"technician_id", cmd.TechnicianID,
		"manager_id", cmd.ManagerID)

	// A malformed id can never name a technician
	if _, err := uuid.Parse(cmd.TechnicianID); err != nil {
		uc.logger.Warnw("malformed technician id", "technician_id", cmd.TechnicianID)
		uc.metrics.Rejected("assign", string(errors.ErrorTypeValidation))
		return nil, errors.NewValidationError(msgInvalidTechnician)
	}

	var (
		assigned   *ticket.Ticket
		technician *user.User
		sent       []*notification.Notification
	)

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := loadTicket(txCtx, uc.ticketRepo, cmd.TicketID, uc.logger)
		if err != nil {
			return err
		}

		if err := t.AssignTo(cmd.TechnicianID); err != nil {
			return translateRuleError(err)
		}

		technician, err = uc.lookupTechnician(txCtx, cmd.TechnicianID)
		if err != nil {
			return err
		}

		swapped, err := uc.ticketRepo.CompareAndSwap(txCtx, t, vo.StatusOpen, nil)
		if err != nil {
			return err
		}
		if !swapped {
			return uc.classifyLostRace(txCtx, cmd)
		}

		assignedLog, err := ticket.NewActivityLog(t.ID(), cmd.ManagerID, ticket.AssignedAction(technician.Name()))
		if err != nil {
			return err
		}
		if err := uc.logRepo.Append(txCtx, assignedLog); err != nil {
			return err
		}

		toTechnician, err := uc.notifier.Notify(txCtx, technician.ID(), fmt.Sprintf("You have been assigned to Ticket #%s", t.ID()))
		if err != nil {
			return err
		}
		toTenant, err := uc.notifier.Notify(txCtx, t.TenantID(), "A technician has been assigned to your ticket.")
		if err != nil {
			return err
		}

		sent = []*notification.Notification{toTechnician, toTenant}
		assigned = t
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("assign ticket rejected", "ticket_id", cmd.TicketID, "error", err)
			uc.metrics.Rejected("assign", rejectionReason(err))
			return nil, err
		}
		return nil, asAppError(err, uc.logger, "failed to assign ticket", "ticket_id", cmd.TicketID)
	}

	uc.notifier.Dispatch(ctx, sent)
	uc.metrics.TicketAssigned()

	uc.logger.Infow("ticket assigned successfully",
		"ticket_id", assigned.ID(),
		"technician_id", technician.ID())

	users := loadUsers(ctx, uc.userRepo, dto.RelatedUserIDs([]*ticket.Ticket{assigned}, nil), uc.logger)
	return uc.projector.ProjectTicket(assigned, users, authorization.RoleManager), nil
}

func (uc *AssignTicketUseCase) lookupTechnician(ctx context.Context, id string) (*user.User, error) {
	technician, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.NewValidationError(msgInvalidTechnician)
		}
		return nil, err
	}
	if !technician.IsTechnician() {
		return nil, errors.NewValidationError(msgInvalidTechnician)
	}
	return technician, nil
}

// classifyLostRace re-reads a ticket whose conditional update matched no row.
// A ticket that already left OPEN reports the rule it now breaks, otherwise
// the write lost to a concurrent one.
func (uc *AssignTicketUseCase) classifyLostRace(ctx context.Context, cmd AssignTicketCommand) error {
	current, err := loadTicket(ctx, uc.ticketRepo, cmd.TicketID, uc.logger)
	if err != nil {
		return err
	}
	if err := current.AssignTo(cmd.TechnicianID); err != nil {
		return translateRuleError(err)
	}
	return errors.NewConflictError(msgConcurrentUpdate)
}
