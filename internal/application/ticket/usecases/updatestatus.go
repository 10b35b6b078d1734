package usecases

import (
	"context"
	"fmt"

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

type UpdateStatusCommand struct {
	TicketID     string
	TechnicianID string
	Status       string
}

type UpdateStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateStatusCommand) (*dto.TicketDTO, error)
}

type UpdateStatusUseCase struct {
	ticketRepo ticket.TicketRepository
	logRepo    ticket.ActivityLogRepository
	userRepo   user.Repository
	txMgr      db.Transactor
	notifier   NotificationSink
	projector  *dto.Projector
	metrics    LifecycleMetrics
	logger     logger.Interface
}

func NewUpdateStatusUseCase(
	ticketRepo ticket.TicketRepository,
	logRepo ticket.ActivityLogRepository,
	userRepo user.Repository,
	txMgr db.Transactor,
	notifier NotificationSink,
	projector *dto.Projector,
	metrics LifecycleMetrics,
	logger logger.Interface,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
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

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket status use case",
		"ticket_id", cmd.TicketID,
		"technician_id", cmd.TechnicianID,
		"status", cmd.Status)

	newStatus, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		uc.logger.Warnw("unknown ticket status requested", "status", cmd.Status)
		uc.metrics.Rejected("update_status", string(errors.ErrorTypeValidation))
		return nil, errors.NewValidationError(msgInvalidStatus, cmd.Status)
	}

	var (
		updated    *ticket.Ticket
		fromStatus vo.TicketStatus
		sent       []*notification.Notification
	)

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := loadTicket(txCtx, uc.ticketRepo, cmd.TicketID, uc.logger)
		if err != nil {
			return err
		}

		fromStatus = t.Status()
		if err := t.ChangeStatus(newStatus, cmd.TechnicianID); err != nil {
			return translateRuleError(err)
		}

		technicianID := cmd.TechnicianID
		swapped, err := uc.ticketRepo.CompareAndSwap(txCtx, t, fromStatus, &technicianID)
		if err != nil {
			return err
		}
		if !swapped {
			return uc.classifyLostRace(txCtx, cmd, newStatus)
		}

		statusLog, err := ticket.NewActivityLog(t.ID(), cmd.TechnicianID, ticket.StatusChangedAction(fromStatus, newStatus))
		if err != nil {
			return err
		}
		if err := uc.logRepo.Append(txCtx, statusLog); err != nil {
			return err
		}

		toTenant, err := uc.notifier.Notify(txCtx, t.TenantID(), fmt.Sprintf("Your ticket status changed to %s", newStatus))
		if err != nil {
			return err
		}
		sent = append(sent, toTenant)

		if newStatus.IsDone() {
			toManagers, err := uc.notifier.NotifyManagers(txCtx, fmt.Sprintf("Ticket #%s marked as DONE.", t.ID()))
			if err != nil {
				return err
			}
			sent = append(sent, toManagers...)
		}

		updated = t
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("update ticket status rejected", "ticket_id", cmd.TicketID, "error", err)
			uc.metrics.Rejected("update_status", rejectionReason(err))
			return nil, err
		}
		return nil, asAppError(err, uc.logger, "failed to update ticket status", "ticket_id", cmd.TicketID)
	}

	uc.notifier.Dispatch(ctx, sent)
	uc.metrics.StatusChanged(fromStatus.String(), newStatus.String())

	uc.logger.Infow("ticket status updated successfully",
		"ticket_id", updated.ID(),
		"from", fromStatus,
		"to", newStatus)

	users := loadUsers(ctx, uc.userRepo, dto.RelatedUserIDs([]*ticket.Ticket{updated}, nil), uc.logger)
	return uc.projector.ProjectTicket(updated, users, authorization.RoleTechnician), nil
}

// classifyLostRace re-reads the ticket after a conditional update matched no
// row and replays the transition against the stored state
func (uc *UpdateStatusUseCase) classifyLostRace(ctx context.Context, cmd UpdateStatusCommand, newStatus vo.TicketStatus) error {
	current, err := loadTicket(ctx, uc.ticketRepo, cmd.TicketID, uc.logger)
	if err != nil {
		return err
	}
	if err := current.ChangeStatus(newStatus, cmd.TechnicianID); err != nil {
		return translateRuleError(err)
	}
	return errors.NewConflictError(msgConcurrentUpdate)
}
