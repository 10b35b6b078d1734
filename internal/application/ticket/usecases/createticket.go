package usecases

import (
	"context"
	"fmt"
	"strings"

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

type CreateTicketCommand struct {
	TenantID    string
	Title       string
	Description string
	Priority    string
	ImageURLs   []string
}

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logRepo    ticket.ActivityLogRepository
	userRepo   user.Repository
	txMgr      db.Transactor
	notifier   NotificationSink
	projector  *dto.Projector
	metrics    LifecycleMetrics
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logRepo ticket.ActivityLogRepository,
	userRepo user.Repository,
	txMgr db.Transactor,
	notifier NotificationSink,
	projector *dto.Projector,
	metrics LifecycleMetrics,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
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

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case",
		"tenant_id", cmd.TenantID,
		"priority", cmd.Priority,
		"images", len(cmd.ImageURLs))

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		uc.metrics.Rejected("create", rejectionReason(err))
		return nil, err
	}

	newTicket, err := ticket.NewTicket(cmd.Title, cmd.Description, vo.Priority(cmd.Priority), cmd.TenantID, cmd.ImageURLs)
	if err != nil {
		uc.logger.Warnw("failed to build ticket", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	createdLog, err := ticket.NewActivityLog(newTicket.ID(), cmd.TenantID, ticket.ActionTicketCreated)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var sent []*notification.Notification
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Create(txCtx, newTicket); err != nil {
			return err
		}
		if err := uc.logRepo.Append(txCtx, createdLog); err != nil {
			return err
		}
		sent, err = uc.notifier.NotifyManagers(txCtx, fmt.Sprintf("New ticket created: %s", newTicket.Title()))
		return err
	})
	if err != nil {
		return nil, asAppError(err, uc.logger, "failed to create ticket", "tenant_id", cmd.TenantID)
	}

	uc.notifier.Dispatch(ctx, sent)
	uc.metrics.TicketCreated(newTicket.Priority().String())

	uc.logger.Infow("ticket created successfully",
		"ticket_id", newTicket.ID(),
		"tenant_id", cmd.TenantID)

	users := loadUsers(ctx, uc.userRepo, []string{cmd.TenantID}, uc.logger)
	return uc.projector.ProjectTicket(newTicket, users, authorization.RoleTenant), nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if cmd.TenantID == "" {
		return errors.NewValidationError("tenant ID is required")
	}
	if strings.TrimSpace(cmd.Title) == "" || strings.TrimSpace(cmd.Description) == "" {
		return errors.NewValidationError(msgTitleDescRequired)
	}
	if !vo.Priority(cmd.Priority).IsValid() {
		return errors.NewValidationError(msgInvalidPriority, cmd.Priority)
	}
	if len(cmd.ImageURLs) > ticket.MaxImages {
		return errors.NewValidationError(fmt.Sprintf("A ticket can have at most %d images", ticket.MaxImages))
	}
	return nil
}
