package usecases

import (
	"context"

	"github.com/fixdesk/fixdesk/internal/application/ticket/dto"
	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/db"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

type AddNoteCommand struct {
	TicketID string
	UserID   string
	UserRole authorization.UserRole
	Note     string
}

type AddNoteExecutor interface {
	Execute(ctx context.Context, cmd AddNoteCommand) (*dto.ActivityLogDTO, error)
}

type AddNoteUseCase struct {
	ticketRepo ticket.TicketRepository
	logRepo    ticket.ActivityLogRepository
	userRepo   user.Repository
	txMgr      db.Transactor
	metrics    LifecycleMetrics
	logger     logger.Interface
}

func NewAddNoteUseCase(
	ticketRepo ticket.TicketRepository,
	logRepo ticket.ActivityLogRepository,
	userRepo user.Repository,
	txMgr db.Transactor,
	metrics LifecycleMetrics,
	logger logger.Interface,
) *AddNoteUseCase {
	return &AddNoteUseCase{
		ticketRepo: ticketRepo,
		logRepo:    logRepo,
		userRepo:   userRepo,
		txMgr:      txMgr,
		metrics:    metricsOrNop(metrics),
		logger:     logger,
	}
}

func (uc *AddNoteUseCase) Execute(ctx context.Context, cmd AddNoteCommand) (*dto.ActivityLogDTO, error) {
	uc.logger.Infow("executing add note use case",
		"ticket_id", cmd.TicketID,
		"user_id", cmd.UserID)

	action, ok := ticket.NoteAction(cmd.Note)
	if !ok {
		uc.metrics.Rejected("note", string(errors.ErrorTypeValidation))
		return nil, errors.NewValidationError(msgNoteRequired)
	}

	var noteLog *ticket.ActivityLog
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := loadTicket(txCtx, uc.ticketRepo, cmd.TicketID, uc.logger)
		if err != nil {
			return err
		}
		if err := checkTicketAccess(t, cmd.UserID, cmd.UserRole); err != nil {
			return err
		}
		if err := t.EnsureAcceptsNotes(); err != nil {
			return translateRuleError(err)
		}

		noteLog, err = ticket.NewActivityLog(t.ID(), cmd.UserID, action)
		if err != nil {
			return err
		}
		return uc.logRepo.Append(txCtx, noteLog)
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("add note rejected", "ticket_id", cmd.TicketID, "error", err)
			uc.metrics.Rejected("note", rejectionReason(err))
			return nil, err
		}
		return nil, asAppError(err, uc.logger, "failed to add note", "ticket_id", cmd.TicketID)
	}

	uc.metrics.NoteAdded()
	uc.logger.Infow("note added successfully", "ticket_id", cmd.TicketID, "log_id", noteLog.ID())

	users := loadUsers(ctx, uc.userRepo, []string{cmd.UserID}, uc.logger)
	result := dto.ProjectLog(noteLog, users)
	return &result, nil
}
