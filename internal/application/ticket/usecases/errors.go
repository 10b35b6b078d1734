package usecases

import (
	"context"
	stderrors "errors"

	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/shared/constants"
	"github.com/fixdesk/fixdesk/internal/shared/errors"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

const (
	msgConcurrentUpdate   = "Ticket was modified by another request. Please reload and try again."
	msgInvalidTechnician  = "Invalid technician ID or user is not a technician."
	msgForbiddenTenant    = "Forbidden. Not your ticket."
	msgForbiddenAssignee  = "Forbidden. Not assigned to you."
	msgTitleDescRequired  = "Title and description are required"
	msgInvalidPriority    = "Invalid priority"
	msgInvalidStatus      = "Invalid status"
	msgNoteRequired       = "Note is required"
	msgTicketSaveFailed   = "Failed to save ticket"
	msgTicketFetchFailed  = "Failed to fetch ticket details"
	msgTicketsFetchFailed = "Failed to fetch tickets"
)

// translateRuleError maps a lifecycle rule violation to the AppError kind the
// caller sees. Anything that is not a rule violation is returned unchanged.
func translateRuleError(err error) error {
	var violation *ticket.RuleViolation
	if !stderrors.As(err, &violation) {
		return err
	}

	switch {
	case stderrors.Is(err, ticket.ErrNotAssignee):
		return errors.NewForbiddenError(violation.Message)
	case stderrors.Is(err, ticket.ErrAlreadyAssigned):
		return errors.NewConflictError(violation.Message)
	default:
		return errors.NewInvalidStateError(violation.Message)
	}
}

// rejectionReason labels a rejected operation for metrics
func rejectionReason(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil {
		return string(appErr.Type)
	}
	return string(errors.ErrorTypeInternal)
}

// loadTicket reads a ticket and converts a miss into the NotFound AppError
func loadTicket(ctx context.Context, repo ticket.TicketRepository, id string, log logger.Interface) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil, errors.NewNotFoundError(constants.ErrMsgTicketNotFound)
		}
		log.Errorw("failed to get ticket", "ticket_id", id, "error", err)
		return nil, errors.NewInternalError(msgTicketFetchFailed)
	}
	return t, nil
}

// loadUsers resolves ids for projections. A lookup failure only drops the
// related users from the response.
func loadUsers(ctx context.Context, repo user.Repository, ids []string, log logger.Interface) map[string]*user.User {
	if len(ids) == 0 {
		return map[string]*user.User{}
	}
	users, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		log.Warnw("failed to load related users", "error", err)
		return map[string]*user.User{}
	}
	return users
}

// asAppError keeps AppErrors and hides everything else behind an internal error
func asAppError(err error, log logger.Interface, message string, keysAndValues ...interface{}) error {
	if errors.IsAppError(err) {
		return err
	}
	log.Errorw(message, append(keysAndValues, "error", err)...)
	return errors.NewInternalError(msgTicketSaveFailed)
}
