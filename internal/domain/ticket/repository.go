package ticket

import (
	"context"

	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
)

// TicketFilter narrows List and Count. Nil fields do not filter.
type TicketFilter struct {
	TenantID     *string
	AssignedToID *string
	Status       *vo.TicketStatus
	Statuses     []vo.TicketStatus
	Priority     *vo.Priority
}

type TicketRepository interface {
	// Create persists a ticket together with its images
	Create(ctx context.Context, ticket *Ticket) error

	// GetByID returns ErrTicketNotFound when the ticket does not exist
	GetByID(ctx context.Context, id string) (*Ticket, error)

	// List returns matching tickets with images, newest first
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, error)

	Count(ctx context.Context, filter TicketFilter) (int64, error)

	// CompareAndSwap writes the ticket's status and assignee only if the stored
	// row still has expectedStatus and expectedAssignee (nil meaning unassigned).
	// It reports false when a concurrent write changed the row first.
	CompareAndSwap(ctx context.Context, ticket *Ticket, expectedStatus vo.TicketStatus, expectedAssignee *string) (bool, error)

	// DeleteAll removes every ticket with its images and logs
	DeleteAll(ctx context.Context) error
}

type ActivityLogRepository interface {
	Append(ctx context.Context, log *ActivityLog) error

	// ListByTicketID returns the ticket's log, newest first
	ListByTicketID(ctx context.Context, ticketID string) ([]*ActivityLog, error)
}
