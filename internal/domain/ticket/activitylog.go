package ticket

import (
	"fmt"
	"time"

	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	"github.com/fixdesk/fixdesk/internal/shared/biztime"
)

// ActionTicketCreated is the action recorded when a ticket is opened
const ActionTicketCreated = "Ticket created"

// ActivityLog is one append-only audit entry of a ticket
type ActivityLog struct {
	id        string
	ticketID  string
	userID    string
	action    string
	createdAt time.Time
}

func NewActivityLog(ticketID, userID, action string) (*ActivityLog, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}

	return &ActivityLog{
		id:        newID(),
		ticketID:  ticketID,
		userID:    userID,
		action:    action,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructActivityLog(id, ticketID, userID, action string, createdAt time.Time) *ActivityLog {
	return &ActivityLog{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		action:    action,
		createdAt: createdAt,
	}
}

func (l *ActivityLog) ID() string {
	return l.id
}

func (l *ActivityLog) TicketID() string {
	return l.ticketID
}

func (l *ActivityLog) UserID() string {
	return l.userID
}

func (l *ActivityLog) Action() string {
	return l.action
}

func (l *ActivityLog) CreatedAt() time.Time {
	return l.createdAt
}

func AssignedAction(technicianName string) string {
	return fmt.Sprintf("Ticket assigned to %s", technicianName)
}

func StatusChangedAction(from, to vo.TicketStatus) string {
	return fmt.Sprintf("Status changed from %s to %s", from, to)
}

// NoteAction escapes note and formats the log action. ok is false for a blank note.
func NoteAction(note string) (action string, ok bool) {
	escaped := EscapeText(note)
	if escaped == "" {
		return "", false
	}
	return fmt.Sprintf("Note added: %s", escaped), true
}
