package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	"github.com/fixdesk/fixdesk/internal/shared/biztime"
)

// MaxImages is the number of images a ticket can be created with
const MaxImages = 5

// Ticket is a reported maintenance issue. assignedToID is set exactly when the
// status is ASSIGNED, IN_PROGRESS or DONE, and is never cleared once set.
type Ticket struct {
	id           string
	title        string
	description  string
	priority     vo.Priority
	status       vo.TicketStatus
	tenantID     string
	assignedToID *string
	images       []*Image
	createdAt    time.Time
	updatedAt    time.Time
}

// NewTicket opens a ticket for tenantID. Title and description are stored HTML-escaped.
func NewTicket(title, description string, priority vo.Priority, tenantID string, imageURLs []string) (*Ticket, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("Title and description are required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if tenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if len(imageURLs) > MaxImages {
		return nil, fmt.Errorf("a ticket can have at most %d images", MaxImages)
	}

	now := biztime.NowUTC()
	t := &Ticket{
		id:          newID(),
		title:       EscapeText(title),
		description: EscapeText(description),
		priority:    priority,
		status:      vo.StatusOpen,
		tenantID:    tenantID,
		createdAt:   now,
		updatedAt:   now,
	}

	for _, url := range imageURLs {
		img, err := NewImage(t.id, url)
		if err != nil {
			return nil, err
		}
		t.images = append(t.images, img)
	}

	return t, nil
}

// ReconstructTicket rebuilds a ticket from persistence
func ReconstructTicket(
	id string,
	title string,
	description string,
	priority vo.Priority,
	status vo.TicketStatus,
	tenantID string,
	assignedToID *string,
	images []*Image,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == "" {
		return nil, fmt.Errorf("ticket ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid ticket status: %s", status)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if status.RequiresAssignee() != (assignedToID != nil) {
		return nil, fmt.Errorf("ticket %s in status %s has inconsistent assignee", id, status)
	}

	return &Ticket{
		id:           id,
		title:        title,
		description:  description,
		priority:     priority,
		status:       status,
		tenantID:     tenantID,
		assignedToID: assignedToID,
		images:       images,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (t *Ticket) ID() string {
	return t.id
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) TenantID() string {
	return t.tenantID
}

func (t *Ticket) AssignedToID() *string {
	if t.assignedToID == nil {
		return nil
	}
	id := *t.assignedToID
	return &id
}

func (t *Ticket) Images() []*Image {
	images := make([]*Image, len(t.images))
	copy(images, t.images)
	return images
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// IsAssignedTo reports whether userID is the current assignee
func (t *Ticket) IsAssignedTo(userID string) bool {
	return t.assignedToID != nil && *t.assignedToID == userID
}

// AssignTo moves an OPEN ticket to ASSIGNED
func (t *Ticket) AssignTo(technicianID string) error {
	if technicianID == "" {
		return fmt.Errorf("technician ID is required")
	}
	if !t.status.IsOpen() {
		return violation(ErrNotOpen, fmt.Sprintf("Cannot assign ticket in %s status. Must be OPEN.", t.status))
	}
	if t.assignedToID != nil {
		return violation(ErrAlreadyAssigned, "Ticket is already assigned.")
	}

	t.assignedToID = &technicianID
	t.status = vo.StatusAssigned
	t.updatedAt = biztime.NowUTC()
	return nil
}

// ChangeStatus advances the ticket one step on behalf of its assignee.
// Only ASSIGNED->IN_PROGRESS and IN_PROGRESS->DONE are accepted.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus, technicianID string) error {
	if t.status.IsOpen() {
		return violation(ErrNotAssigned, "Ticket is OPEN and has no assignee yet.")
	}
	if !t.IsAssignedTo(technicianID) {
		return violation(ErrNotAssignee, "You are not assigned to this ticket")
	}
	if t.status.IsDone() {
		return violation(ErrTicketClosed, "Ticket is already DONE and cannot be updated.")
	}
	if !t.status.CanTransitionTo(newStatus) {
		next, _ := t.status.Next()
		return violation(ErrInvalidTransition,
			fmt.Sprintf("Invalid status transition. From %s, you can only move to %s.", t.status, next))
	}

	t.status = newStatus
	t.updatedAt = biztime.NowUTC()
	return nil
}

// EnsureAcceptsNotes fails once the ticket is DONE
func (t *Ticket) EnsureAcceptsNotes() error {
	if t.status.IsDone() {
		return violation(ErrTicketClosed, "Cannot add notes to a completed ticket")
	}
	return nil
}
