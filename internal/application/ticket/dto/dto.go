// Package dto holds the ticket read models. ProjectTicket is the only way a
// Ticket leaves the application layer, so role-based field hiding lives here.
package dto

import (
	"time"

	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
)

type UserSummaryDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type TicketImageDTO struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
}

type ActivityLogDTO struct {
	ID        string          `json:"id"`
	TicketID  string          `json:"ticketId"`
	UserID    string          `json:"userId"`
	Action    string          `json:"action"`
	CreatedAt time.Time       `json:"createdAt"`
	User      *UserSummaryDTO `json:"user,omitempty"`
}

type TicketDTO struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	DescriptionHTML string           `json:"descriptionHtml,omitempty"`
	Status          string           `json:"status"`
	Priority        string           `json:"priority"`
	TenantID        string           `json:"tenantId"`
	AssignedToID    *string          `json:"assignedToId"`
	Tenant          *UserSummaryDTO  `json:"tenant,omitempty"`
	AssignedTo      *UserSummaryDTO  `json:"assignedTo,omitempty"`
	Images          []TicketImageDTO `json:"images"`
	ActivityLogs    []ActivityLogDTO `json:"activityLogs,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// DescriptionRenderer turns a stored (escaped) description into safe HTML
type DescriptionRenderer interface {
	RenderStored(escaped string) (string, error)
}

// Projector serializes tickets for one viewer role
type Projector struct {
	renderer DescriptionRenderer
}

// NewProjector returns a projector. A nil renderer leaves descriptionHtml empty.
func NewProjector(renderer DescriptionRenderer) *Projector {
	return &Projector{renderer: renderer}
}

// ProjectTicket serializes t as seen by viewer. users resolves the tenant and
// assignee; missing entries are left out. Technicians never see the tenant's email.
func (p *Projector) ProjectTicket(t *ticket.Ticket, users map[string]*user.User, viewer authorization.UserRole) *TicketDTO {
	if t == nil {
		return nil
	}

	result := &TicketDTO{
		ID:           t.ID(),
		Title:        t.Title(),
		Description:  t.Description(),
		Status:       t.Status().String(),
		Priority:     t.Priority().String(),
		TenantID:     t.TenantID(),
		AssignedToID: t.AssignedToID(),
		Images:       make([]TicketImageDTO, 0, len(t.Images())),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}

	if p.renderer != nil {
		if rendered, err := p.renderer.RenderStored(t.Description()); err == nil {
			result.DescriptionHTML = rendered
		}
	}

	if tenant, ok := users[t.TenantID()]; ok {
		result.Tenant = &UserSummaryDTO{ID: tenant.ID(), Name: tenant.Name()}
		if !viewer.IsTechnician() {
			result.Tenant.Email = tenant.Email()
		}
	}
	if assigneeID := t.AssignedToID(); assigneeID != nil {
		if assignee, ok := users[*assigneeID]; ok {
			result.AssignedTo = &UserSummaryDTO{ID: assignee.ID(), Name: assignee.Name(), Email: assignee.Email()}
		}
	}

	for _, img := range t.Images() {
		result.Images = append(result.Images, TicketImageDTO{ID: img.ID(), ImageURL: img.ImageURL()})
	}

	return result
}

// ProjectTickets applies ProjectTicket to every ticket
func (p *Projector) ProjectTickets(tickets []*ticket.Ticket, users map[string]*user.User, viewer authorization.UserRole) []*TicketDTO {
	result := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, p.ProjectTicket(t, users, viewer))
	}
	return result
}

// ProjectLog serializes a log entry. The author is shown by name and role only.
func ProjectLog(l *ticket.ActivityLog, users map[string]*user.User) ActivityLogDTO {
	result := ActivityLogDTO{
		ID:        l.ID(),
		TicketID:  l.TicketID(),
		UserID:    l.UserID(),
		Action:    l.Action(),
		CreatedAt: l.CreatedAt(),
	}
	if author, ok := users[l.UserID()]; ok {
		result.User = &UserSummaryDTO{ID: author.ID(), Name: author.Name(), Role: author.Role().String()}
	}
	return result
}

// RelatedUserIDs lists the user ids a projection of tickets and logs needs
func RelatedUserIDs(tickets []*ticket.Ticket, logs []*ticket.ActivityLog) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, t := range tickets {
		add(t.TenantID())
		if assignee := t.AssignedToID(); assignee != nil {
			add(*assignee)
		}
	}
	for _, l := range logs {
		add(l.UserID())
	}
	return ids
}

// MetricsDTO carries the dashboard counters. Only the fields of the caller's role are set.
type MetricsDTO struct {
	Total          *int64 `json:"total,omitempty"`
	Open           *int64 `json:"open,omitempty"`
	InProgress     *int64 `json:"inProgress,omitempty"`
	Done           *int64 `json:"done,omitempty"`
	HighPriority   *int64 `json:"highPriority,omitempty"`
	Assigned       *int64 `json:"assigned,omitempty"`
	TotalSubmitted *int64 `json:"totalSubmitted,omitempty"`
	Pending        *int64 `json:"pending,omitempty"`
}
