package ticket

import (
	"github.com/fixdesk/fixdesk/internal/application/ticket/usecases"
)

type CreateTicketRequest struct {
	Title       string   `json:"title" binding:"required,min=5"`
	Description string   `json:"description" binding:"required,min=10"`
	Priority    string   `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH URGENT"`
	ImageURLs   []string `json:"imageUrls" binding:"max=5,dive,imageurl"`
}

func (r *CreateTicketRequest) ToCommand(tenantID string) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		TenantID:    tenantID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		ImageURLs:   r.ImageURLs,
	}
}

// AssignTicketRequest is the manager's body on POST /tickets/:id/status.
// The id format is checked by the use case.
type AssignTicketRequest struct {
	TechnicianID string `json:"technicianId" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}
