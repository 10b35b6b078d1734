package mappers

import (
	"fmt"
	"time"

	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	"github.com/fixdesk/fixdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket with its images to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket persistence model, images included, to a domain entity.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	LogToModel(l *ticket.ActivityLog) *models.ActivityLogModel
	LogToDomain(model *models.ActivityLogModel) *ticket.ActivityLog
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:           t.ID(),
		Title:        t.Title(),
		Description:  t.Description(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		TenantID:     t.TenantID(),
		AssignedToID: t.AssignedToID(),
		CreatedAt:    t.CreatedAt().UnixMilli(),
		UpdatedAt:    t.UpdatedAt().UnixMilli(),
	}

	for _, img := range t.Images() {
		model.Images = append(model.Images, models.TicketImageModel{
			ID:       img.ID(),
			TicketID: t.ID(),
			ImageURL: img.ImageURL(),
		})
	}

	return model
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", model.ID, err)
	}

	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", model.ID, err)
	}

	images := make([]*ticket.Image, 0, len(model.Images))
	for _, img := range model.Images {
		images = append(images, ticket.ReconstructImage(img.ID, img.TicketID, img.ImageURL))
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Title,
		model.Description,
		priority,
		status,
		model.TenantID,
		model.AssignedToID,
		images,
		time.UnixMilli(model.CreatedAt).UTC(),
		time.UnixMilli(model.UpdatedAt).UTC(),
	)
}

func (m *TicketMapperImpl) LogToModel(l *ticket.ActivityLog) *models.ActivityLogModel {
	return &models.ActivityLogModel{
		ID:        l.ID(),
		TicketID:  l.TicketID(),
		UserID:    l.UserID(),
		Action:    l.Action(),
		CreatedAt: l.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) LogToDomain(model *models.ActivityLogModel) *ticket.ActivityLog {
	return ticket.ReconstructActivityLog(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Action,
		time.UnixMilli(model.CreatedAt).UTC(),
	)
}
