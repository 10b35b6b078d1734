package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	vo "github.com/fixdesk/fixdesk/internal/domain/ticket/value_objects"
	"github.com/fixdesk/fixdesk/internal/infrastructure/persistence/mappers"
	"github.com/fixdesk/fixdesk/internal/infrastructure/persistence/models"
	"github.com/fixdesk/fixdesk/internal/shared/db"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

var _ ticket.TicketRepository = (*TicketRepository)(nil)

func NewTicketRepository(gormDB *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     gormDB,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Preload("Images", orderImages).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, error) {
	var ticketModels []*models.TicketModel
	query := applyTicketFilter(db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{}), filter)

	if err := query.
		Preload("Images", orderImages).
		Order("created_at DESC").
		Order("id DESC").
		Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(ticketModels))
	for _, model := range ticketModels {
		t, err := r.mapper.ToDomain(model)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}

	return tickets, nil
}

func (r *TicketRepository) Count(ctx context.Context, filter ticket.TicketFilter) (int64, error) {
	var count int64
	query := applyTicketFilter(db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	return count, nil
}

// CompareAndSwap issues a single conditional UPDATE. The WHERE clause carries
// the state the caller validated against, so of two racing writers at most one
// sees a row affected.
func (r *TicketRepository) CompareAndSwap(
	ctx context.Context,
	t *ticket.Ticket,
	expectedStatus vo.TicketStatus,
	expectedAssignee *string,
) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.TicketModel{}).
		Where("id = ?", t.ID()).
		Where("status = ?", expectedStatus.String())
	if expectedAssignee == nil {
		query = query.Where("assigned_to_id IS NULL")
	} else {
		query = query.Where("assigned_to_id = ?", *expectedAssignee)
	}

	result := query.Updates(map[string]interface{}{
		"status":         t.Status().String(),
		"assigned_to_id": t.AssignedToID(),
		"updated_at":     t.UpdatedAt().UnixMilli(),
	})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *TicketRepository) DeleteAll(ctx context.Context) error {
	tx := db.GetTxFromContext(ctx, r.db).Session(&gorm.Session{AllowGlobalUpdate: true})

	// children first so the cascade is not required of the driver
	for _, model := range []interface{}{&models.ActivityLogModel{}, &models.TicketImageModel{}, &models.TicketModel{}} {
		if err := tx.Delete(model).Error; err != nil {
			return fmt.Errorf("failed to delete tickets: %w", err)
		}
	}

	return nil
}

func applyTicketFilter(query *gorm.DB, filter ticket.TicketFilter) *gorm.DB {
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.AssignedToID != nil {
		query = query.Where("assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, s.String())
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	return query
}

func orderImages(query *gorm.DB) *gorm.DB {
	return query.Order("id ASC")
}
