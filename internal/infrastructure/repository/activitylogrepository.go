package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixdesk/fixdesk/internal/domain/ticket"
	"github.com/fixdesk/fixdesk/internal/infrastructure/persistence/mappers"
	"github.com/fixdesk/fixdesk/internal/infrastructure/persistence/models"
	"github.com/fixdesk/fixdesk/internal/shared/db"
)

type ActivityLogRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

var _ ticket.ActivityLogRepository = (*ActivityLogRepository)(nil)

func NewActivityLogRepository(gormDB *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{
		db:     gormDB,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *ActivityLogRepository) Append(ctx context.Context, log *ticket.ActivityLog) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(r.mapper.LogToModel(log)).Error; err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

func (r *ActivityLogRepository) ListByTicketID(ctx context.Context, ticketID string) ([]*ticket.ActivityLog, error) {
	var logModels []*models.ActivityLogModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&logModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}

	logs := make([]*ticket.ActivityLog, 0, len(logModels))
	for _, model := range logModels {
		logs = append(logs, r.mapper.LogToDomain(model))
	}
	return logs, nil
}
