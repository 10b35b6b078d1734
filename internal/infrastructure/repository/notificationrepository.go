package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fixdesk/fixdesk/internal/domain/notification"
	"github.com/fixdesk/fixdesk/internal/infrastructure/persistence/mappers"
	"github.com/fixdesk/fixdesk/internal/infrastructure/persistence/models"
	"github.com/fixdesk/fixdesk/internal/shared/db"
)

type NotificationRepository struct {
	db     *gorm.DB
	mapper mappers.NotificationMapper
}

var _ notification.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(gormDB *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db:     gormDB,
		mapper: mappers.NewNotificationMapper(),
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(r.mapper.ToModel(n)).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) BulkCreate(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	notificationModels := make([]*models.NotificationModel, 0, len(notifications))
	for _, n := range notifications {
		notificationModels = append(notificationModels, r.mapper.ToModel(n))
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.CreateInBatches(notificationModels, 100).Error; err != nil {
		return fmt.Errorf("failed to bulk create notifications: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	var notificationModels []*models.NotificationModel
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	result := make([]*notification.Notification, 0, len(notificationModels))
	for _, model := range notificationModels {
		result = append(result, r.mapper.ToDomain(model))
	}
	return result, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepository) DeleteAll(ctx context.Context) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.NotificationModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	return nil
}
