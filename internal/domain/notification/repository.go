package notification

import "context"

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	BulkCreate(ctx context.Context, notifications []*Notification) error

	// ListRecentByUserID returns at most limit notifications, newest first
	ListRecentByUserID(ctx context.Context, userID string, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)

	// MarkAllRead flips every unread notification of userID and returns how many changed
	MarkAllRead(ctx context.Context, userID string) (int64, error)

	DeleteAll(ctx context.Context) error
}
