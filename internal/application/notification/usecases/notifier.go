package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/fixdesk/fixdesk/internal/domain/notification"
	"github.com/fixdesk/fixdesk/internal/domain/user"
	"github.com/fixdesk/fixdesk/internal/shared/authorization"
	"github.com/fixdesk/fixdesk/internal/shared/logger"
)

const emailSendTimeout = 30 * time.Second

// Notifier is the notification sink of the ticket lifecycle.
//
// Notify and NotifyManagers only write rows, so they join the caller's
// transaction when ctx carries one. Dispatch runs the out-of-band channel and
// must be called after the transaction committed.
type Notifier struct {
	repo     notification.NotificationRepository
	userRepo user.Repository
	email    EmailSender
	runner   BackgroundRunner
	metrics  NotifierMetrics
	logger   logger.Interface
}

func NewNotifier(
	repo notification.NotificationRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *Notifier {
	return &Notifier{
		repo:     repo,
		userRepo: userRepo,
		metrics:  nopNotifierMetrics{},
		logger:   logger,
	}
}

// WithEmail enables the email copy of every dispatched notification
func (n *Notifier) WithEmail(sender EmailSender, runner BackgroundRunner) *Notifier {
	n.email = sender
	n.runner = runner
	return n
}

func (n *Notifier) WithMetrics(metrics NotifierMetrics) *Notifier {
	if metrics != nil {
		n.metrics = metrics
	}
	return n
}

// Notify stores one unread notification for userID
func (n *Notifier) Notify(ctx context.Context, userID, message string) (*notification.Notification, error) {
	item, err := notification.NewNotification(userID, message)
	if err != nil {
		return nil, err
	}
	if err := n.repo.Create(ctx, item); err != nil {
		n.logger.Errorw("failed to create notification", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	n.metrics.NotificationsCreated(1)
	return item, nil
}

// NotifyManagers stores one unread notification for every user holding the
// MANAGER role when the call is made
func (n *Notifier) NotifyManagers(ctx context.Context, message string) ([]*notification.Notification, error) {
	managerIDs, err := n.userRepo.ListIDsByRole(ctx, authorization.RoleManager)
	if err != nil {
		n.logger.Errorw("failed to list managers", "error", err)
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	if len(managerIDs) == 0 {
		n.logger.Warnw("no managers to notify", "message", message)
		return nil, nil
	}

	items := make([]*notification.Notification, 0, len(managerIDs))
	for _, id := range managerIDs {
		item, err := notification.NewNotification(id, message)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := n.repo.BulkCreate(ctx, items); err != nil {
		n.logger.Errorw("failed to create manager notifications", "count", len(items), "error", err)
		return nil, fmt.Errorf("failed to create manager notifications: %w", err)
	}

	n.metrics.NotificationsCreated(len(items))
	return items, nil
}

// Dispatch hands committed notifications to the email channel. Delivery is
// asynchronous and its failures are only logged.
func (n *Notifier) Dispatch(ctx context.Context, items []*notification.Notification) {
	if n.email == nil || n.runner == nil || len(items) == 0 {
		return
	}

	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.UserID()]; ok {
			continue
		}
		seen[item.UserID()] = struct{}{}
		ids = append(ids, item.UserID())
	}

	recipients, err := n.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		n.logger.Warnw("failed to load notification recipients, skipping email", "error", err)
		return
	}

	// The request context is cancelled once the response is written
	sendCtx := context.WithoutCancel(ctx)

	for _, item := range items {
		recipient, ok := recipients[item.UserID()]
		if !ok {
			continue
		}
		address, name, message, notificationID := recipient.Email(), recipient.Name(), item.Message(), item.ID()

		n.runner.Go("notification-email", func() {
			ctx, cancel := context.WithTimeout(sendCtx, emailSendTimeout)
			defer cancel()

			err := n.email.SendNotification(ctx, address, name, message)
			n.metrics.EmailDelivered(err == nil)
			if err != nil {
				n.logger.Warnw("failed to email notification",
					"notification_id", notificationID,
					"error", err,
				)
				return
			}
			n.logger.Debugw("notification emailed", "notification_id", notificationID)
		})
	}
}
