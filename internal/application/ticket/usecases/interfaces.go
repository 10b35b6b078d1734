package usecases

import (
	"context"

	"github.com/fixdesk/fixdesk/internal/domain/notification"
)

// NotificationSink stores lifecycle notifications inside the caller's
// transaction and dispatches them once it committed
type NotificationSink interface {
	Notify(ctx context.Context, userID, message string) (*notification.Notification, error)
	NotifyManagers(ctx context.Context, message string) ([]*notification.Notification, error)
	Dispatch(ctx context.Context, items []*notification.Notification)
}

// LifecycleMetrics receives counters for ticket mutations
type LifecycleMetrics interface {
	TicketCreated(priority string)
	TicketAssigned()
	StatusChanged(from, to string)
	NoteAdded()
	Rejected(operation, reason string)
}

type nopLifecycleMetrics struct{}

func (nopLifecycleMetrics) TicketCreated(string)         {}
func (nopLifecycleMetrics) TicketAssigned()              {}
func (nopLifecycleMetrics) StatusChanged(string, string) {}
func (nopLifecycleMetrics) NoteAdded()                   {}
func (nopLifecycleMetrics) Rejected(string, string)      {}

func metricsOrNop(m LifecycleMetrics) LifecycleMetrics {
	if m == nil {
		return nopLifecycleMetrics{}
	}
	return m
}
