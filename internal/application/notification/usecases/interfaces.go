package usecases

import (
	"context"
)

// EmailSender delivers a copy of a notification out of band
type EmailSender interface {
	SendNotification(ctx context.Context, toAddress, toName, message string) error
}

// BackgroundRunner starts tracked fire-and-forget work
type BackgroundRunner interface {
	Go(name string, fn func())
}

// NotifierMetrics receives notification counters
type NotifierMetrics interface {
	NotificationsCreated(n int)
	EmailDelivered(ok bool)
}

type nopNotifierMetrics struct{}

func (nopNotifierMetrics) NotificationsCreated(int) {}
func (nopNotifierMetrics) EmailDelivered(bool)      {}
