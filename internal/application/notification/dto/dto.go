package dto

import (
	"time"

	"github.com/fixdesk/fixdesk/internal/domain/notification"
)

type NotificationDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationListDTO struct {
	Notifications []NotificationDTO `json:"notifications"`
	UnreadCount   int64             `json:"unreadCount"`
}

func ToNotificationDTO(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Message:   n.Message(),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
}

func ToNotificationDTOs(notifications []*notification.Notification) []NotificationDTO {
	result := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, ToNotificationDTO(n))
	}
	return result
}
