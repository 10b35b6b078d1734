package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fixdesk/fixdesk/internal/shared/biztime"
)

const maxMessageLength = 2000

// Notification is a short in-app message addressed to one user.
// The only mutation is the bulk mark-as-read of a user's unread rows.
type Notification struct {
	id        string
	userID    string
	message   string
	read      bool
	createdAt time.Time
}

func NewNotification(userID, message string) (*Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}
	if len(message) > maxMessageLength {
		return nil, fmt.Errorf("message exceeds maximum length of %d characters", maxMessageLength)
	}

	return &Notification{
		id:        uuid.Must(uuid.NewV7()).String(),
		userID:    userID,
		message:   message,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructNotification(id, userID, message string, read bool, createdAt time.Time) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		message:   message,
		read:      read,
		createdAt: createdAt,
	}
}

func (n *Notification) ID() string {
	return n.id
}

func (n *Notification) UserID() string {
	return n.userID
}

func (n *Notification) Message() string {
	return n.message
}

func (n *Notification) IsRead() bool {
	return n.read
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}
