package models

type NotificationModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;not null;index:idx_notifications_user_read,priority:1"`
	Message   string `gorm:"type:text;not null"`
	Read      bool   `gorm:"column:is_read;not null;default:false;index:idx_notifications_user_read,priority:2"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

// AllModels lists every persistence model in dependency order
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&TicketModel{},
		&TicketImageModel{},
		&ActivityLogModel{},
		&NotificationModel{},
	}
}
