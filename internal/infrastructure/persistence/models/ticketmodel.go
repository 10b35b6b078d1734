package models

type TicketModel struct {
	ID           string  `gorm:"primaryKey;size:36"`
	Title        string  `gorm:"size:200;not null"`
	Description  string  `gorm:"type:text;not null"`
	Priority     string  `gorm:"size:20;not null;index"`
	Status       string  `gorm:"size:20;not null;index"`
	TenantID     string  `gorm:"size:36;not null;index"`
	AssignedToID *string `gorm:"size:36;index"`
	CreatedAt    int64   `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt    int64   `gorm:"autoUpdateTime:milli;not null"`

	Images []TicketImageModel `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

func (TicketModel) TableName() string {
	return "tickets"
}

type TicketImageModel struct {
	ID       string `gorm:"primaryKey;size:36"`
	TicketID string `gorm:"size:36;not null;index"`
	ImageURL string `gorm:"size:1024;not null"`
}

func (TicketImageModel) TableName() string {
	return "ticket_images"
}

// ActivityLogModel is append-only; rows are never updated
type ActivityLogModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	TicketID  string `gorm:"size:36;not null;index"`
	UserID    string `gorm:"size:36;not null;index"`
	Action    string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
