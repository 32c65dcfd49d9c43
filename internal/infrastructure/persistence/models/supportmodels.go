package models

type TicketModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_support_tickets_user_status"`
	Status    string `gorm:"size:16;not null;index:idx_support_tickets_user_status"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null;index"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "support_tickets"
}

type MessageModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    uint   `gorm:"not null;index"`
	SenderRole  string `gorm:"size:16;not null"`
	SenderID    uint   `gorm:"not null"`
	Text        string `gorm:"type:text;not null"`
	BroadcastID string `gorm:"size:36;index"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (MessageModel) TableName() string {
	return "support_messages"
}

type NotificationModel struct {
	ID                uint  `gorm:"primaryKey"`
	UserID            uint  `gorm:"not null;uniqueIndex:idx_support_notifications_pair"`
	TicketID          uint  `gorm:"not null;uniqueIndex:idx_support_notifications_pair"`
	LastSeenMessageID uint  `gorm:"not null;default:0"`
	UnreadAdminCount  int   `gorm:"not null;default:0"`
	CreatedAt         int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt         int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (NotificationModel) TableName() string {
	return "support_notifications"
}
