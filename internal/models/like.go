package models

// Like records that a user liked a message. A user likes a given message at
// most once.
type Like struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	UserID    uint64 `gorm:"not null;uniqueIndex:idx_likes_user_message" json:"user_id"`
	MessageID uint64 `gorm:"not null;uniqueIndex:idx_likes_user_message;index" json:"message_id"`

	// Relations
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Message Message `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}
