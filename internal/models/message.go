package models

import "time"

type Message struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Text      string    `gorm:"type:varchar(140);not null" json:"text"`
	Timestamp time.Time `gorm:"not null;autoCreateTime;index" json:"timestamp"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// IsOwnedBy reports whether the given user wrote the message. Only the
// owner may delete it.
func (m *Message) IsOwnedBy(userID uint64) bool {
	return m != nil && userID != 0 && m.UserID == userID
}
