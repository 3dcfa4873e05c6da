package models

import (
	"time"
)

type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"type:varchar(255);uniqueIndex;not null;check:chk_users_username,username <> ''" json:"username"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null;check:chk_users_email,email <> ''" json:"email"`
	PasswordHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	ImageURL       *string   `gorm:"type:text" json:"image_url"`
	HeaderImageURL *string   `gorm:"type:text" json:"header_image_url"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Location       string    `gorm:"type:varchar(255)" json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Messages []Message `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
