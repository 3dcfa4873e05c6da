package models

import "time"

// Follow records that UserFollowingID follows UserBeingFollowedID.
type Follow struct {
	UserBeingFollowedID uint64    `gorm:"primarykey;check:chk_follows_not_self,user_being_followed_id <> user_following_id" json:"user_being_followed_id"`
	UserFollowingID     uint64    `gorm:"primarykey;index" json:"user_following_id"`
	CreatedAt           time.Time `json:"created_at"`

	// Relations
	UserBeingFollowed User `gorm:"foreignKey:UserBeingFollowedID;constraint:OnDelete:CASCADE" json:"-"`
	UserFollowing     User `gorm:"foreignKey:UserFollowingID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
