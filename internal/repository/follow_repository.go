package repository

import (
	"github.com/yukikurage/warbler-api/internal/database"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/utils"
	"gorm.io/gorm"
)

// GormFollowRepository is a GORM implementation of FollowRepository
type GormFollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &GormFollowRepository{db: db}
}

// Create creates a new follows row
func (r *GormFollowRepository) Create(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

// Delete removes the follows row for the pair
func (r *GormFollowRepository) Delete(followerID, followedID uint64) (int64, error) {
	result := r.db.Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	return result.RowsAffected, result.Error
}

func (r *GormFollowRepository) exists(followerID, followedID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// IsFollowing reports whether userID follows otherID
func (r *GormFollowRepository) IsFollowing(userID, otherID uint64) (bool, error) {
	return r.exists(userID, otherID)
}

// IsFollowedBy reports whether otherID follows userID
func (r *GormFollowRepository) IsFollowedBy(userID, otherID uint64) (bool, error) {
	return r.exists(otherID, userID)
}

// Following lists the users userID follows, oldest follow first. Follows
// made at the same instant are ordered by user id.
func (r *GormFollowRepository) Following(userID uint64, page utils.PaginationParams) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.user_being_followed_id = users.id").
		Where("follows.user_following_id = ?", userID).
		Order("follows.created_at ASC").
		Order("users.id ASC").
		Scopes(database.Paginate(page)).
		Find(&users).Error
	return users, err
}

// Followers lists the users following userID, oldest follow first. Follows
// made at the same instant are ordered by user id.
func (r *GormFollowRepository) Followers(userID uint64, page utils.PaginationParams) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.user_following_id = users.id").
		Where("follows.user_being_followed_id = ?", userID).
		Order("follows.created_at ASC").
		Order("users.id ASC").
		Scopes(database.Paginate(page)).
		Find(&users).Error
	return users, err
}

// FollowingIDs lists the IDs of the users userID follows
func (r *GormFollowRepository) FollowingIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Follow{}).
		Where("user_following_id = ?", userID).
		Pluck("user_being_followed_id", &ids).Error
	return ids, err
}

// CountFollowing counts the users userID follows
func (r *GormFollowRepository) CountFollowing(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("user_following_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowers counts the users following userID
func (r *GormFollowRepository) CountFollowers(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("user_being_followed_id = ?", userID).Count(&count).Error
	return count, err
}
