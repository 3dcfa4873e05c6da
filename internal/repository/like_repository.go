package repository

import (
	"github.com/yukikurage/warbler-api/internal/database"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/utils"
	"gorm.io/gorm"
)

// GormLikeRepository is a GORM implementation of LikeRepository
type GormLikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &GormLikeRepository{db: db}
}

// Append records a like
func (r *GormLikeRepository) Append(userID, messageID uint64) (*models.Like, error) {
	like := &models.Like{UserID: userID, MessageID: messageID}
	if err := r.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

// Remove deletes a like
func (r *GormLikeRepository) Remove(userID, messageID uint64) (int64, error) {
	result := r.db.Where("user_id = ? AND message_id = ?", userID, messageID).Delete(&models.Like{})
	return result.RowsAffected, result.Error
}

// Replace swaps the user's whole like collection for messageIDs
func (r *GormLikeRepository) Replace(userID uint64, messageIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		// One insert per row so IDs follow the given order.
		for _, messageID := range messageIDs {
			if err := tx.Create(&models.Like{UserID: userID, MessageID: messageID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Exists reports whether the like exists
func (r *GormLikeRepository) Exists(userID, messageID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	return count > 0, err
}

// Rows lists the user's like rows in insertion order
func (r *GormLikeRepository) Rows(userID uint64) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&likes).Error
	return likes, err
}

// Messages lists the liked messages in like order
func (r *GormLikeRepository) Messages(userID uint64, page utils.PaginationParams) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Model(&models.Message{}).
		Preload("User").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.id ASC").
		Scopes(database.Paginate(page)).
		Find(&messages).Error
	return messages, err
}

// LikedMessageIDs returns the subset of messageIDs the user likes
func (r *GormLikeRepository) LikedMessageIDs(userID uint64, messageIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool)
	if len(messageIDs) == 0 {
		return liked, nil
	}

	var ids []uint64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND message_id IN ?", userID, messageIDs).
		Pluck("message_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// CountByUser counts the user's likes
func (r *GormLikeRepository) CountByUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
