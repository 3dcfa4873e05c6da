package repository

import (
	"github.com/yukikurage/warbler-api/internal/database"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/utils"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByID finds a message by ID with optional preloading
func (r *GormMessageRepository) FindByID(id uint64, preload ...string) (*models.Message, error) {
	var message models.Message
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Delete removes a message and the likes pointing at it
func (r *GormMessageRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Message{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListByUser lists a user's messages, newest first
func (r *GormMessageRepository) ListByUser(userID uint64, page utils.PaginationParams) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Scopes(database.Newest, database.Paginate(page)).
		Find(&messages).Error
	return messages, err
}

// ListByUsers lists messages from the given authors, newest first
func (r *GormMessageRepository) ListByUsers(userIDs []uint64, limit int) ([]models.Message, error) {
	if len(userIDs) == 0 {
		return []models.Message{}, nil
	}

	var messages []models.Message
	query := r.db.Preload("User").
		Where("user_id IN ?", userIDs).
		Scopes(database.Newest)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&messages).Error
	return messages, err
}

// CountByUser counts a user's messages
func (r *GormMessageRepository) CountByUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
