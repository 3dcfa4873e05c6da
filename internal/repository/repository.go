package repository

import (
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update saves every column of the user
	Update(user *models.User) error

	// Delete removes the user together with their messages, follows and likes
	Delete(id uint64) error
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	Create(message *models.Message) error

	// FindByID finds a message by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Message, error)

	// Delete removes a message and the likes on it
	Delete(id uint64) error

	// ListByUser lists a user's messages, newest first
	ListByUser(userID uint64, page utils.PaginationParams) ([]models.Message, error)

	// ListByUsers lists messages written by any of the given users, newest first
	ListByUsers(userIDs []uint64, limit int) ([]models.Message, error)

	CountByUser(userID uint64) (int64, error)
}

// FollowRepository defines the interface for the follows relation
type FollowRepository interface {
	Create(follow *models.Follow) error

	// Delete removes the row where followerID follows followedID and
	// reports how many rows were removed
	Delete(followerID, followedID uint64) (int64, error)

	// IsFollowing reports whether userID follows otherID
	IsFollowing(userID, otherID uint64) (bool, error)

	// IsFollowedBy reports whether otherID follows userID
	IsFollowedBy(userID, otherID uint64) (bool, error)

	// Following lists the users userID follows by follow time, then user id
	Following(userID uint64, page utils.PaginationParams) ([]models.User, error)

	// Followers lists the users following userID by follow time, then user id
	Followers(userID uint64, page utils.PaginationParams) ([]models.User, error)

	// FollowingIDs lists the IDs of the users userID follows
	FollowingIDs(userID uint64) ([]uint64, error)

	CountFollowing(userID uint64) (int64, error)
	CountFollowers(userID uint64) (int64, error)
}

// LikeRepository defines the interface for the likes relation
type LikeRepository interface {
	// Append records that userID likes messageID
	Append(userID, messageID uint64) (*models.Like, error)

	// Remove deletes a single like and reports how many rows were removed
	Remove(userID, messageID uint64) (int64, error)

	// Replace makes messageIDs, in order, the complete set of userID's likes
	Replace(userID uint64, messageIDs []uint64) error

	// Exists reports whether userID likes messageID
	Exists(userID, messageID uint64) (bool, error)

	// Rows lists the like rows of userID in insertion order
	Rows(userID uint64) ([]models.Like, error)

	// Messages lists the messages userID likes, in like order
	Messages(userID uint64, page utils.PaginationParams) ([]models.Message, error)

	// LikedMessageIDs returns which of messageIDs userID likes
	LikedMessageIDs(userID uint64, messageIDs []uint64) (map[uint64]bool, error)

	CountByUser(userID uint64) (int64, error)
}
