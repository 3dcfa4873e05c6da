package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/repository"
	"github.com/yukikurage/warbler-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound    = errors.New("message not found")
	ErrMessageTextInvalid = fmt.Errorf("message text must be between 1 and %d characters", constants.MaxMessageLength)
	ErrNotMessageOwner    = errors.New("only the author can delete this message")
)

// MessageService handles message business logic
type MessageService struct{}

// NewMessageService creates a new MessageService
func NewMessageService() *MessageService {
	return &MessageService{}
}

// Create posts a new message as userID.
func (s *MessageService) Create(uow *repository.UnitOfWork, userID uint64, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" || utf8.RuneCountInString(text) > constants.MaxMessageLength {
		return nil, ErrMessageTextInvalid
	}

	msg := &models.Message{
		Text:   text,
		UserID: userID,
	}
	if err := uow.Messages().Create(msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", repository.Classify(err))
	}
	return msg, nil
}

// Get retrieves a message with its author.
func (s *MessageService) Get(uow *repository.UnitOfWork, id uint64) (*models.Message, error) {
	msg, err := uow.Messages().FindByID(id, "User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return msg, nil
}

// Delete removes a message on behalf of actorID, who must own it.
func (s *MessageService) Delete(uow *repository.UnitOfWork, actorID, id uint64) error {
	msg, err := s.Get(uow, id)
	if err != nil {
		return err
	}
	if !msg.IsOwnedBy(actorID) {
		return ErrNotMessageOwner
	}

	if err := uow.Messages().Delete(id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// ListByUser lists a user's messages, newest first.
func (s *MessageService) ListByUser(uow *repository.UnitOfWork, userID uint64, page utils.PaginationParams) ([]models.Message, error) {
	messages, err := uow.Messages().ListByUser(userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Timeline lists the newest messages written by userID or anyone userID
// follows.
func (s *MessageService) Timeline(uow *repository.UnitOfWork, userID uint64, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = constants.DefaultTimelineSize
	}

	authorIDs, err := uow.Follows().FollowingIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed users: %w", err)
	}
	authorIDs = append(authorIDs, userID)

	messages, err := uow.Messages().ListByUsers(authorIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	return messages, nil
}

// LikedByViewer returns which of messages viewerID likes.
func (s *MessageService) LikedByViewer(uow *repository.UnitOfWork, viewerID uint64, messages []models.Message) (map[uint64]bool, error) {
	ids := make([]uint64, len(messages))
	for i, msg := range messages {
		ids[i] = msg.ID
	}

	liked, err := uow.Likes().LikedMessageIDs(viewerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}
	return liked, nil
}
