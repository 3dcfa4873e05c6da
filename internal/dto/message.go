package dto

import (
	"time"

	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/utils"
)

// MessageDTO represents a message in API responses
type MessageDTO struct {
	ID        uint64    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uint64    `json:"user_id"`
	User      *UserDTO  `json:"user,omitempty"`
	Liked     bool      `json:"liked"`
}

// MessageDetailDTO is a single message page. IsFollowing tells whether the
// viewer follows the author.
type MessageDetailDTO struct {
	MessageDTO
	IsFollowing bool `json:"is_following"`
}

// MessageListResponse represents a list of messages. Pagination is omitted
// for the timeline, which is a fixed-size window.
type MessageListResponse struct {
	Messages   []MessageDTO              `json:"messages"`
	Pagination *utils.PaginationResponse `json:"pagination,omitempty"`
}

// LikeDTO is the result of toggling a like.
type LikeDTO struct {
	MessageID uint64 `json:"message_id"`
	Liked     bool   `json:"liked"`
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(msg models.Message) MessageDTO {
	dto := MessageDTO{
		ID:        msg.ID,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
		UserID:    msg.UserID,
	}

	// Include author if preloaded
	if msg.User.ID != 0 {
		author := ToUserDTO(msg.User)
		dto.User = &author
	}

	return dto
}

// ToMessageList converts messages, marking the ones in liked.
func ToMessageList(messages []models.Message, liked map[uint64]bool) []MessageDTO {
	items := make([]MessageDTO, len(messages))
	for i, msg := range messages {
		items[i] = ToMessageDTO(msg)
		items[i].Liked = liked[msg.ID]
	}
	return items
}
