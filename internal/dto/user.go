package dto

import (
	"time"

	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/services"
	"github.com/yukikurage/warbler-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64    `json:"id"`
	Username       string    `json:"username"`
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio,omitempty"`
	Location       string    `json:"location,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// AccountDTO is the signed-in user's own view, including their email.
type AccountDTO struct {
	UserDTO
	Email string `json:"email"`
}

// ProfileDTO is a user page with relation counts.
type ProfileDTO struct {
	UserDTO
	MessageCount   int64 `json:"message_count"`
	FollowingCount int64 `json:"following_count"`
	FollowerCount  int64 `json:"follower_count"`
	LikeCount      int64 `json:"like_count"`
	IsFollowing    bool  `json:"is_following"`
}

// UserListResponse represents a page of users
type UserListResponse struct {
	Users      []UserDTO                `json:"users"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func derefOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		ImageURL:       derefOr(user.ImageURL, ""),
		HeaderImageURL: derefOr(user.HeaderImageURL, ""),
		Bio:            user.Bio,
		Location:       user.Location,
		CreatedAt:      user.CreatedAt,
	}
}

// ToAccountDTO converts the current user to AccountDTO
func ToAccountDTO(user models.User) AccountDTO {
	return AccountDTO{
		UserDTO: ToUserDTO(user),
		Email:   user.Email,
	}
}

// ToProfileDTO converts a loaded profile to ProfileDTO
func ToProfileDTO(profile services.Profile) ProfileDTO {
	return ProfileDTO{
		UserDTO:        ToUserDTO(profile.User),
		MessageCount:   profile.MessageCount,
		FollowingCount: profile.FollowingCount,
		FollowerCount:  profile.FollowerCount,
		LikeCount:      profile.LikeCount,
		IsFollowing:    profile.ViewerFollows,
	}
}

// ToUserListResponse converts a page of users
func ToUserListResponse(users []models.User, page utils.PaginationParams, total int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}

	return UserListResponse{
		Users:      items,
		Pagination: page.Response(total),
	}
}
