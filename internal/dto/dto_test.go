package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/services"
	"github.com/yukikurage/warbler-api/internal/utils"
)

func TestToMessageList(t *testing.T) {
	author := models.User{ID: 7, Username: "testuser"}
	messages := []models.Message{
		{ID: 1, Text: "one", UserID: 7, User: author},
		{ID: 2, Text: "two", UserID: 7},
	}

	items := ToMessageList(messages, map[uint64]bool{2: true})

	assert.Len(t, items, 2)
	assert.False(t, items[0].Liked)
	assert.Equal(t, "testuser", items[0].User.Username)
	assert.True(t, items[1].Liked)
	assert.Nil(t, items[1].User, "author is omitted when not preloaded")
}

func TestToProfileDTO(t *testing.T) {
	image := "/img.png"
	profile := services.Profile{
		User:          models.User{ID: 3, Username: "testuser", Email: "test@test.com", ImageURL: &image},
		FollowerCount: 2,
		ViewerFollows: true,
	}

	dto := ToProfileDTO(profile)

	assert.Equal(t, "/img.png", dto.ImageURL)
	assert.Empty(t, dto.HeaderImageURL)
	assert.EqualValues(t, 2, dto.FollowerCount)
	assert.True(t, dto.IsFollowing)
}

func TestToUserListResponse(t *testing.T) {
	resp := ToUserListResponse([]models.User{{ID: 1}, {ID: 2}}, utils.NewPagination(1, 2), 5)

	assert.Len(t, resp.Users, 2)
	assert.EqualValues(t, 5, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Limit)
}
