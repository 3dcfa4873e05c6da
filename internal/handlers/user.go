package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/warbler-api/internal/dto"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/services"
	"github.com/yukikurage/warbler-api/internal/utils"
)

// UserHandler serves user pages and the follow and like listings.
type UserHandler struct {
	socialService  *services.SocialService
	messageService *services.MessageService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(socialService *services.SocialService, messageService *services.MessageService) *UserHandler {
	return &UserHandler{
		socialService:  socialService,
		messageService: messageService,
	}
}

// UserPageResponse is a user's profile with a page of their messages.
type UserPageResponse struct {
	User     dto.ProfileDTO          `json:"user"`
	Messages dto.MessageListResponse `json:"messages"`
}

func (h *UserHandler) profile(c *gin.Context) (*services.Profile, bool) {
	userID, ok := pathID(c, "id", services.ErrUserNotFound.Error())
	if !ok {
		return nil, false
	}

	viewerID, _ := middleware.GetUserID(c)
	profile, err := h.socialService.Profile(middleware.GetUnitOfWork(c), userID, viewerID)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return profile, true
}

// GetUser shows a user's profile and messages.
func (h *UserHandler) GetUser(c *gin.Context) {
	profile, ok := h.profile(c)
	if !ok {
		return
	}

	uow := middleware.GetUnitOfWork(c)
	page := utils.GetPaginationParams(c)
	messages, err := h.messageService.ListByUser(uow, profile.User.ID, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var liked map[uint64]bool
	if viewerID, loggedIn := middleware.GetUserID(c); loggedIn {
		if liked, err = h.messageService.LikedByViewer(uow, viewerID, messages); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	pagination := page.Response(profile.MessageCount)
	c.JSON(http.StatusOK, UserPageResponse{
		User: dto.ToProfileDTO(*profile),
		Messages: dto.MessageListResponse{
			Messages:   dto.ToMessageList(messages, liked),
			Pagination: &pagination,
		},
	})
}

// ListFollowing lists the users a user follows.
func (h *UserHandler) ListFollowing(c *gin.Context) {
	profile, ok := h.profile(c)
	if !ok {
		return
	}

	page := utils.GetPaginationParams(c)
	users, err := h.socialService.Following(middleware.GetUnitOfWork(c), profile.User.ID, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, page, profile.FollowingCount))
}

// ListFollowers lists the users following a user.
func (h *UserHandler) ListFollowers(c *gin.Context) {
	profile, ok := h.profile(c)
	if !ok {
		return
	}

	page := utils.GetPaginationParams(c)
	users, err := h.socialService.Followers(middleware.GetUnitOfWork(c), profile.User.ID, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, page, profile.FollowerCount))
}

// ListLikes lists the messages a user likes, in the order they were liked.
func (h *UserHandler) ListLikes(c *gin.Context) {
	profile, ok := h.profile(c)
	if !ok {
		return
	}

	uow := middleware.GetUnitOfWork(c)
	page := utils.GetPaginationParams(c)
	messages, err := h.socialService.Likes(uow, profile.User.ID, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	viewerID, _ := middleware.GetUserID(c)
	liked, err := h.messageService.LikedByViewer(uow, viewerID, messages)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pagination := page.Response(profile.LikeCount)
	c.JSON(http.StatusOK, dto.MessageListResponse{
		Messages:   dto.ToMessageList(messages, liked),
		Pagination: &pagination,
	})
}

// Follow makes the current user follow :id.
func (h *UserHandler) Follow(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	followedID, ok := pathID(c, "id", services.ErrUserNotFound.Error())
	if !ok {
		return
	}

	if err := h.socialService.Follow(middleware.GetUnitOfWork(c), userID, followedID); err != nil {
		respondServiceError(c, err)
		return
	}
	if !commit(c) {
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "followed_id": followedID}).Info("user followed")
	c.JSON(http.StatusOK, gin.H{"following": true})
}

// StopFollowing makes the current user unfollow :id.
func (h *UserHandler) StopFollowing(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	followedID, ok := pathID(c, "id", services.ErrUserNotFound.Error())
	if !ok {
		return
	}

	if err := h.socialService.Unfollow(middleware.GetUnitOfWork(c), userID, followedID); err != nil {
		respondServiceError(c, err)
		return
	}
	if !commit(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": false})
}
