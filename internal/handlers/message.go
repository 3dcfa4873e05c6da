package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/dto"
	apierrors "github.com/yukikurage/warbler-api/internal/errors"
	"github.com/yukikurage/warbler-api/internal/metrics"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/services"
)

// MessageHandler serves the timeline and message pages.
type MessageHandler struct {
	messageService *services.MessageService
	socialService  *services.SocialService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService, socialService *services.SocialService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		socialService:  socialService,
	}
}

// Timeline lists the newest messages by the current user and the users
// they follow.
func (h *MessageHandler) Timeline(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	uow := middleware.GetUnitOfWork(c)
	messages, err := h.messageService.Timeline(uow, userID, constants.DefaultTimelineSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	liked, err := h.messageService.LikedByViewer(uow, userID, messages)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageListResponse{
		Messages: dto.ToMessageList(messages, liked),
	})
}

// CreateMessage posts a message as the current user.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	type CreateMessageRequest struct {
		Text string `json:"text"`
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	msg, err := h.messageService.Create(middleware.GetUnitOfWork(c), userID, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !commit(c) {
		return
	}

	metrics.MessagesPosted.Inc()
	logrus.WithFields(logrus.Fields{"user_id": userID, "message_id": msg.ID}).Info("message posted")
	c.JSON(http.StatusCreated, dto.ToMessageDTO(*msg))
}

// GetMessage shows a single message. Logged-in viewers also learn whether
// they follow the author and like the message.
func (h *MessageHandler) GetMessage(c *gin.Context) {
	messageID, ok := pathID(c, "id", services.ErrMessageNotFound.Error())
	if !ok {
		return
	}

	uow := middleware.GetUnitOfWork(c)
	msg, err := h.messageService.Get(uow, messageID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	detail := dto.MessageDetailDTO{MessageDTO: dto.ToMessageDTO(*msg)}
	if viewerID, loggedIn := middleware.GetUserID(c); loggedIn {
		if viewerID != msg.UserID {
			if detail.IsFollowing, err = h.socialService.IsFollowing(uow, viewerID, msg.UserID); err != nil {
				respondServiceError(c, err)
				return
			}
		}
		liked, err := h.messageService.LikedByViewer(uow, viewerID, []models.Message{*msg})
		if err != nil {
			respondServiceError(c, err)
			return
		}
		detail.Liked = liked[msg.ID]
	}

	c.JSON(http.StatusOK, detail)
}

// DeleteMessage removes the message loaded by RequireMessageOwner.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	msg, exists := middleware.GetMessage(c)
	if !exists {
		apierrors.InternalError(c, "Message not found in context")
		return
	}

	if err := h.messageService.Delete(middleware.GetUnitOfWork(c), userID, msg.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	if !commit(c) {
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "message_id": msg.ID}).Info("message deleted")
	c.JSON(http.StatusOK, gin.H{
		"message": "Message deleted",
	})
}

// ToggleLike likes or unlikes a message for the current user.
func (h *MessageHandler) ToggleLike(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	messageID, ok := pathID(c, "id", services.ErrMessageNotFound.Error())
	if !ok {
		return
	}

	liked, err := h.socialService.ToggleLike(middleware.GetUnitOfWork(c), userID, messageID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !commit(c) {
		return
	}

	c.JSON(http.StatusOK, dto.LikeDTO{MessageID: messageID, Liked: liked})
}
