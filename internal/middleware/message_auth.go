package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler-api/internal/constants"
	apierrors "github.com/yukikurage/warbler-api/internal/errors"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/services"
)

// ParseID reads a numeric path parameter.
func ParseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// RequireMessageOwner loads the message named by :id and lets the request
// through only when the current user wrote it.
func RequireMessageOwner(messageService *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		// Malformed ids are reported like missing ones
		messageID, ok := ParseID(c, "id")
		if !ok {
			apierrors.NotFound(c, services.ErrMessageNotFound.Error())
			return
		}

		msg, err := messageService.Get(GetUnitOfWork(c), messageID)
		if err != nil {
			if errors.Is(err, services.ErrMessageNotFound) {
				apierrors.NotFound(c, err.Error())
				return
			}
			apierrors.InternalError(c, "")
			return
		}

		if !msg.IsOwnedBy(userID) {
			apierrors.Forbidden(c, "")
			return
		}

		c.Set(constants.ContextKeyMessage, msg)
		c.Next()
	}
}

// GetMessage returns the message loaded by RequireMessageOwner.
func GetMessage(c *gin.Context) (*models.Message, bool) {
	value, exists := c.Get(constants.ContextKeyMessage)
	if !exists {
		return nil, false
	}
	msg, ok := value.(*models.Message)
	return msg, ok
}
