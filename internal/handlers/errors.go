package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/warbler-api/internal/errors"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/repository"
	"github.com/yukikurage/warbler-api/internal/services"
)

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrMessageTextInvalid),
		errors.Is(err, services.ErrCannotFollowSelf):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMessageNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotMessageOwner):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrCannotLikeOwnMessage):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUsernameOrEmailTaken),
		errors.Is(err, services.ErrAlreadyFollowing),
		errors.Is(err, services.ErrNotFollowing),
		errors.Is(err, services.ErrAlreadyLiked),
		errors.Is(err, services.ErrNotLiked):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, repository.ErrIntegrity):
		apierrors.Conflict(c, "")
	default:
		logrus.WithError(err).WithField("route", c.FullPath()).Error("request failed")
		apierrors.InternalError(c, "")
	}
}

// commit commits the request's unit of work and writes the error response
// when that fails.
func commit(c *gin.Context) bool {
	if err := middleware.GetUnitOfWork(c).Commit(); err != nil {
		respondServiceError(c, err)
		return false
	}
	return true
}

// requireUserID returns the logged-in user, answering 401 when there is none.
func requireUserID(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}

// pathID reads :name, answering 404 for malformed ids.
func pathID(c *gin.Context, name, notFound string) (uint64, bool) {
	id, ok := middleware.ParseID(c, name)
	if !ok {
		apierrors.NotFound(c, notFound)
		return 0, false
	}
	return id, true
}
