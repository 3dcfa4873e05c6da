package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/dto"
	apierrors "github.com/yukikurage/warbler-api/internal/errors"
	"github.com/yukikurage/warbler-api/internal/metrics"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/repository"
	"github.com/yukikurage/warbler-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func startSession(c *gin.Context, userID uint64) bool {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return false
	}
	return true
}

func endSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// Signup registers a new user and logs them in.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Username string  `json:"username" binding:"required,max=50"`
		Email    string  `json:"email" binding:"required,email"`
		Password string  `json:"password"`
		ImageURL *string `json:"image_url"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(middleware.GetUnitOfWork(c), services.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := middleware.GetUnitOfWork(c).Commit(); err != nil {
		if errors.Is(err, repository.ErrIntegrity) {
			apierrors.Conflict(c, services.ErrUsernameOrEmailTaken.Error())
			return
		}
		respondServiceError(c, err)
		return
	}

	if !startSession(c, user.ID) {
		return
	}

	metrics.Signups.Inc()
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user signed up")
	c.JSON(http.StatusCreated, dto.ToAccountDTO(*user))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(middleware.GetUnitOfWork(c), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.LoginFailure.Inc()
			logrus.WithField("username", req.Username).Warn("login failed")
		}
		respondServiceError(c, err)
		return
	}

	if !startSession(c, user.ID) {
		return
	}

	metrics.LoginSuccess.Inc()
	logrus.WithField("user_id", user.ID).Info("user logged in")
	c.JSON(http.StatusOK, dto.ToAccountDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := endSession(c); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "You have successfully logged out.",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(middleware.GetUnitOfWork(c), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*user))
}

// UpdateProfile edits the current user's profile. The current password
// must be supplied again.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	type ProfileRequest struct {
		Password       string  `json:"password" binding:"required"`
		Username       *string `json:"username" binding:"omitempty,min=1,max=50"`
		Email          *string `json:"email" binding:"omitempty,email"`
		ImageURL       *string `json:"image_url"`
		HeaderImageURL *string `json:"header_image_url"`
		Bio            *string `json:"bio"`
		Location       *string `json:"location"`
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(middleware.GetUnitOfWork(c), userID, req.Password, services.ProfileInput{
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !commit(c) {
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*user))
}

// DeleteAccount removes the current user with everything they own and ends
// the session.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.authService.DeleteAccount(middleware.GetUnitOfWork(c), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	if !commit(c) {
		return
	}

	if err := endSession(c); err != nil {
		logrus.WithError(err).Error("failed to clear session after account deletion")
	}

	logrus.WithField("user_id", userID).Info("account deleted")
	c.JSON(http.StatusOK, gin.H{
		"message": "Account deleted",
	})
}
