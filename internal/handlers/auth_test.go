package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/database"
	"github.com/yukikurage/warbler-api/internal/dto"
	"github.com/yukikurage/warbler-api/internal/repository"
	"github.com/yukikurage/warbler-api/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	authService := services.NewAuthService(services.NewCredentials(bcrypt.MinCost))
	handler := NewAuthHandler(authService)

	user, err := authService.Signup(services.SignupInput{
		Username: "current-user",
		Email:    "current-user@test.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(user).Error)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	uow := repository.NewUnitOfWork(context.Background(), db)
	t.Cleanup(func() {
		_ = uow.Rollback()
	})
	c.Set(constants.ContextKeyUnitOfWork, uow)
	c.Set(constants.ContextKeyUserID, user.ID)

	handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AccountDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Username, response.Username)
	require.Equal(t, constants.DefaultImageURL, response.ImageURL)
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NewAuthHandler(nil).GetCurrentUser(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
