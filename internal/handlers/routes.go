package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler-api/internal/middleware"
	"github.com/yukikurage/warbler-api/internal/services"
	"gorm.io/gorm"
)

// Services bundles what the handlers depend on.
type Services struct {
	Auth     *services.AuthService
	Social   *services.SocialService
	Messages *services.MessageService
}

// RegisterRoutes mounts the Warbler routes on r. Session middleware must
// already be installed.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	messageHandler := NewMessageHandler(svc.Messages, svc.Social)
	userHandler := NewUserHandler(svc.Social, svc.Messages)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Warbler API is running",
		})
	})

	app := r.Group("/")
	app.Use(middleware.UnitOfWork(db), middleware.LoadUser())
	{
		app.POST("/signup", authHandler.Signup)
		app.POST("/login", authHandler.Login)
		app.POST("/logout", authHandler.Logout)
		app.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)

		app.GET("/", middleware.RequireAuth(), messageHandler.Timeline)
	}

	messages := app.Group("/messages")
	{
		messages.POST("/new", middleware.RequireAuth(), messageHandler.CreateMessage)
		messages.GET("/:id", messageHandler.GetMessage)
		messages.POST("/:id/delete", middleware.RequireAuth(), middleware.RequireMessageOwner(svc.Messages), messageHandler.DeleteMessage)
		messages.POST("/:id/like", middleware.RequireAuth(), messageHandler.ToggleLike)
	}

	users := app.Group("/users")
	{
		users.GET("/:id", userHandler.GetUser)
		users.GET("/:id/following", middleware.RequireAuth(), userHandler.ListFollowing)
		users.GET("/:id/followers", middleware.RequireAuth(), userHandler.ListFollowers)
		users.GET("/:id/likes", middleware.RequireAuth(), userHandler.ListLikes)
		users.POST("/follow/:id", middleware.RequireAuth(), userHandler.Follow)
		users.POST("/stop-following/:id", middleware.RequireAuth(), userHandler.StopFollowing)
		users.POST("/profile", middleware.RequireAuth(), authHandler.UpdateProfile)
		users.POST("/delete", middleware.RequireAuth(), authHandler.DeleteAccount)
	}
}
