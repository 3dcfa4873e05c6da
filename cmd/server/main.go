package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/warbler-api/internal/config"
	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/database"
	"github.com/yukikurage/warbler-api/internal/handlers"
	"github.com/yukikurage/warbler-api/internal/logger"
	"github.com/yukikurage/warbler-api/internal/metrics"
	"github.com/yukikurage/warbler-api/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if !cfg.UseRedisSessions() {
		logrus.Warn("REDIS_HOST not set, keeping sessions in signed cookies")
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	return redisStore.NewStore(
		10,    // Redis pool size
		"tcp", // network type
		cfg.RedisHost+":"+cfg.RedisPort,
		"", // username (empty for default user)
		"", // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := database.MigrateDatabase(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create session store")
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})

	r := gin.New()
	r.Use(gin.Recovery(), metrics.Instrument())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterRoutes(r, db, handlers.Services{
		Auth:     services.NewAuthService(services.NewCredentials(bcrypt.DefaultCost)),
		Social:   services.NewSocialService(),
		Messages: services.NewMessageService(),
	})

	logrus.WithField("port", cfg.Port).Info("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
