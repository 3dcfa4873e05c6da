package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/repository"
	"gorm.io/gorm"
)

// UnitOfWork gives each request its own unit of work. Whatever the handler
// has not committed is rolled back when it returns.
func UnitOfWork(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uow := repository.NewUnitOfWork(c.Request.Context(), db)
		c.Set(constants.ContextKeyUnitOfWork, uow)

		defer func() {
			if err := uow.Rollback(); err != nil {
				logrus.WithError(err).WithField("path", c.FullPath()).Error("failed to roll back request")
			}
		}()

		c.Next()
	}
}

// GetUnitOfWork returns the request's unit of work.
func GetUnitOfWork(c *gin.Context) *repository.UnitOfWork {
	return c.MustGet(constants.ContextKeyUnitOfWork).(*repository.UnitOfWork)
}
