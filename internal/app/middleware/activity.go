package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/repository"
)

// ActivityMiddleware обновляет отметку последней активности пользователя.
// Работает best-effort после обработки запроса, сбой записи только логируется.
func ActivityMiddleware(r *repository.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		userID, exists := c.Get("userID")
		if !exists {
			return
		}
		id, ok := userID.(uint)
		if !ok {
			return
		}

		if err := r.UpdateLastActivity(id); err != nil {
			logrus.WithError(err).Warn("cannot update last activity")
		}
	}
}
