package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/redis"
)

const sessionContextKey = "wizard_session"

// SessionStore — хранилище сессий мастера
type SessionStore interface {
	GetSession(ctx context.Context, id string) (*ds.WizardSession, error)
}

// WizardSession загружает сессию по параметру :id в контекст запроса.
// Несуществующая или истекшая сессия - 404
func WizardSession(store SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		session, err := store.GetSession(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, redis.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"status":  "error",
					"message": "сессия не найдена или истекла",
				})
				return
			}
			logrus.Error("Error loading wizard session: ", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "ошибка загрузки сессии",
			})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// SessionFromContext извлекает сессию, загруженную WizardSession
func SessionFromContext(c *gin.Context) *ds.WizardSession {
	if v, exists := c.Get(sessionContextKey); exists {
		if s, ok := v.(*ds.WizardSession); ok {
			return s
		}
	}
	return nil
}
