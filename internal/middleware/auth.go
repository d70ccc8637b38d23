// Package middleware содержит Gin-middleware сервиса: логирование запросов,
// проверка демо-токена и ограничение частоты запросов.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamify-server/internal/auth"
	"gamify-server/internal/domain"
)

// ContextUserIDKey - ключ, под которым userId из токена кладется в контекст Gin.
const ContextUserIDKey = "user_id"

// unauthorized отдает единый ответ 401, не раскрывая причину отказа.
func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, domain.ErrorResponse{
		Code:    domain.ErrCodeUnauthorized,
		Message: "Invalid or expired token",
	})
}

// RequireDemoToken проверяет заголовок Authorization: Bearer <token>.
// При успехе кладет user_id в контекст запроса.
func RequireDemoToken(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Authorization header missing", zap.String("path", c.Request.URL.Path))
			unauthorized(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			unauthorized(c)
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			log.Warn("Demo token validation failed", zap.Error(err))
			unauthorized(c)
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserIDFromContext возвращает userId, установленный RequireDemoToken.
func UserIDFromContext(c *gin.Context) string {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if userID, ok := v.(string); ok {
			return userID
		}
	}
	return auth.DefaultUserID
}
