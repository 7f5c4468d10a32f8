package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tutorq/internal/response"
)

// ContextUser is the gin context key holding the authenticated subject.
const ContextUser = "user"

// AuthMiddleware проверяет валидность access токена
func AuthMiddleware(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		// браузерный websocket не умеет ставить заголовки
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "Требуется авторизация",
			})
			return
		}

		subject, err := tokens.ParseAccess(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Неверный или просроченный токен",
			})
			return
		}

		c.Set(ContextUser, subject)
		c.Next()
	}
}
