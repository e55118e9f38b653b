package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"neuroforge-backend/internal/models"
)

const UserIDKey = "user_id"

// AuthMiddleware accepts the session cookie or an "Authorization: Bearer"
// header and stores the user id under UserIDKey.
func AuthMiddleware(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := SessionToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "Não autenticado",
			})
			return
		}

		userID, err := sessions.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "invalid session",
				Message: err.Error(),
			})
			return
		}

		c.Set(UserIDKey, userID.String())
		c.Next()
	}
}

// SessionToken returns the session token from the cookie or the Bearer header.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	// Extract token from "Bearer <token>"
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
