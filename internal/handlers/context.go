package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"neuroforge-backend/internal/middleware"
)

// currentUserID returns the authenticated user set by AuthMiddleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	s, ok := userIDStr.(string)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
