package middleware

import (
	"net/http"

	"cabin-backend/models"
	"cabin-backend/services"
	"cabin-backend/utils"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// Auth rejects requests without a verifiable session and stores the
// resolved user on the context for handlers downstream.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		user, err := auth.CurrentUser(token)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		c.Set(currentUserKey, *user)
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth; ok is false on routes that
// did not pass through it.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
