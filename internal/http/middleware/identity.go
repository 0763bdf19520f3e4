package middleware

import (
	"net/http"

	"mining_webapp/internal/repository"

	"github.com/gin-gonic/gin"
)

// Identity resolves the acting user and stores its id under user_id in
// the gin context. There is no session layer; every request acts as the
// configured demo user, the same way the original single-player client
// works.
func Identity(users repository.UserRepository, demoUsername string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetByUsername(c.Request.Context(), demoUsername)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.Set("user_id", user.ID)
		c.Next()
	}
}
