package auth

import "github.com/gin-gonic/gin"

// Gin context keys written by AuthRequired.
const (
	userIDKey    = "userID"
	userEmailKey = "userEmail"
	userRoleKey  = "userRole"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func GetUserEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}

// GetUserRole returns the role carried by the access token. RequireRoles re-reads it from the store.
func GetUserRole(c *gin.Context) string {
	return c.GetString(userRoleKey)
}
