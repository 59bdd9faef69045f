package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the auth endpoints and staff account management.
// Guests self-register; staff accounts are created by a super admin only.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware, adminMiddleware, managerMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	g.GET("/me", authMiddleware, h.Me)

	usersGroup := g.Group("/users")
	usersGroup.Use(authMiddleware)
	{
		usersGroup.POST("", adminMiddleware, h.CreateStaff)
		usersGroup.GET("", managerMiddleware, h.List)
		usersGroup.GET("/:id", managerMiddleware, h.Get)
	}
}
