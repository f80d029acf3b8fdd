package admin

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/rolodex/server/internal/auth"
)

// registers all admin routes behind authentication plus a role check
func RegisterRoutes(router *gin.RouterGroup, resolver *auth.Resolver, store UserStore) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(auth.RequireAuth(resolver), auth.RequireAdmin())
	{
		adminGroup.DELETE("/users/:id", DeleteUserHandler(store))
		adminGroup.PATCH("/users/:id/role", UpdateRoleHandler(store))
	}
}
