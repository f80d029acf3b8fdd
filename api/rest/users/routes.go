package users

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/rolodex/server/internal/auth"
)

// registers all user profile routes, every one behind authentication
func RegisterRoutes(router *gin.RouterGroup, resolver *auth.Resolver, store UserStore, uploader AvatarStore, cache auth.TokenCache, profileLimit gin.HandlerFunc) {
	userGroup := router.Group("/users")
	userGroup.Use(auth.RequireAuth(resolver))
	{
		userGroup.GET("/me", profileLimit, MeHandler())
		userGroup.PATCH("/avatar", profileLimit, UpdateAvatarHandler(store, uploader, cache))
		userGroup.PATCH("/password", UpdatePasswordHandler(store, cache))
	}
}
