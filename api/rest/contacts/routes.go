package contacts

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/rolodex/server/internal/auth"
	"codeberg.org/rolodex/server/rolodex/contacts"
)

// registers all contact routes, every one behind authentication
func RegisterRoutes(router *gin.RouterGroup, resolver *auth.Resolver, repo *contacts.Repository) {
	contactGroup := router.Group("/contacts")
	contactGroup.Use(auth.RequireAuth(resolver))
	{
		contactGroup.GET("", ListHandler(repo))
		contactGroup.POST("", CreateHandler(repo))
		contactGroup.GET("/search", SearchHandler(repo))
		contactGroup.GET("/upcoming-birthdays", UpcomingBirthdaysHandler(repo))
		contactGroup.GET("/:id", GetHandler(repo))
		contactGroup.PUT("/:id", UpdateHandler(repo))
		contactGroup.DELETE("/:id", DeleteHandler(repo))
	}
}
