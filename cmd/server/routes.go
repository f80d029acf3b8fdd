package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"codeberg.org/rolodex/server/api/rest/admin"
	"codeberg.org/rolodex/server/api/rest/auth"
	"codeberg.org/rolodex/server/api/rest/contacts"
	"codeberg.org/rolodex/server/api/rest/health"
	"codeberg.org/rolodex/server/api/rest/users"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.flow, server.loginLimit, server.mailLimit)
		users.RegisterRoutes(v1, server.resolver, server.userRepo, server.uploader, server.identities, server.profileLimit)
		contacts.RegisterRoutes(v1, server.resolver, server.contactRepo)
		admin.RegisterRoutes(v1, server.resolver, server.userRepo)
	}
}
