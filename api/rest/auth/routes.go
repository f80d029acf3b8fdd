package auth

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/rolodex/server/internal/auth"
)

// registers all authentication routes. The rate limit middlewares guard
// the endpoints that hit bcrypt or the mailer.
func RegisterRoutes(router *gin.RouterGroup, flow *auth.Flow, loginLimit, mailLimit gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", mailLimit, RegisterHandler(flow))
		authGroup.POST("/login", loginLimit, LoginHandler(flow))
		authGroup.GET("/confirm_email/:token", ConfirmEmailHandler(flow))
		authGroup.POST("/request_reset", mailLimit, RequestResetHandler(flow))
	}
}
