package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"codeberg.org/rolodex/server/internal/auth"
	"codeberg.org/rolodex/server/internal/avatar"
	"codeberg.org/rolodex/server/internal/cache"
	"codeberg.org/rolodex/server/internal/config"
	"codeberg.org/rolodex/server/internal/mailer"
	"codeberg.org/rolodex/server/rolodex/contacts"
	"codeberg.org/rolodex/server/rolodex/users"
)

// holds all dependencies and state for the API server
type Server struct {
	db          *pgxpool.Pool
	redis       *redis.Client
	config      *config.Config
	userRepo    *users.Repository
	contactRepo *contacts.Repository
	identities  *cache.IdentityStore
	resolver    *auth.Resolver
	flow        *auth.Flow
	mailer      *mailer.Mailer
	uploader    *avatar.Uploader
	router      *gin.Engine

	// per-client limits for the hot public endpoints
	loginLimit   gin.HandlerFunc
	mailLimit    gin.HandlerFunc
	profileLimit gin.HandlerFunc
}
