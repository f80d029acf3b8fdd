package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"codeberg.org/rolodex/server/internal/auth"
	"codeberg.org/rolodex/server/internal/avatar"
	"codeberg.org/rolodex/server/internal/cache"
	"codeberg.org/rolodex/server/internal/config"
	"codeberg.org/rolodex/server/internal/db"
	"codeberg.org/rolodex/server/internal/logger"
	"codeberg.org/rolodex/server/internal/mailer"
	"codeberg.org/rolodex/server/internal/ratelimit"
	"codeberg.org/rolodex/server/rolodex/contacts"
	"codeberg.org/rolodex/server/rolodex/users"
)

// limits applied to the endpoints that hit bcrypt or the mailer
const (
	loginRateLimit   = "10-M"
	mailRateLimit    = "5-M"
	profileRateLimit = "10-M"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		return nil, err
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	userRepo := users.NewRepository(pool)
	contactRepo := contacts.NewRepository(pool)

	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		redisClient.Close()
		pool.Close()
		return nil, err
	}

	accountMailer, err := mailer.New(cfg, codec)
	if err != nil {
		redisClient.Close()
		pool.Close()
		return nil, err
	}

	uploader, err := avatar.NewUploader(ctx, cfg)
	if err != nil {
		redisClient.Close()
		pool.Close()
		return nil, err
	}

	identities := cache.NewIdentityStore(redisClient)
	resolver := auth.NewResolver(codec, identities, userRepo)

	accessTTL := time.Duration(cfg.JWTExpirationSeconds) * time.Second
	flow := auth.NewFlow(userRepo, codec, accountMailer, cfg.BaseURL, accessTTL)

	loginLimit, err := ratelimit.Middleware(redisClient, "login", loginRateLimit)
	if err != nil {
		redisClient.Close()
		pool.Close()
		return nil, err
	}

	mailLimit, err := ratelimit.Middleware(redisClient, "mail", mailRateLimit)
	if err != nil {
		redisClient.Close()
		pool.Close()
		return nil, err
	}

	profileLimit, err := ratelimit.Middleware(redisClient, "profile", profileRateLimit)
	if err != nil {
		redisClient.Close()
		pool.Close()
		return nil, err
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		db:           pool,
		redis:        redisClient,
		config:       cfg,
		userRepo:     userRepo,
		contactRepo:  contactRepo,
		identities:   identities,
		resolver:     resolver,
		flow:         flow,
		mailer:       accountMailer,
		uploader:     uploader,
		router:       gin.New(),
		loginLimit:   loginLimit,
		mailLimit:    mailLimit,
		profileLimit: profileLimit,
	}

	server.router.Use(gin.Recovery())
	RegisterRoutes(server.router, server)

	logger.Info("server dependencies initialized",
		"environment", cfg.Environment,
		"base_url", cfg.BaseURL,
	)

	return server, nil
}
