package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultJWTAlgorithm         = "HS256"
	defaultJWTExpirationSeconds = 900
	defaultMailPort             = 587
	defaultS3Region             = "us-east-1"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		Environment:  os.Getenv("ENVIRONMENT"),
		BaseURL:      os.Getenv("BASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTAlgorithm: os.Getenv("JWT_ALGORITHM"),
		MailServer:   os.Getenv("MAIL_SERVER"),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: os.Getenv("MAIL_FROM_NAME"),
		S3Endpoint:   os.Getenv("S3_ENDPOINT"),
		S3Region:     os.Getenv("S3_REGION"),
		S3Bucket:     os.Getenv("S3_BUCKET"),
		S3AccessKey:  os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:  os.Getenv("S3_SECRET_KEY"),
		S3PublicURL:  os.Getenv("S3_PUBLIC_URL"),
	}

	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_URL":    cfg.RedisURL,
		"JWT_SECRET":   cfg.JWTSecret,
		"MAIL_SERVER":  cfg.MailServer,
		"MAIL_FROM":    cfg.MailFrom,
		"S3_BUCKET":    cfg.S3Bucket,
	}

	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("%s environment variable is required", name)
		}
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}

	if cfg.JWTAlgorithm == "" {
		cfg.JWTAlgorithm = defaultJWTAlgorithm
	}

	cfg.JWTExpirationSeconds = intFromEnv("JWT_EXPIRATION_SECONDS", defaultJWTExpirationSeconds)
	cfg.MailPort = intFromEnv("MAIL_PORT", defaultMailPort)

	if cfg.S3Region == "" {
		cfg.S3Region = defaultS3Region
	}

	return cfg, nil
}

// reads an integer environment variable with a fallback
func intFromEnv(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}
