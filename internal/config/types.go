package config

// Config holds all runtime configuration loaded from the environment
type Config struct {
	DatabaseURL string
	RedisURL    string
	Environment string
	BaseURL     string

	// token signing
	JWTSecret            string
	JWTAlgorithm         string
	JWTExpirationSeconds int

	// outbound email
	MailServer   string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	MailFromName string

	// avatar object storage
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}
