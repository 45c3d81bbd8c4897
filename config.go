package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"storefront-service/cache"
	"storefront-service/database"
	"storefront-service/middleware"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/sender"
	"storefront-service/storage"

	"github.com/joho/godotenv"
)

const (
	dbSecretName    = "storefront/DB_CREDENTIALS"
	adminSecretName = "storefront/ADMIN_CREDENTIALS"
)

type Config struct {
	Port              string
	Env               string
	Postgres          database.PostgresConfig
	RedisURL          string
	SessionTTL        time.Duration
	CatalogCacheTTL   time.Duration
	JWTSecret         string
	TokenTTL          time.Duration
	AdminEmail        string
	AdminPasswordHash string
	ImageBucket       string
	ImageBaseURL      string
	OrderTopicArn     string
	SMTP              sender.SMTPConfig
	AllowedOrigins    []string
	CloudWatchEnabled bool
	SecureCookie      bool
}

// secretSource is the part of the Secrets Manager client LoadConfig needs.
type secretSource interface {
	GetSecretMap(ctx context.Context, name string) (map[string]string, error)
}

// LoadConfig reads the environment and, with AWS_USE_SECRETS=true, lets
// Secrets Manager override the database and admin credentials.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var secrets secretSource
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			secrets = aws_pkg.NewSecretsClient(awsCfg)
		}
	}
	return loadConfig(secrets)
}

func loadConfig(secrets secretSource) (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),
		Postgres: database.PostgresConfig{
			URL:      os.Getenv("DATABASE_URL"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "Africa/Algiers"),
		},
		RedisURL:          os.Getenv("REDIS_URL"),
		SessionTTL:        getDuration("SESSION_TTL", 30*24*time.Hour),
		CatalogCacheTTL:   getDuration("CATALOG_CACHE_TTL", cache.DefaultCacheTTL),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getDuration("JWT_TTL", 24*time.Hour),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		ImageBucket:       getEnv("IMAGE_BUCKET", storage.DefaultBucket),
		ImageBaseURL:      os.Getenv("IMAGE_PUBLIC_BASE_URL"),
		OrderTopicArn:     os.Getenv("ORDER_SNS_TOPIC_ARN"),
		SMTP: sender.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		AllowedOrigins:    splitList(os.Getenv("ALLOWED_ORIGINS")),
		CloudWatchEnabled: os.Getenv("CLOUDWATCH_ENABLED") == "true",
		SecureCookie:      os.Getenv("SECURE_COOKIES") == "true",
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = middleware.DefaultAllowedOrigins
	}
	if secrets != nil {
		applySecrets(cfg, secrets)
	}

	if cfg.Postgres.URL == "" && (cfg.Postgres.User == "" || cfg.Postgres.Password == "" || cfg.Postgres.DBName == "" || cfg.Postgres.Host == "") {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// applySecrets overrides credentials with the values found in Secrets
// Manager. Missing secrets leave the environment values in place.
func applySecrets(cfg *Config, secrets secretSource) {
	ctx := context.Background()
	if m, err := secrets.GetSecretMap(ctx, dbSecretName); err == nil {
		override(&cfg.Postgres.User, m["POSTGRES_USER"])
		override(&cfg.Postgres.Password, m["POSTGRES_PASSWORD"])
		override(&cfg.Postgres.DBName, m["POSTGRES_DB"])
		override(&cfg.Postgres.Host, m["POSTGRES_HOST"])
		override(&cfg.Postgres.Port, m["POSTGRES_PORT"])
	}
	if m, err := secrets.GetSecretMap(ctx, adminSecretName); err == nil {
		override(&cfg.AdminEmail, m["ADMIN_EMAIL"])
		override(&cfg.AdminPasswordHash, m["ADMIN_PASSWORD_HASH"])
		override(&cfg.JWTSecret, m["JWT_SECRET"])
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
