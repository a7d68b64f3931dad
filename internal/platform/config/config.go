// Package config loads application configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. It is loaded once in main and passed
// explicitly to the components that need it instead of being read ambiently.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// FrontendURL is the base URL embedded in verification and reset links.
	FrontendURL string

	// JWTSecret signs access tokens. TokenSecret keys the verification/reset
	// token HMAC; the two are kept separate so rotating one does not affect
	// the other.
	JWTSecret   string
	TokenSecret string

	// AccessTokenTTL bounds access token lifetime, RefreshTokenTTL the
	// refresh session lifetime, LinkTokenTTL the verification/reset window.
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	LinkTokenTTL    time.Duration

	// SMTP settings for outbound mail.
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present (development convenience; absence is
// not an error).
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenSecret:     os.Getenv("TOKEN_SECRET"),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		LinkTokenTTL:    getDuration("LINK_TOKEN_TTL", 72*time.Hour),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:        os.Getenv("SMTP_FROM"),
	}
}

// getEnv returns the value of key, or fallback when unset or empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses key as seconds, falling back on parse failure.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		slog.Warn("invalid duration value, using default", "key", key, "value", v)
		return fallback
	}
	return time.Duration(secs) * time.Second
}
