package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the server.
type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	LogFile         string
	LogLevel        string
	BlacklistFile   string
	CaptchaSecret   string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:            strings.TrimSpace(os.Getenv("SERVER_ADDR")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AccessTokenTTL:  parseDuration(os.Getenv("ACCESS_TOKEN_TTL")),
		RefreshTokenTTL: parseDuration(os.Getenv("REFRESH_TOKEN_TTL")),
		LogFile:         strings.TrimSpace(os.Getenv("LOG_FILE")),
		LogLevel:        strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		BlacklistFile:   strings.TrimSpace(os.Getenv("PASSWORD_BLACKLIST_FILE")),
		CaptchaSecret:   strings.TrimSpace(os.Getenv("RECAPTCHA_SECRET")),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "taskmanager.db"
	}
	if cfg.AccessTokenTTL == 0 {
		cfg.AccessTokenTTL = 15 * time.Minute
	}
	if cfg.RefreshTokenTTL == 0 {
		cfg.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func parseDuration(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
