package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultListenAddr = ":8080"
	defaultDSN        = "roomshare.db"
	defaultJWTSecret  = "change-me-jwt-secret"
	defaultJWTTTL     = "168h" // 7 days, matches token lifetime issued on login
)

type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseDSN string
	JWTSecret   string
	JWTTTL      time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseDSN = getEnv("DATABASE_URL", defaultDSN)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	ttlRaw := getEnv("JWT_TTL", defaultJWTTTL)
	ttl, err := time.ParseDuration(ttlRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL value %q: %w", ttlRaw, err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be > 0")
	}
	cfg.JWTTTL = ttl

	if IsProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}

	return cfg, nil
}

// IsProdLike reports whether the app env names a production deployment.
func IsProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
