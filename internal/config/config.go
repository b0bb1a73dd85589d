package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Avatar storage backends.
const (
	AvatarStoreDisk   = "disk"
	AvatarStoreSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	CookieSecure bool
	TrustProxy   bool
	BcryptCost   int
	UploadDir    string
	AvatarStore  string
	PageSize     int
	LogLevel     slog.Level
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:         env("PORT", "8080"),
		DatabasePath: env("DATABASE_PATH", "matchbook.db"),
		JWTSecret:    getenv("JWT_SECRET"),
		// Default to secure cookies; disable only for local development.
		CookieSecure: getenv("COOKIE_SECURE") != "false",
		// Forwarded client addresses are ignored unless a proxy sets them.
		TrustProxy:  getenv("TRUST_PROXY") == "true",
		UploadDir:   env("UPLOAD_DIR", "uploads"),
		AvatarStore: strings.ToLower(env("AVATAR_STORE", AvatarStoreDisk)),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	var err error
	if cfg.BcryptCost, err = intInRange(env("BCRYPT_COST", "12"), "BCRYPT_COST", 4, 14); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = intInRange(env("PAGE_SIZE", "10"), "PAGE_SIZE", 1, 100); err != nil {
		return nil, err
	}

	switch cfg.AvatarStore {
	case AvatarStoreDisk, AvatarStoreSQLite:
	default:
		return nil, fmt.Errorf("AVATAR_STORE must be %q or %q, got %q", AvatarStoreDisk, AvatarStoreSQLite, cfg.AvatarStore)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

func intInRange(raw, name string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", name, lo, hi, n)
	}
	return n, nil
}
