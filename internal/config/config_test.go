package config

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = strings.Repeat("s", 32)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envMap(map[string]string{"JWT_SECRET": secret}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "matchbook.db", cfg.DatabasePath)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, AvatarStoreDisk, cfg.AvatarStore)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(envMap(map[string]string{
		"JWT_SECRET":    secret,
		"PORT":          "9000",
		"COOKIE_SECURE": "false",
		"TRUST_PROXY":   "true",
		"BCRYPT_COST":   "4",
		"AVATAR_STORE":  "SQLite",
		"PAGE_SIZE":     "25",
		"LOG_LEVEL":     "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.CookieSecure)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, AvatarStoreSQLite, cfg.AvatarStore)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret": {},
		"short secret":   {"JWT_SECRET": "short"},
		"cost too low":   {"JWT_SECRET": secret, "BCRYPT_COST": "3"},
		"cost not int":   {"JWT_SECRET": secret, "BCRYPT_COST": "high"},
		"page size zero": {"JWT_SECRET": secret, "PAGE_SIZE": "0"},
		"unknown store":  {"JWT_SECRET": secret, "AVATAR_STORE": "s3"},
		"unknown level":  {"JWT_SECRET": secret, "LOG_LEVEL": "loud"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := load(envMap(env))
			assert.Error(t, err)
		})
	}
}
