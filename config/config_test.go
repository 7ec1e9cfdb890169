package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_URL", "PG_URL", "REDIS_URL", "CORS_ALLOWED_ORIGINS", "ROOM_COUNT", "LOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 9, cfg.RoomCount)
	assert.Empty(t, cfg.RedisUrl)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_URL", "")
	t.Setenv("PG_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://desk.local")
	t.Setenv("ROOM_COUNT", "12")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "hoteldesk.db", cfg.DBUrl)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisUrl)
	assert.Equal(t, []string{"http://localhost:5173", "http://desk.local"}, cfg.AllowedOrigins)
	assert.Equal(t, 12, cfg.RoomCount)
}

func TestLoadConfigPGURLFallback(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_URL", "")
	t.Setenv("PG_URL", "postgres://localhost/hotel")

	cfg := LoadConfig()
	assert.Equal(t, "postgres://localhost/hotel", cfg.DBUrl)
}
