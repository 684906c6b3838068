package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("refuses to start without MONGO_URL", func(t *testing.T) {
		t.Setenv("MONGO_URL", "")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "MONGO_URL")
	})

	t.Run("applies local development defaults", func(t *testing.T) {
		t.Setenv("MONGO_URL", "mongodb://localhost:27017")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", cfg.ServerHost)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "biz_atlas", cfg.DBName)
		assert.Equal(t, 5*time.Minute, cfg.ContextCacheTTL)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("environment overrides win", func(t *testing.T) {
		t.Setenv("MONGO_URL", "mongodb://db.internal:27017")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DB_NAME", "reporting")
		t.Setenv("CONTEXT_CACHE_TTL", "30s")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "mongodb://db.internal:27017", cfg.MongoURL)
		assert.Equal(t, "9090", cfg.ServerPort)
		assert.Equal(t, "reporting", cfg.DBName)
		assert.Equal(t, 30*time.Second, cfg.ContextCacheTTL)
	})
}
