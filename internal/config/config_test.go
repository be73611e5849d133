package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("STORE_BACKEND", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8000", cfg.Server.Port)
	require.Equal(t, BackendMemory, cfg.Store.Backend)
	require.Equal(t, "todo", cfg.Store.MongoDB.Database)
	require.Equal(t, 30*time.Second, cfg.Cache.ActivityTTL)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	require.Empty(t, cfg.Redis.Addr())
}

func TestLoadConfigPicksMongoWhenURISet(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "todo_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, BackendMongo, cfg.Store.Backend)
	require.Equal(t, "todo_test", cfg.Store.MongoDB.Database)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigRejectsBadBackend(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("POSTGRES_DSN", "")

	t.Setenv("STORE_BACKEND", "postgres")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("STORE_BACKEND", "sqlite")
	_, err = LoadConfig()
	require.ErrorContains(t, err, "unknown STORE_BACKEND")
}
