package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "80", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, time.Minute, cfg.Recommend.CacheTTL)
	assert.True(t, cfg.Recommend.Deduplicate)
	assert.True(t, cfg.Recommend.ExcludeRated)
	assert.Equal(t, uint(5), cfg.Rating.MaxRetries)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[server]
port = "8080"
mode = "test"

[database]
driver = "sqlite"
dsn = "file:local.db"

[recommend]
cache_ttl = "30s"
deduplicate = false

[rating]
max_retries = 3
`), 0o600)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.IsTestMode())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:local.db", cfg.Database.DataSourceName())
	assert.Equal(t, 30*time.Second, cfg.Recommend.CacheTTL)
	assert.False(t, cfg.Recommend.Deduplicate)
	assert.True(t, cfg.Recommend.ExcludeRated)
	assert.Equal(t, uint(3), cfg.Rating.MaxRetries)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DB_USERNAME", "tourist")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("TEST_MODE", "test")
	t.Setenv("TOURISM_SERVER_PORT", "9000")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "tourism_recommender_db_test", cfg.Database.Name)
	assert.Equal(t,
		"host=localhost user=tourist password=secret dbname=tourism_recommender_db_test port=5432 sslmode=disable",
		cfg.Database.DataSourceName())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("TOURISM_DATABASE_DRIVER", "oracle")
	_, err := LoadConfig("")
	assert.True(t, errors.Is(err, errors.NotValid))
}
