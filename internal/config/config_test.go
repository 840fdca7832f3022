package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
database:
  host: db.internal
  port: 3307
  user: bazaar
  password: secret
  name: bazaar_prod
redis:
  host: cache.internal
  port: 6380
  db: 2
jwt_secret: super-secret
allowed_origins:
  - https://admin.example.com
paths:
  uploads: /srv/uploads
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "/srv/uploads", cfg.UploadsDir())
	assert.Equal(t, []string{"https://admin.example.com"}, cfg.AllowedOrigins)

	dsn := cfg.Database.DSNValue()
	assert.Contains(t, dsn, "bazaar:secret@tcp(db.internal:3307)/bazaar_prod")
	assert.Contains(t, dsn, "parseTime=true")

	assert.Equal(t, "redis://cache.internal:6380/2", cfg.Redis.URLValue())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "port: 3000\n"))
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "uploads", cfg.UploadsDir())
	assert.Contains(t, cfg.Database.DSNValue(), "/bazaar?")
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URLValue())
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	_, err := Load(writeConfig(t, "port: 99999\n"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "port: 3000\nbogus_key: true\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestExplicitDSNWins(t *testing.T) {
	cfg := Default()
	cfg.Database.DSN = "user:pw@tcp(10.0.0.1:3306)/other"
	assert.Equal(t, "user:pw@tcp(10.0.0.1:3306)/other", cfg.Database.DSNValue())
}
