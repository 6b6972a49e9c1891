package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ternakku.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app: ternakku-dev
http:
  addr: ":9000"
  read_timeout: 7s
db:
  driver: sqlite
  dsn: "file:dev.db"
  auto_migrate: true
blob:
  driver: s3
  s3:
    bucket: cow-photos
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "8181")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ternakku-dev", cfg.App)
	assert.Equal(t, ":8181", cfg.HTTP.Addr)
	assert.Equal(t, 7*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "cow-photos", cfg.Blob.S3.Bucket)
	assert.Equal(t, "us-east-1", cfg.Blob.S3.Region)
}

func TestApplyEnv_DSNImpliesPostgres(t *testing.T) {
	cfg := Default()
	env := map[string]string{"DB_DSN": "postgres://farm@db/ternak"}
	require.NoError(t, applyEnv(&cfg, func(k string) string { return env[k] }))
	assert.Equal(t, "postgres", cfg.DB.Driver)
}

func TestApplyEnv_BadValues(t *testing.T) {
	cfg := Default()
	env := map[string]string{"REFRESH_RATE_PER_MIN": "-3"}
	require.Error(t, applyEnv(&cfg, func(k string) string { return env[k] }))

	cfg = Default()
	env = map[string]string{"DB_AUTO_MIGRATE": "maybe"}
	require.Error(t, applyEnv(&cfg, func(k string) string { return env[k] }))
}

func TestApplyEnv_TrustProxy(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.HTTP.TrustProxy)

	env := map[string]string{"TRUST_PROXY": "true"}
	require.NoError(t, applyEnv(&cfg, func(k string) string { return env[k] }))
	assert.True(t, cfg.HTTP.TrustProxy)

	cfg = Default()
	env = map[string]string{"TRUST_PROXY": "sometimes"}
	require.Error(t, applyEnv(&cfg, func(k string) string { return env[k] }))
}
