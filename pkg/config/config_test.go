package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("READY_TIMEOUT_SECONDS", "")
	cfg, err := Load()
	assert.NilError(t, err)
	assert.Equal(t, cfg.Port, "8080")
	assert.Equal(t, cfg.ReadyTimeoutSeconds, 1)
	assert.Equal(t, cfg.UploadMaxBytes, int64(5<<20))
	assert.Check(t, is.DeepEqual(cfg.CORSOrigins, []string{"*"}))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "port: \"9000\"\njwt_issuer: from-file\nai_timeout_seconds: 5\ncors_origins:\n  - https://a.example\n"
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7000")
	t.Setenv("JWT_ISSUER", "")

	cfg, err := Load()
	assert.NilError(t, err)
	assert.Equal(t, cfg.Port, "7000")
	assert.Equal(t, cfg.JWTIssuer, "from-file")
	assert.Equal(t, cfg.AITimeoutSeconds, 5)
	assert.Check(t, is.DeepEqual(cfg.CORSOrigins, []string{"https://a.example"}))
}

func TestCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	cfg, err := Load()
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(cfg.CORSOrigins, []string{"https://a.example", "https://b.example"}))
}

func TestMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.ErrorContains(t, err, "read config file")
}
