package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Equal(t, DefaultAppConfig.Web.Port, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cranweb.yml")
	require.NoError(t, os.WriteFile(path, []byte("web:\n  port: 9999\n"), 0o644))
	cfg := LoadConfig(path)
	assert.Equal(t, 9999, cfg.Web.Port)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CRANWEB_WEB_PORT", "8088")
	cfg := LoadConfig("")
	assert.Equal(t, 8088, cfg.Web.Port)
}

func TestWriteDefaultConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cranweb.yml")
	require.NoError(t, WriteDefaultConfig(path))
	cfg := LoadConfig(path)
	assert.Equal(t, DefaultAppConfig.Web.Port, cfg.Web.Port)
	assert.Equal(t, DefaultAppConfig.Storage.MaxVideoSize, cfg.Storage.MaxVideoSize)
}
