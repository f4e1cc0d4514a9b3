package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/config"
)

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"App.Name", cfg.App.Name, "GoBeans"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Debug", cfg.App.Debug, true},
		{"App.Port", cfg.App.Port, "8000"},
		{"App.ShutdownTimeout", cfg.App.ShutdownTimeout, 5 * time.Second},
		{"Beans.ManifestDir", cfg.Beans.ManifestDir, "bean-configurations"},
		{"Beans.Inspect", cfg.Beans.Inspect, false},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Log.Format", cfg.Log.Format, "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_SHUTDOWN_TIMEOUT", "1")
	t.Setenv("BEANS_MANIFEST_DIR", "manifests")
	t.Setenv("BEANS_INSPECT", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.Load()

	assert.Equal(t, "MyApp", cfg.App.Name)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "manifests", cfg.Beans.ManifestDir)
	assert.True(t, cfg.Beans.Inspect)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format, "production defaults to json logs")
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BEANS_MANIFEST_DIR=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BEANS_MANIFEST_DIR") })

	cfg := config.Load(path)
	assert.Equal(t, "from-file", cfg.Beans.ManifestDir)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("APP_DEBUG", "notabool")
	t.Setenv("APP_SHUTDOWN_TIMEOUT", "soon")

	cfg := config.Load()
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 5*time.Second, cfg.App.ShutdownTimeout)
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestValidate_DefaultsPass(t *testing.T) {
	assert.NoError(t, config.Load().Validate())
}

func TestValidate_ReportsEveryInvalidField(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("APP_PORT", "99999")
	t.Setenv("LOG_FORMAT", "xml")

	err := config.Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The selected APP_ENV is invalid.")
	assert.Contains(t, err.Error(), "The APP_PORT must be between 1 and 65535.")
	assert.Contains(t, err.Error(), "The selected LOG_FORMAT is invalid.")
}
