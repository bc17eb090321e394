package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ims", cfg.App.Name)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, time.UTC, cfg.App.Location)
	assert.Equal(t, 5*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, "seed", cfg.Data.SeedDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Features.StaffReviewedWithdrawals)
	assert.False(t, cfg.Features.BcryptCredentials)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: campus-ims
  shutdown_timeout: 30s
data:
  dir: /var/lib/ims
logging:
  level: debug
features:
  staff_reviewed_withdrawals: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "campus-ims", cfg.App.Name)
	assert.Equal(t, 30*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "/var/lib/ims", cfg.Data.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Features.StaffReviewedWithdrawals)
	assert.Equal(t, "seed", cfg.Data.SeedDir, "unset keys keep defaults")
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")
	t.Setenv("IMS_LOGGING_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_MissingNamedFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidLevelRejected(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: verbose\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "logging.level")
}

func TestLoad_InvalidTimezoneRejected(t *testing.T) {
	path := writeConfig(t, "app:\n  timezone: Mars/Olympus\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "app.timezone")
}

func TestLoad_EmptyDataDirRejected(t *testing.T) {
	path := writeConfig(t, `data:
  dir: ""
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "data.dir")
}
