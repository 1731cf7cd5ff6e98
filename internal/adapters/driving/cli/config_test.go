package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/claims-cli/internal/adapters/driven/storage/memory"
)

func TestConfigShowCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Config file:       /home/user/.claims/config.toml")
	assert.Contains(t, out, "Base URL:")
	assert.Contains(t, out, "Max upload size:")
}

func TestConfigSetCmd(t *testing.T) {
	ts := setupTestServices(t)
	before := ts.settings.settings

	out, err := execute(t, "config", "set", "--base-url", "https://claims.example.com", "--timeout", "2m")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved.")
	require.Len(t, ts.settings.saved, 1)
	saved := ts.settings.saved[0]
	assert.Equal(t, "https://claims.example.com", saved.BaseURL)
	assert.Equal(t, 2*time.Minute, saved.Timeout)
	assert.Equal(t, before.MaxUploadBytes, saved.MaxUploadBytes)
	assert.Equal(t, before.ProgressInterval, saved.ProgressInterval)
}

func TestConfigSetCmd_NothingToChange(t *testing.T) {
	ts := setupTestServices(t)

	_, err := execute(t, "config", "set")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
	assert.Empty(t, ts.settings.saved)
}

func TestConfigSetCmd_SaveError(t *testing.T) {
	ts := setupTestServices(t)
	ts.settings.saveErr = errors.New("invalid base URL")

	_, err := execute(t, "config", "set", "--base-url", "::bad")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save settings")
}

func TestConfigCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	settingsStore = nil

	_, err := execute(t, "config", "show")
	assert.EqualError(t, err, "settings store not configured")

	_, err = execute(t, "config", "set", "--timeout", "1m")
	assert.EqualError(t, err, "settings store not configured")
}

func TestConfigCmd_InMemoryStore(t *testing.T) {
	setupTestServices(t)
	store := memory.NewSettingsStore()
	settingsStore = store

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file:       none (defaults)")

	out, err = execute(t, "config", "set", "--max-bytes", "1048576")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings applied for this session only.")
	assert.Equal(t, int64(1048576), store.Settings().MaxUploadBytes)
	assert.Equal(t, 1, store.Saves())
}
