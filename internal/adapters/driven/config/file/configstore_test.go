package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// TestConfigStore_SetGetRoundTrip tests persistence across instances
func TestConfigStore_SetGetRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(domain.SettingAuditEndpoint, "http://localhost:9222"))
	require.NoError(t, store.Set(domain.SettingSchedulerEnabled, true))
	require.NoError(t, store.Set(domain.SettingSchedulerInterval, 24))

	// A fresh instance reads the persisted file.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9222", reloaded.GetString(domain.SettingAuditEndpoint))
	assert.True(t, reloaded.GetBool(domain.SettingSchedulerEnabled))
	assert.Equal(t, 24, reloaded.GetInt(domain.SettingSchedulerInterval))
}

// TestConfigStore_DotNotationFlattening tests nested TOML access
func TestConfigStore_DotNotationFlattening(t *testing.T) {
	dir := t.TempDir()
	content := "[github]\ntoken = \"ghp_x\"\nrepo = \"acme/shop\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "ghp_x", store.GetString(domain.SettingGitHubToken))
	assert.Equal(t, "acme/shop", store.GetString(domain.SettingGitHubRepo))
}

// TestConfigStore_MissingKeys tests zero-value fallbacks
func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
	assert.Nil(t, store.GetStringSlice("nope"))

	_, ok := store.Get("nope")
	assert.False(t, ok)
}

// TestConfigStore_Delete tests key removal
func TestConfigStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("a", "1"))
	require.NoError(t, store.Delete("a"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := reloaded.Get("a")
	assert.False(t, ok)
}

// TestConfigStore_FilePermissions tests restricted permissions on the config file
func TestConfigStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("secret", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
