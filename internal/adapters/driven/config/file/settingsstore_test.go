package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
)

func TestSettingsStore_LoadDefaultsWhenMissing(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSettingsStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	saved := domain.Settings{
		DefaultRDFFormat: string(domain.NTriples),
		HistoryLimit:     5,
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSettingsStore_CreatesConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewSettingsStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settings.toml"), store.Path())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSettingsStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("default_rdf_format = [broken"), 0o600))

	_, err = store.Load()
	assert.Error(t, err)
}

func TestDefaultConfigDir_EnvOverride(t *testing.T) {
	t.Setenv("AIDEON_CONFIG_DIR", "/tmp/aideon-test")

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/aideon-test", dir)
}
