// Package file provides a TOML-backed settings store.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is a file-based implementation of driven.SettingsStore using
// TOML. Settings are stored in a TOML file within the aideon config
// directory.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewSettingsStore creates a new TOML-based settings store. If configDir is
// empty, defaults to ~/.aideon-tools/settings.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		resolved, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = resolved
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "settings.toml"),
	}, nil
}

// DefaultConfigDir resolves the config directory: $AIDEON_CONFIG_DIR when
// set, otherwise ~/.aideon-tools.
func DefaultConfigDir() (string, error) {
	if dir := os.Getenv("AIDEON_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".aideon-tools"), nil
}

// Load reads settings from the TOML file. A missing file yields the
// defaults.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return domain.DefaultSettings(), fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	return settings, nil
}

// Save persists settings to disk.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
