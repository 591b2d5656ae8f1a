// Package cli implements the command-line interface.
//
// Commands are registered on the root command in init functions and reach
// the core through package-level service variables wired in Execute.
// Tests swap the variables for mocks and drive rootCmd directly.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aideon-labs/aideon-tools/internal/adapters/driven/config/file"
	"github.com/aideon-labs/aideon-tools/internal/adapters/driven/journal/sqlite"
	"github.com/aideon-labs/aideon-tools/internal/codecs/excel"
	"github.com/aideon-labs/aideon-tools/internal/codecs/jsonld"
	"github.com/aideon-labs/aideon-tools/internal/codecs/rdf"
	"github.com/aideon-labs/aideon-tools/internal/core/domain"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driven"
	"github.com/aideon-labs/aideon-tools/internal/core/ports/driving"
	"github.com/aideon-labs/aideon-tools/internal/core/services"
	"github.com/aideon-labs/aideon-tools/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services the commands depend on. Wired in Execute, swapped in tests.
var (
	syncService   driving.SyncService
	codecRegistry driven.CodecRegistry
	syncJournal   driven.SyncJournal
	settingsStore driven.SettingsStore
	appSettings   = domain.DefaultSettings()
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "aideon-tools",
	Short: "Convert datasets between JSON-LD, Excel and RDF",
	Long: `aideon-tools converts linked-data datasets between representations.

Every conversion passes through a canonical node model, so any supported
source format can be synchronised to any other.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logger.Init(logLevel)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error); "+logger.EnvVar+" overrides")
}

// Execute wires the services and runs the root command.
func Execute() error {
	if err := initialiseServices(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// initialiseServices builds the adapter stack: settings store, codec
// registry, sync journal and sync service.
func initialiseServices() error {
	configDir, err := file.DefaultConfigDir()
	if err != nil {
		return fmt.Errorf("resolving config directory: %w", err)
	}

	store, err := file.NewSettingsStore(configDir)
	if err != nil {
		return fmt.Errorf("initialising settings store: %w", err)
	}
	settingsStore = store

	appSettings, err = settingsStore.Load()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	registry := services.NewCodecRegistry()
	registry.Register(jsonld.New())
	registry.Register(excel.New())
	registry.Register(rdf.New())
	codecRegistry = registry

	// A broken journal should not block conversions
	journal, err := sqlite.NewJournal(filepath.Join(configDir, "data"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sync journal unavailable: %v\n", err)
	} else {
		syncJournal = journal
	}

	syncService = services.NewSyncService(codecRegistry, syncJournal, appSettings)
	return nil
}
