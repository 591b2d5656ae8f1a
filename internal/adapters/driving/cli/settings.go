package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aideon-labs/aideon-tools/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persisted tool settings",
	Long: `View and configure the settings stored in the config directory.

Use subcommands to change individual settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsRDFFormatCmd = &cobra.Command{
	Use:   "rdf-format <serialisation>",
	Short: "Set the default RDF serialisation",
	Long: `Set the RDF serialisation used when neither the --rdf-format flag nor
the output extension selects one.

Available serialisations:
  ntriples - line-based triples, default graph only
  nquads   - triples plus a named-graph column`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsRDFFormat,
}

var settingsHistoryLimitCmd = &cobra.Command{
	Use:   "history-limit <count>",
	Short: "Set the default number of history entries shown",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsHistoryLimit,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsRDFFormatCmd)
	settingsCmd.AddCommand(settingsHistoryLimitCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Sync]")
	cmd.Printf("  Default RDF format: %s\n", settings.DefaultRDFFormat)
	cmd.Println()
	cmd.Println("[History]")
	cmd.Printf("  Limit: %d\n", settings.HistoryLimit)
	return nil
}

func runSettingsRDFFormat(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	serialisation, err := domain.ParseRDFSerialisation(args[0])
	if err != nil {
		return err
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.DefaultRDFFormat = string(serialisation)
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	appSettings = settings

	cmd.Printf("Default RDF format set to: %s\n", serialisation)
	return nil
}

func runSettingsHistoryLimit(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	limit, err := strconv.Atoi(args[0])
	if err != nil || limit <= 0 {
		return fmt.Errorf("history limit must be a positive integer, got %q", args[0])
	}

	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.HistoryLimit = limit
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	appSettings = settings

	cmd.Printf("History limit set to: %d\n", limit)
	return nil
}
