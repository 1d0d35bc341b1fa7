package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the extraction service URL, workflow runtime
URL, data directory and ingestion defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a settings value",
	Long: `Sets one settings key. Known keys:

  extraction_url    base URL of the text-extraction service
  workflow_url      base URL of the workflow runtime
  data_dir          data directory override
  max_document_len  per-document ingestion ceiling in bytes
  provider_name     provider label used in table descriptions`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settings == nil {
		return errors.New("settings store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	printSetting(cmd, "Extraction URL", settings.GetString(driven.SettingExtractionURL))
	printSetting(cmd, "Workflow URL", settings.GetString(driven.SettingWorkflowURL))
	printSetting(cmd, "Data directory", settings.GetString(driven.SettingDataDir))
	printSetting(cmd, "Provider name", settings.GetString(driven.SettingProviderName))
	if v := settings.GetInt(driven.SettingMaxDocumentLen); v > 0 {
		cmd.Printf("  %-18s %d\n", "Max document len", v)
	} else {
		cmd.Printf("  %-18s (default)\n", "Max document len")
	}
	cmd.Printf("\nSettings file: %s\n", settings.Path())
	return nil
}

func printSetting(cmd *cobra.Command, label, value string) {
	if value == "" {
		value = "(not set)"
	}
	cmd.Printf("  %-18s %s\n", label, value)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settings == nil {
		return errors.New("settings store not configured")
	}

	key, raw := args[0], args[1]

	// Integer-valued keys are stored as integers.
	var value any = raw
	if key == driven.SettingMaxDocumentLen {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		value = n
	}

	if err := settings.Set(key, value); err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}
	cmd.Printf("Set %s.\n", key)
	return nil
}
