// Package cli provides the cobra command tree driving the engine.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driving"
	"github.com/custodia-labs/crawlsync/internal/logger"
)

// version is set by Execute before the command tree runs.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	connectorManager driving.ConnectorManager
	permissionTree   driving.PermissionTree
	ancestry         driving.Ancestry
	reconciler       driving.CrawlReconciler
	settings         driven.SettingsStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "crawlsync",
	Short: "Website content ingestion and hierarchy synchronisation",
	Long: `crawlsync manages web-crawl connectors: it validates and persists
crawl configurations, signals the workflow runtime, ingests fetched
content, and projects the synchronised hierarchy as a browsable tree.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetServices injects the driving services used by the commands.
func SetServices(
	manager driving.ConnectorManager,
	tree driving.PermissionTree,
	parents driving.Ancestry,
	crawl driving.CrawlReconciler,
	settingsStore driven.SettingsStore,
) {
	connectorManager = manager
	permissionTree = tree
	ancestry = parents
	reconciler = crawl
	settings = settingsStore
}

// Execute runs the command tree.
func Execute(ver string) error {
	if ver != "" {
		version = ver
	}
	return rootCmd.Execute()
}
