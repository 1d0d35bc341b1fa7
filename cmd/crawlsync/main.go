// Command crawlsync is the entry point of the crawl ingestion engine.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/crawlsync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/crawlsync/internal/adapters/driven/extraction"
	"github.com/custodia-labs/crawlsync/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/crawlsync/internal/adapters/driven/workflow"
	"github.com/custodia-labs/crawlsync/internal/adapters/driving/cli"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
	"github.com/custodia-labs/crawlsync/internal/core/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Service URL defaults, overridable through settings.
const (
	defaultExtractionURL = "http://localhost:8081"
	defaultWorkflowURL   = "http://localhost:8233"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("opening settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.GetString(driven.SettingDataDir))
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	extractionURL := settings.GetString(driven.SettingExtractionURL)
	if extractionURL == "" {
		extractionURL = defaultExtractionURL
	}
	workflowURL := settings.GetString(driven.SettingWorkflowURL)
	if workflowURL == "" {
		workflowURL = defaultWorkflowURL
	}

	extractor := extraction.NewClient(extractionURL)
	runtime := workflow.NewClient(workflowURL)

	configs := store.ConfigurationStore()
	folders := store.FolderStore()
	pages := store.PageStore()
	tables := store.TableStore()

	connectorSvc := services.NewConnectorService(configs, folders, pages, runtime)
	hierarchySvc := services.NewHierarchyService(folders, pages)
	treeSvc := services.NewPermissionTreeProjector(configs, folders, pages)

	pipeline := services.NewContentPipeline(extractor, tables, settings.GetString(driven.SettingProviderName))
	crawlSvc := services.NewCrawlService(configs, pages, pipeline, hierarchySvc)

	cli.SetServices(connectorSvc, treeSvc, hierarchySvc, crawlSvc, settings)
	return cli.Execute(version)
}
