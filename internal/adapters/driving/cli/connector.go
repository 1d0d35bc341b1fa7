package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
)

// Flag values shared by create and update.
var (
	flagDepth          int
	flagMaxPages       int
	flagMode           string
	flagFrequency      string
	flagMaxDocumentLen int
)

var createCmd = &cobra.Command{
	Use:   "create <url>",
	Short: "Create a crawl connector and launch its first session",
	Long: `Creates a connector for the given root URL, persists its
configuration and signals the workflow runtime to start crawling.
If the launch signal fails the configuration is kept; re-launch with
'crawlsync update'.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var updateCmd = &cobra.Command{
	Use:   "update <connector-id> <url>",
	Short: "Update a connector's configuration and restart its session",
	Args:  cobra.ExactArgs(2),
	RunE:  runUpdate,
}

var stopCmd = &cobra.Command{
	Use:   "stop <connector-id>",
	Short: "Stop a connector's crawl session",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup <connector-id>",
	Short: "Stop a connector and delete all of its stored data",
	Args:  cobra.ExactArgs(1),
	RunE:  runCleanup,
}

var showCmd = &cobra.Command{
	Use:   "show <connector-id>",
	Short: "Show a connector's configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	for _, cmd := range []*cobra.Command{createCmd, updateCmd} {
		cmd.Flags().IntVar(&flagDepth, "depth", 2, "crawl depth (0-5)")
		cmd.Flags().IntVar(&flagMaxPages, "max-pages", domain.DefaultMaxPages, "maximum pages per session")
		cmd.Flags().StringVar(&flagMode, "mode", string(domain.ModeChildPages), "crawl mode (child or website)")
		cmd.Flags().StringVar(&flagFrequency, "frequency", string(domain.FrequencyNever), "re-crawl frequency (never, daily, weekly, monthly)")
		cmd.Flags().IntVar(&flagMaxDocumentLen, "max-document-len", domain.DefaultMaxDocumentLen, "per-document ingestion ceiling in bytes")
	}

	rootCmd.AddCommand(createCmd, updateCmd, stopCmd, cleanupCmd, showCmd)
}

// configFromFlags assembles a configuration from the command flags.
func configFromFlags(url string) domain.CrawlConfiguration {
	return domain.CrawlConfiguration{
		URL:            url,
		Depth:          flagDepth,
		MaxPages:       flagMaxPages,
		Mode:           domain.CrawlMode(flagMode),
		Frequency:      domain.CrawlFrequency(flagFrequency),
		MaxDocumentLen: flagMaxDocumentLen,
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	if connectorManager == nil {
		return errors.New("connector service not configured")
	}

	id, err := connectorManager.Create(context.Background(), configFromFlags(args[0]))
	if errors.Is(err, domain.ErrWorkflowSignal) {
		cmd.Printf("Connector %s created, but the launch signal failed: %v\n", id, err)
		cmd.Println("The configuration is saved; run 'crawlsync update' to retry.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("create failed: %w", err)
	}

	cmd.Printf("Connector %s created and session launched.\n", id)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if connectorManager == nil {
		return errors.New("connector service not configured")
	}

	id := args[0]
	err := connectorManager.Update(context.Background(), id, configFromFlags(args[1]))
	if errors.Is(err, domain.ErrWorkflowSignal) {
		cmd.Printf("Configuration for %s saved, but signalling failed: %v\n", id, err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	cmd.Printf("Connector %s updated and session relaunched.\n", id)
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	if connectorManager == nil {
		return errors.New("connector service not configured")
	}

	if err := connectorManager.Stop(context.Background(), args[0]); err != nil {
		return fmt.Errorf("stop failed: %w", err)
	}
	cmd.Printf("Connector %s stopped.\n", args[0])
	return nil
}

func runCleanup(cmd *cobra.Command, args []string) error {
	if connectorManager == nil {
		return errors.New("connector service not configured")
	}

	if err := connectorManager.Cleanup(context.Background(), args[0]); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	cmd.Printf("Connector %s removed.\n", args[0])
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if connectorManager == nil {
		return errors.New("connector service not configured")
	}

	cfg, err := connectorManager.Configuration(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}

	cmd.Printf("Connector:        %s\n", cfg.ConnectorID)
	cmd.Printf("URL:              %s\n", cfg.URL)
	cmd.Printf("Depth:            %d\n", cfg.Depth)
	cmd.Printf("Max pages:        %d\n", cfg.MaxPages)
	cmd.Printf("Mode:             %s\n", cfg.Mode)
	cmd.Printf("Frequency:        %s\n", cfg.Frequency)
	cmd.Printf("Max document len: %d\n", cfg.MaxDocumentLen)
	if cfg.LastCrawledAt != nil {
		cmd.Printf("Last crawled:     %s\n", cfg.LastCrawledAt.Format("2006-01-02 15:04:05"))
	} else {
		cmd.Println("Last crawled:     never")
	}
	return nil
}
