package driven

import (
	"context"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
)

// ConfigurationStore persists crawl configurations, one per connector.
type ConfigurationStore interface {
	// Save stores or updates a connector's configuration.
	Save(ctx context.Context, cfg domain.CrawlConfiguration) error

	// Get retrieves the configuration of a connector. Returns
	// domain.ErrNotFound when the connector has none.
	Get(ctx context.Context, connectorID string) (*domain.CrawlConfiguration, error)

	// Delete removes the configuration of a connector.
	Delete(ctx context.Context, connectorID string) error
}
