package driving

import (
	"context"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
)

// ConnectorManager drives the lifecycle of crawl connectors: creating and
// updating configurations, and signalling the workflow runtime.
//
// Session states follow Idle -> Launch-Requested -> Running ->
// {Stop-Requested -> Stopped, Completed}; the runtime owns the running
// state, this interface owns the transitions.
type ConnectorManager interface {
	// Create validates and persists a new connector configuration, then
	// launches its crawl workflow. Returns the connector id. When the
	// launch signal fails the configuration still persists and the
	// signal failure is returned; rolling back is the caller's decision.
	Create(ctx context.Context, cfg domain.CrawlConfiguration) (string, error)

	// Update validates and persists a changed configuration, then stops
	// and relaunches the session. A stop failure aborts before relaunch;
	// a relaunch failure leaves the session stopped.
	Update(ctx context.Context, connectorID string, cfg domain.CrawlConfiguration) error

	// Stop terminates the connector's session. Idempotent: stopping an
	// already-stopped session is not an error.
	Stop(ctx context.Context, connectorID string) error

	// Cleanup stops the session and removes every persisted folder, page
	// and configuration record of the connector.
	Cleanup(ctx context.Context, connectorID string) error

	// Configuration returns the connector's current configuration.
	Configuration(ctx context.Context, connectorID string) (*domain.CrawlConfiguration, error)
}
