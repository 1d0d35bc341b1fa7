package driven

import "context"

// WorkflowRuntime is the start/stop signal contract of the external
// workflow engine that drives crawl sessions. Both signals are
// fire-and-confirm: they return success or failure, not progress.
// Stopping an already-stopped session is not an error.
type WorkflowRuntime interface {
	// Launch starts (or restarts) the crawl workflow of a connector.
	Launch(ctx context.Context, connectorID string) error

	// Stop terminates the crawl workflow of a connector.
	Stop(ctx context.Context, connectorID string) error
}
