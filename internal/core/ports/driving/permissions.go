package driving

import (
	"context"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
)

// PermissionTree projects the synchronised hierarchy into the externally
// consumed list of browsable nodes. Read-only; owns no entities.
type PermissionTree interface {
	// Children returns the browsable nodes under a scope. A nil
	// parentInternalID denotes the root scope. Folders and files are
	// interleaved in ascending title order.
	Children(ctx context.Context, connectorID string, parentInternalID *string) ([]domain.Node, error)
}

// Ancestry resolves ancestor chains and titles for permission checks and
// breadcrumb display.
type Ancestry interface {
	// Parents returns the ordered URLs from a starting URL up to the
	// hierarchy root. The chain always terminates and always contains at
	// least the starting URL, even when the parent graph has a cycle.
	Parents(ctx context.Context, connectorID, configurationID, startURL string) ([]string, error)

	// Titles returns display titles for a set of container URLs.
	Titles(ctx context.Context, connectorID string, urls []string) (map[string]string, error)
}
