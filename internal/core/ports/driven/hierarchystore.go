package driven

import (
	"context"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
)

// FolderStore persists the container nodes of one connector's hierarchy.
// Writes are idempotent upserts keyed by (connector id, configuration id,
// url); re-invoking them under workflow retry is safe.
type FolderStore interface {
	// Upsert stores or updates a folder.
	Upsert(ctx context.Context, folder domain.Folder) error

	// Get retrieves a folder by its key. Returns domain.ErrNotFound when
	// the folder does not exist.
	Get(ctx context.Context, connectorID, configurationID, url string) (*domain.Folder, error)

	// GetByInternalID retrieves a folder by its stable internal id.
	// Returns domain.ErrNotFound when the folder does not exist.
	GetByInternalID(ctx context.Context, connectorID, configurationID, internalID string) (*domain.Folder, error)

	// ListByParent returns folders whose parent URL matches exactly.
	// A nil parentURL denotes root-level folders.
	ListByParent(ctx context.Context, connectorID, configurationID string, parentURL *string) ([]domain.Folder, error)

	// ListByConnector returns every folder of a connector.
	ListByConnector(ctx context.Context, connectorID string) ([]domain.Folder, error)

	// DeleteByConnector removes every folder of a connector. Used only
	// during whole-connector teardown.
	DeleteByConnector(ctx context.Context, connectorID string) error
}

// PageStore persists the content nodes of one connector's hierarchy.
// Same keying and idempotency rules as FolderStore.
type PageStore interface {
	// Upsert stores or updates a page.
	Upsert(ctx context.Context, page domain.Page) error

	// Get retrieves a page by its key. Returns domain.ErrNotFound when
	// the page does not exist.
	Get(ctx context.Context, connectorID, configurationID, url string) (*domain.Page, error)

	// ListByParent returns pages whose parent URL matches exactly.
	// A nil parentURL denotes root-level pages.
	ListByParent(ctx context.Context, connectorID, configurationID string, parentURL *string) ([]domain.Page, error)

	// ListByConnector returns every page of a connector.
	ListByConnector(ctx context.Context, connectorID string) ([]domain.Page, error)

	// DeleteByConnector removes every page of a connector. Used only
	// during whole-connector teardown.
	DeleteByConnector(ctx context.Context, connectorID string) error
}
