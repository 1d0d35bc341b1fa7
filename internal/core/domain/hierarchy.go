package domain

import "time"

// Folder represents a container node of the synchronised hierarchy.
// Folders are derived from URL path structure during a crawl pass and are
// only removed as part of whole-connector teardown.
type Folder struct {
	// URL is the canonical container address (see NormaliseFolderURL).
	URL string

	// InternalID is the stable opaque id, StableIDForURL(URL, KindFolder).
	InternalID string

	// ParentURL is the container address of the logical parent,
	// nil at the hierarchy root.
	ParentURL *string

	// ConnectorID identifies the owning connector.
	ConnectorID string

	// ConfigurationID identifies the configuration the folder was
	// discovered under.
	ConfigurationID string

	// CreatedAt is when the folder was first discovered.
	CreatedAt time.Time

	// UpdatedAt is when the folder was last touched by a crawl pass.
	UpdatedAt time.Time
}

// Page represents a content node of the synchronised hierarchy.
// A Page and a Folder may legitimately share the same normalised URL: a
// resource can be both a content item and a container for child items.
type Page struct {
	// URL is the fetched page address.
	URL string

	// DocumentID is the id of the ingested document in the downstream
	// index. Nil when ingestion was intentionally skipped or represented
	// as a table side effect; the node still exists structurally.
	DocumentID *string

	// ParentURL is the container address of the logical parent,
	// nil at the hierarchy root.
	ParentURL *string

	// ConnectorID identifies the owning connector.
	ConnectorID string

	// ConfigurationID identifies the configuration the page was fetched
	// under.
	ConfigurationID string

	// CreatedAt is when the page was first fetched.
	CreatedAt time.Time

	// UpdatedAt is when the page was last fetched.
	UpdatedAt time.Time
}
