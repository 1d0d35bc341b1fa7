package domain

import "time"

// NodeKind is the externally visible type of a browsable node.
type NodeKind string

const (
	// NodeFolder marks a container node.
	NodeFolder NodeKind = "folder"

	// NodeFile marks a content node.
	NodeFile NodeKind = "file"
)

// Node is one entry of the externally consumed permission tree.
type Node struct {
	// InternalID is the stable id callers use to navigate into the node.
	InternalID string

	// ParentInternalID is the stable id of the containing folder,
	// nil at the root scope.
	ParentInternalID *string

	// Title is the display label.
	Title string

	// SourceURL is the original external address, nil for derived folders.
	SourceURL *string

	// Expandable reports whether the node can be opened to list children.
	Expandable bool

	// Type is the node kind, folder or file.
	Type NodeKind

	// DocumentID is the downstream document id, nil when the node has no
	// ingested document.
	DocumentID *string

	// LastUpdatedAt is when the underlying entity was last touched.
	LastUpdatedAt time.Time
}
