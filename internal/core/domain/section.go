package domain

// DocumentSection is the normalised content produced for one ingested
// document. A rich multi-page document yields one child section per page;
// a flat text document yields content directly with no children; a table
// upsert yields an explicitly empty section (content lives in the tabular
// store, not here).
type DocumentSection struct {
	// Prefix is an optional label prepended when the section is rendered,
	// e.g. a page marker. Nil when the media type has no label template.
	Prefix *string

	// Content is the section text, nil when the document is represented
	// only by its child sections or by a side effect.
	Content *string

	// Sections are labelled sub-sections, one per page for paginated
	// documents.
	Sections []DocumentSection
}

// FlatSection builds a single unlabelled section holding content directly.
func FlatSection(content string) *DocumentSection {
	return &DocumentSection{Content: &content}
}

// EmptySection builds the explicit marker for content ingested via a side
// channel. It is distinct from a nil section, which means "skipped".
func EmptySection() *DocumentSection {
	return &DocumentSection{}
}

// IngestionOutcome is the terminal state of one content-pipeline run.
// Skips are designed outcomes, not errors: the crawl pass pattern-matches
// on the outcome and continues with the next node.
type IngestionOutcome int

const (
	// OutcomeIngested means the node produced a document section to store.
	OutcomeIngested IngestionOutcome = iota

	// OutcomeIngestedAsTable means the content was written to the tabular
	// store as a side effect; no document is stored.
	OutcomeIngestedAsTable

	// OutcomeSkippedTooLarge means the raw buffer exceeded the size guard.
	OutcomeSkippedTooLarge

	// OutcomeSkippedUnsupported means no handler matches the media type.
	OutcomeSkippedUnsupported

	// OutcomeSkippedFailed means extraction or parsing failed, or produced
	// nothing; the failure is node-local and logged by the pipeline.
	OutcomeSkippedFailed
)

// String returns the outcome name for logs.
func (o IngestionOutcome) String() string {
	switch o {
	case OutcomeIngested:
		return "ingested"
	case OutcomeIngestedAsTable:
		return "ingested_as_table"
	case OutcomeSkippedTooLarge:
		return "skipped_too_large"
	case OutcomeSkippedUnsupported:
		return "skipped_unsupported"
	case OutcomeSkippedFailed:
		return "skipped_failed"
	default:
		return "unknown"
	}
}

// Ingestible reports whether the outcome carries a document section.
func (o IngestionOutcome) Ingestible() bool {
	return o == OutcomeIngested
}

// IngestionResult pairs an outcome with the section it produced.
// Section is non-nil only for OutcomeIngested and OutcomeIngestedAsTable
// (the latter carrying the explicit empty marker).
type IngestionResult struct {
	Outcome IngestionOutcome
	Section *DocumentSection
}

// FetchedNode is one discovered node handed to the engine by the crawl
// workflow: the fetched bytes plus everything needed to place the node in
// the hierarchy.
type FetchedNode struct {
	// ConnectorID identifies the owning connector.
	ConnectorID string

	// ConfigurationID identifies the active configuration.
	ConfigurationID string

	// URL is the fetched address.
	URL string

	// MediaType is the declared content type of the fetched bytes.
	MediaType string

	// FileName is the source's name for the node, used for table naming.
	// Empty when the source has no native name.
	FileName string

	// NativeID is the source's own identifier for the node, used as the
	// table id for tabular content. Empty when the source has none.
	NativeID string

	// Content is the raw fetched bytes.
	Content []byte
}
