package driven

import "context"

// TableUpsert is one full-replace write of tabular content into the
// downstream store.
type TableUpsert struct {
	// TableID is the stable identifier of the table, derived from the
	// source's native id.
	TableID string

	// TableName is a slug-safe short name for the table.
	TableName string

	// TableDescription is a human description embedding the provider and
	// original file name.
	TableDescription string

	// CSV is the normalised CSV content.
	CSV string

	// Truncate requests full-replace semantics: previously stored rows
	// for this table id are discarded before the new set is written.
	Truncate bool
}

// TableStore writes tabular content to the downstream store as a side
// effect of ingestion. Any failure is treated by the pipeline as "skip
// this node, non-fatal".
type TableStore interface {
	// UpsertTable performs the write described by the upsert.
	UpsertTable(ctx context.Context, upsert TableUpsert) error
}
