package driving

import (
	"context"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
)

// CrawlReconciler processes one discovered node of a crawl pass: it runs
// the content pipeline and reconciles the result into the hierarchy.
// Operations are idempotent so the workflow runtime can safely retry.
type CrawlReconciler interface {
	// ProcessNode ingests one fetched node and upserts its hierarchy
	// records. A page's document id is only ever set after successful
	// ingestion. The returned result reports the terminal outcome so the
	// workflow can count skips and ingests without double-reporting.
	ProcessNode(ctx context.Context, node domain.FetchedNode) (domain.IngestionResult, error)
}
