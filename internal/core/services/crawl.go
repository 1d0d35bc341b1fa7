package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driving"
	"github.com/custodia-labs/crawlsync/internal/logger"
)

// Ensure CrawlService implements the interface.
var _ driving.CrawlReconciler = (*CrawlService)(nil)

// CrawlService reconciles one discovered node at a time: content through
// the pipeline, ancestor folders into the folder store, the page row into
// the page store. Every write is an idempotent upsert so the workflow
// runtime can retry a node without corrupting the hierarchy.
type CrawlService struct {
	configs   driven.ConfigurationStore
	pages     driven.PageStore
	pipeline  *ContentPipeline
	hierarchy *HierarchyService
	now       func() time.Time
}

// NewCrawlService creates a crawl reconciler.
func NewCrawlService(configs driven.ConfigurationStore, pages driven.PageStore, pipeline *ContentPipeline, hierarchy *HierarchyService) *CrawlService {
	return &CrawlService{
		configs:   configs,
		pages:     pages,
		pipeline:  pipeline,
		hierarchy: hierarchy,
		now:       time.Now,
	}
}

// ProcessNode ingests one fetched node and upserts its hierarchy records.
// The page row is written regardless of outcome so the hierarchy reflects
// everything the crawl discovered; the document id is attached only when
// the pipeline actually produced a stored document.
func (s *CrawlService) ProcessNode(ctx context.Context, node domain.FetchedNode) (domain.IngestionResult, error) {
	cfg, err := s.configs.Get(ctx, node.ConnectorID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.IngestionResult{}, domain.ErrConnectorNotFound
	}
	if err != nil {
		return domain.IngestionResult{}, fmt.Errorf("get configuration: %w", err)
	}

	result := s.pipeline.Ingest(ctx, &node, cfg.MaxDocumentLen)
	logger.Debug("Processed %s: %s", node.URL, result.Outcome)

	now := s.now()
	if err := s.hierarchy.RegisterFolderPath(ctx, node.ConnectorID, node.ConfigurationID, node.URL, now); err != nil {
		return domain.IngestionResult{}, fmt.Errorf("register folder path: %w", err)
	}

	page := domain.Page{
		URL:             node.URL,
		ParentURL:       pageParentURL(node.URL),
		ConnectorID:     node.ConnectorID,
		ConfigurationID: node.ConfigurationID,
		UpdatedAt:       now,
	}
	if result.Outcome.Ingestible() {
		id := domain.StableIDForURL(node.URL, domain.KindFile)
		page.DocumentID = &id
	}
	if err := s.pages.Upsert(ctx, page); err != nil {
		return domain.IngestionResult{}, fmt.Errorf("upsert page %s: %w", node.URL, err)
	}

	cfg.LastCrawledAt = &now
	cfg.UpdatedAt = now
	if err := s.configs.Save(ctx, *cfg); err != nil {
		return domain.IngestionResult{}, fmt.Errorf("save configuration: %w", err)
	}

	return result, nil
}

// pageParentURL resolves the containing folder of a page URL. The page's
// own container form does not count as its parent.
func pageParentURL(pageURL string) *string {
	normalised, err := domain.NormaliseFolderURL(pageURL)
	if err != nil {
		return nil
	}
	return domain.ParentFolderURL(normalised)
}
