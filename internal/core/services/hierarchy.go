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

// Ensure HierarchyService implements the interface.
var _ driving.Ancestry = (*HierarchyService)(nil)

// HierarchyService maintains the folder graph of a connector and resolves
// ancestor chains over it. The parent relation is a lookup by key, never an
// object reference, so a cycle in the stored graph can only cost a bounded
// walk, not unbounded recursion.
type HierarchyService struct {
	folders driven.FolderStore
	pages   driven.PageStore
}

// NewHierarchyService creates a hierarchy service.
func NewHierarchyService(folders driven.FolderStore, pages driven.PageStore) *HierarchyService {
	return &HierarchyService{
		folders: folders,
		pages:   pages,
	}
}

// Parents returns the ordered URLs from startURL up to the hierarchy root.
// The starting node may be a page or a folder. The chain ends when a node
// has no parent, when the next node is unknown, or when the next candidate
// has already appeared in the chain being built. Cycle detection truncates
// the chain and logs a diagnostic; it is never fatal, and the chain always
// contains at least the starting URL.
func (s *HierarchyService) Parents(ctx context.Context, connectorID, configurationID, startURL string) ([]string, error) {
	chain := []string{startURL}
	visited := map[string]struct{}{startURL: {}}

	ptr := startURL
	for {
		parentURL, err := s.parentOf(ctx, connectorID, configurationID, ptr)
		if err != nil {
			return nil, err
		}
		if parentURL == nil {
			return chain, nil
		}

		parent := *parentURL
		if _, seen := visited[parent]; seen {
			logger.Warn("Cycle in the parent chain of %s at %s, returning truncated chain", startURL, parent)
			return chain, nil
		}

		chain = append(chain, parent)
		visited[parent] = struct{}{}
		ptr = parent
	}
}

// parentOf resolves the stored parent of a node, checking folders first and
// pages second. An unknown node yields a nil parent, ending the walk.
func (s *HierarchyService) parentOf(ctx context.Context, connectorID, configurationID, url string) (*string, error) {
	folder, err := s.folders.Get(ctx, connectorID, configurationID, url)
	if err == nil {
		return folder.ParentURL, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get folder %s: %w", url, err)
	}

	page, err := s.pages.Get(ctx, connectorID, configurationID, url)
	if err == nil {
		return page.ParentURL, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get page %s: %w", url, err)
	}
	return nil, nil
}

// Titles returns display titles for the given container URLs.
func (s *HierarchyService) Titles(ctx context.Context, connectorID string, urls []string) (map[string]string, error) {
	folders, err := s.folders.ListByConnector(ctx, connectorID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	wanted := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		wanted[u] = struct{}{}
	}

	titles := make(map[string]string)
	for _, folder := range folders {
		if _, ok := wanted[folder.URL]; ok {
			titles[folder.URL] = domain.DisplayNameForURL(folder.URL)
		}
	}
	return titles, nil
}

// RegisterFolderPath materialises a folder row for every ancestor container
// of a page URL. Upserts are idempotent, so re-registering the same path on
// a later pass only refreshes the timestamps.
func (s *HierarchyService) RegisterFolderPath(ctx context.Context, connectorID, configurationID, pageURL string, now time.Time) error {
	chain, err := domain.FolderChainForURL(pageURL)
	if err != nil {
		return err
	}

	for _, u := range chain[1:] {
		folder := domain.Folder{
			URL:             u,
			InternalID:      domain.StableIDForURL(u, domain.KindFolder),
			ParentURL:       domain.ParentFolderURL(u),
			ConnectorID:     connectorID,
			ConfigurationID: configurationID,
			UpdatedAt:       now,
		}
		if err := s.folders.Upsert(ctx, folder); err != nil {
			return fmt.Errorf("upsert folder %s: %w", u, err)
		}
	}
	return nil
}
