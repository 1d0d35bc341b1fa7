package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
)

// Ensure PageStore implements the interface.
var _ driven.PageStore = (*PageStore)(nil)

// PageStore is an in-memory page store keyed by (connector id,
// configuration id, url).
type PageStore struct {
	mu    sync.RWMutex
	pages map[pageKey]domain.Page
}

type pageKey struct {
	connectorID     string
	configurationID string
	url             string
}

// NewPageStore creates an empty in-memory page store.
func NewPageStore() *PageStore {
	return &PageStore{
		pages: make(map[pageKey]domain.Page),
	}
}

// Upsert stores or updates a page.
func (s *PageStore) Upsert(_ context.Context, page domain.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pageKey{page.ConnectorID, page.ConfigurationID, page.URL}
	if existing, ok := s.pages[key]; ok {
		page.CreatedAt = existing.CreatedAt
	} else if page.CreatedAt.IsZero() {
		page.CreatedAt = page.UpdatedAt
	}
	s.pages[key] = page
	return nil
}

// Get retrieves a page by its key.
func (s *PageStore) Get(_ context.Context, connectorID, configurationID, url string) (*domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page, ok := s.pages[pageKey{connectorID, configurationID, url}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &page, nil
}

// ListByParent returns pages whose parent URL matches exactly.
func (s *PageStore) ListByParent(_ context.Context, connectorID, configurationID string, parentURL *string) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Page
	for key, page := range s.pages {
		if key.connectorID != connectorID || key.configurationID != configurationID {
			continue
		}
		if !equalOptional(page.ParentURL, parentURL) {
			continue
		}
		out = append(out, page)
	}
	return out, nil
}

// ListByConnector returns every page of a connector.
func (s *PageStore) ListByConnector(_ context.Context, connectorID string) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Page
	for key, page := range s.pages {
		if key.connectorID == connectorID {
			out = append(out, page)
		}
	}
	return out, nil
}

// DeleteByConnector removes every page of a connector.
func (s *PageStore) DeleteByConnector(_ context.Context, connectorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.pages {
		if key.connectorID == connectorID {
			delete(s.pages, key)
		}
	}
	return nil
}
