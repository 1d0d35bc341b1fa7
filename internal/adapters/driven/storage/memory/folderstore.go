package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
)

// Ensure FolderStore implements the interface.
var _ driven.FolderStore = (*FolderStore)(nil)

// FolderStore is an in-memory folder store keyed by (connector id,
// configuration id, url).
type FolderStore struct {
	mu      sync.RWMutex
	folders map[folderKey]domain.Folder
}

type folderKey struct {
	connectorID     string
	configurationID string
	url             string
}

// NewFolderStore creates an empty in-memory folder store.
func NewFolderStore() *FolderStore {
	return &FolderStore{
		folders: make(map[folderKey]domain.Folder),
	}
}

// Upsert stores or updates a folder.
func (s *FolderStore) Upsert(_ context.Context, folder domain.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := folderKey{folder.ConnectorID, folder.ConfigurationID, folder.URL}
	if existing, ok := s.folders[key]; ok {
		folder.CreatedAt = existing.CreatedAt
	} else if folder.CreatedAt.IsZero() {
		folder.CreatedAt = folder.UpdatedAt
	}
	s.folders[key] = folder
	return nil
}

// Get retrieves a folder by its key.
func (s *FolderStore) Get(_ context.Context, connectorID, configurationID, url string) (*domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folder, ok := s.folders[folderKey{connectorID, configurationID, url}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &folder, nil
}

// GetByInternalID retrieves a folder by its stable internal id.
func (s *FolderStore) GetByInternalID(_ context.Context, connectorID, configurationID, internalID string) (*domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for key, folder := range s.folders {
		if key.connectorID == connectorID && key.configurationID == configurationID && folder.InternalID == internalID {
			return &folder, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListByParent returns folders whose parent URL matches exactly.
func (s *FolderStore) ListByParent(_ context.Context, connectorID, configurationID string, parentURL *string) ([]domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Folder
	for key, folder := range s.folders {
		if key.connectorID != connectorID || key.configurationID != configurationID {
			continue
		}
		if !equalOptional(folder.ParentURL, parentURL) {
			continue
		}
		out = append(out, folder)
	}
	return out, nil
}

// ListByConnector returns every folder of a connector.
func (s *FolderStore) ListByConnector(_ context.Context, connectorID string) ([]domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Folder
	for key, folder := range s.folders {
		if key.connectorID == connectorID {
			out = append(out, folder)
		}
	}
	return out, nil
}

// DeleteByConnector removes every folder of a connector.
func (s *FolderStore) DeleteByConnector(_ context.Context, connectorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.folders {
		if key.connectorID == connectorID {
			delete(s.folders, key)
		}
	}
	return nil
}

// equalOptional compares two optional strings by value.
func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
