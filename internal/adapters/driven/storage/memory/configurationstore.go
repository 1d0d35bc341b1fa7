package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
)

// Ensure ConfigurationStore implements the interface.
var _ driven.ConfigurationStore = (*ConfigurationStore)(nil)

// ConfigurationStore is an in-memory configuration store, one entry per
// connector.
type ConfigurationStore struct {
	mu      sync.RWMutex
	configs map[string]domain.CrawlConfiguration
}

// NewConfigurationStore creates an empty in-memory configuration store.
func NewConfigurationStore() *ConfigurationStore {
	return &ConfigurationStore{
		configs: make(map[string]domain.CrawlConfiguration),
	}
}

// Save stores or updates a connector's configuration.
func (s *ConfigurationStore) Save(_ context.Context, cfg domain.CrawlConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configs[cfg.ConnectorID] = cfg
	return nil
}

// Get retrieves the configuration of a connector.
func (s *ConfigurationStore) Get(_ context.Context, connectorID string) (*domain.CrawlConfiguration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[connectorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cfg, nil
}

// Delete removes the configuration of a connector.
func (s *ConfigurationStore) Delete(_ context.Context, connectorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.configs, connectorID)
	return nil
}
