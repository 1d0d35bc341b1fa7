package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driving"
	"github.com/custodia-labs/crawlsync/internal/logger"
)

// Ensure ConnectorService implements the interface.
var _ driving.ConnectorManager = (*ConnectorService)(nil)

// ConnectorService owns the connector lifecycle: configuration persistence
// and the launch/stop signalling of crawl sessions. Signal failures are
// wrapped in domain.SignalError so callers can tell a runtime problem apart
// from a validation or storage one.
type ConnectorService struct {
	configs  driven.ConfigurationStore
	folders  driven.FolderStore
	pages    driven.PageStore
	workflow driven.WorkflowRuntime
	now      func() time.Time
}

// NewConnectorService creates a connector service.
func NewConnectorService(configs driven.ConfigurationStore, folders driven.FolderStore, pages driven.PageStore, workflow driven.WorkflowRuntime) *ConnectorService {
	return &ConnectorService{
		configs:  configs,
		folders:  folders,
		pages:    pages,
		workflow: workflow,
		now:      time.Now,
	}
}

// Create validates and persists a new configuration, then launches its
// crawl session. Validation failure means nothing persists and no signal is
// sent. A launch failure after a successful save returns the signal error
// with the configuration left in place.
func (s *ConnectorService) Create(ctx context.Context, cfg domain.CrawlConfiguration) (string, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	connectorID := uuid.NewString()
	now := s.now()
	cfg.ConnectorID = connectorID
	cfg.ID = uuid.NewString()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	if err := s.configs.Save(ctx, cfg); err != nil {
		return "", fmt.Errorf("save configuration: %w", err)
	}
	logger.Info("Created connector %s for %s", connectorID, cfg.URL)

	if err := s.workflow.Launch(ctx, connectorID); err != nil {
		return connectorID, &domain.SignalError{Op: "launch", ConnectorID: connectorID, Err: err}
	}
	return connectorID, nil
}

// Update validates and persists a changed configuration, then stops and
// relaunches the session so the new parameters take effect. A stop failure
// aborts before relaunch. A relaunch failure leaves the session stopped and
// the new configuration persisted.
func (s *ConnectorService) Update(ctx context.Context, connectorID string, cfg domain.CrawlConfiguration) error {
	existing, err := s.configs.Get(ctx, connectorID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrConnectorNotFound
	}
	if err != nil {
		return fmt.Errorf("get configuration: %w", err)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.ConnectorID = connectorID
	cfg.ID = existing.ID
	cfg.CreatedAt = existing.CreatedAt
	cfg.LastCrawledAt = existing.LastCrawledAt
	cfg.UpdatedAt = s.now()

	if err := s.configs.Save(ctx, cfg); err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}
	logger.Info("Updated connector %s", connectorID)

	if err := s.workflow.Stop(ctx, connectorID); err != nil {
		return &domain.SignalError{Op: "stop", ConnectorID: connectorID, Err: err}
	}
	if err := s.workflow.Launch(ctx, connectorID); err != nil {
		return &domain.SignalError{Op: "launch", ConnectorID: connectorID, Err: err}
	}
	return nil
}

// Stop terminates the connector's crawl session.
func (s *ConnectorService) Stop(ctx context.Context, connectorID string) error {
	if err := s.workflow.Stop(ctx, connectorID); err != nil {
		return &domain.SignalError{Op: "stop", ConnectorID: connectorID, Err: err}
	}
	logger.Info("Stopped connector %s", connectorID)
	return nil
}

// Cleanup stops the session and removes every persisted record of the
// connector. The stop signal runs first so a live session cannot repopulate
// the stores mid-delete.
func (s *ConnectorService) Cleanup(ctx context.Context, connectorID string) error {
	if err := s.workflow.Stop(ctx, connectorID); err != nil {
		return &domain.SignalError{Op: "stop", ConnectorID: connectorID, Err: err}
	}
	if err := s.pages.DeleteByConnector(ctx, connectorID); err != nil {
		return fmt.Errorf("delete pages: %w", err)
	}
	if err := s.folders.DeleteByConnector(ctx, connectorID); err != nil {
		return fmt.Errorf("delete folders: %w", err)
	}
	if err := s.configs.Delete(ctx, connectorID); err != nil {
		return fmt.Errorf("delete configuration: %w", err)
	}
	logger.Info("Cleaned up connector %s", connectorID)
	return nil
}

// Configuration returns the connector's current configuration.
func (s *ConnectorService) Configuration(ctx context.Context, connectorID string) (*domain.CrawlConfiguration, error) {
	cfg, err := s.configs.Get(ctx, connectorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrConnectorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get configuration: %w", err)
	}
	return cfg, nil
}
