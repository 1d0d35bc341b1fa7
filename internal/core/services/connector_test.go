package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crawlsync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/crawlsync/internal/core/domain"
)

// mockWorkflow records launch/stop signals and optionally fails them.
type mockWorkflow struct {
	launches  []string
	stops     []string
	launchErr error
	stopErr   error
}

func (m *mockWorkflow) Launch(_ context.Context, connectorID string) error {
	if m.launchErr != nil {
		return m.launchErr
	}
	m.launches = append(m.launches, connectorID)
	return nil
}

func (m *mockWorkflow) Stop(_ context.Context, connectorID string) error {
	if m.stopErr != nil {
		return m.stopErr
	}
	m.stops = append(m.stops, connectorID)
	return nil
}

type connectorFixture struct {
	configs  *memory.ConfigurationStore
	folders  *memory.FolderStore
	pages    *memory.PageStore
	workflow *mockWorkflow
	svc      *ConnectorService
}

func newConnectorFixture() *connectorFixture {
	f := &connectorFixture{
		configs:  memory.NewConfigurationStore(),
		folders:  memory.NewFolderStore(),
		pages:    memory.NewPageStore(),
		workflow: &mockWorkflow{},
	}
	f.svc = NewConnectorService(f.configs, f.folders, f.pages, f.workflow)
	return f
}

func validConfig() domain.CrawlConfiguration {
	return domain.CrawlConfiguration{
		URL:       "https://example.com/docs",
		Depth:     2,
		Mode:      domain.ModeChildPages,
		Frequency: domain.FrequencyDaily,
	}
}

func TestCreate_PersistsAndLaunches(t *testing.T) {
	f := newConnectorFixture()

	id, err := f.svc.Create(context.Background(), validConfig())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	cfg, err := f.configs.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs", cfg.URL)
	assert.Equal(t, domain.DefaultMaxPages, cfg.MaxPages, "defaults fill unset fields")
	assert.Equal(t, domain.DefaultMaxDocumentLen, cfg.MaxDocumentLen)
	assert.NotEmpty(t, cfg.ID)

	assert.Equal(t, []string{id}, f.workflow.launches)
}

func TestCreate_InvalidDepthPersistsNothing(t *testing.T) {
	f := newConnectorFixture()

	cfg := validConfig()
	cfg.Depth = 7
	_, err := f.svc.Create(context.Background(), cfg)
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	assert.Empty(t, f.workflow.launches, "no signal on validation failure")
}

func TestCreate_LaunchFailureKeepsConfiguration(t *testing.T) {
	f := newConnectorFixture()
	f.workflow.launchErr = errors.New("runtime unreachable")

	id, err := f.svc.Create(context.Background(), validConfig())
	require.Error(t, err)
	require.NotEmpty(t, id, "the connector id is returned even when launch fails")

	assert.ErrorIs(t, err, domain.ErrWorkflowSignal)
	var sigErr *domain.SignalError
	require.ErrorAs(t, err, &sigErr)
	assert.Equal(t, "launch", sigErr.Op)
	assert.Equal(t, id, sigErr.ConnectorID)

	_, getErr := f.configs.Get(context.Background(), id)
	assert.NoError(t, getErr, "the configuration persists despite the failed launch")
}

func TestUpdate_StopsAndRelaunches(t *testing.T) {
	f := newConnectorFixture()
	id, err := f.svc.Create(context.Background(), validConfig())
	require.NoError(t, err)
	created, err := f.configs.Get(context.Background(), id)
	require.NoError(t, err)

	updated := validConfig()
	updated.Depth = 4
	require.NoError(t, f.svc.Update(context.Background(), id, updated))

	cfg, err := f.configs.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Depth)
	assert.Equal(t, created.ID, cfg.ID, "the configuration id survives updates")
	assert.Equal(t, created.CreatedAt, cfg.CreatedAt)

	assert.Equal(t, []string{id}, f.workflow.stops)
	assert.Equal(t, []string{id, id}, f.workflow.launches)
}

func TestUpdate_UnknownConnector(t *testing.T) {
	f := newConnectorFixture()

	err := f.svc.Update(context.Background(), "ghost", validConfig())
	assert.ErrorIs(t, err, domain.ErrConnectorNotFound)
}

func TestUpdate_InvalidConfigLeavesSessionAlone(t *testing.T) {
	f := newConnectorFixture()
	id, err := f.svc.Create(context.Background(), validConfig())
	require.NoError(t, err)

	bad := validConfig()
	bad.Depth = -1
	err = f.svc.Update(context.Background(), id, bad)
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	assert.Empty(t, f.workflow.stops, "fail fast: no stop before validation passes")

	cfg, err := f.configs.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Depth, "the previous configuration is untouched")
}

func TestUpdate_StopFailureAbortsBeforeRelaunch(t *testing.T) {
	f := newConnectorFixture()
	id, err := f.svc.Create(context.Background(), validConfig())
	require.NoError(t, err)
	f.workflow.stopErr = errors.New("signal lost")

	err = f.svc.Update(context.Background(), id, validConfig())
	require.ErrorIs(t, err, domain.ErrWorkflowSignal)

	assert.Equal(t, []string{id}, f.workflow.launches, "no relaunch after a failed stop")
}

func TestUpdate_RelaunchFailureLeavesSessionStopped(t *testing.T) {
	f := newConnectorFixture()
	id, err := f.svc.Create(context.Background(), validConfig())
	require.NoError(t, err)

	f.workflow.launchErr = errors.New("runtime unreachable")
	err = f.svc.Update(context.Background(), id, validConfig())
	require.ErrorIs(t, err, domain.ErrWorkflowSignal)

	var sigErr *domain.SignalError
	require.ErrorAs(t, err, &sigErr)
	assert.Equal(t, "launch", sigErr.Op)
	assert.Equal(t, []string{id}, f.workflow.stops, "the stop went through")
}

func TestStop_Idempotent(t *testing.T) {
	f := newConnectorFixture()
	id, err := f.svc.Create(context.Background(), validConfig())
	require.NoError(t, err)

	require.NoError(t, f.svc.Stop(context.Background(), id))
	require.NoError(t, f.svc.Stop(context.Background(), id), "stopping twice is not an error")
	assert.Equal(t, []string{id, id}, f.workflow.stops)
}

func TestCleanup_RemovesEverything(t *testing.T) {
	f := newConnectorFixture()
	ctx := context.Background()
	id, err := f.svc.Create(ctx, validConfig())
	require.NoError(t, err)

	cfg, err := f.configs.Get(ctx, id)
	require.NoError(t, err)
	require.NoError(t, f.folders.Upsert(ctx, domain.Folder{
		URL: "https://example.com/docs", ConnectorID: id, ConfigurationID: cfg.ID, UpdatedAt: time.Now(),
	}))
	require.NoError(t, f.pages.Upsert(ctx, domain.Page{
		URL: "https://example.com/docs/guide", ConnectorID: id, ConfigurationID: cfg.ID, UpdatedAt: time.Now(),
	}))

	require.NoError(t, f.svc.Cleanup(ctx, id))

	_, err = f.configs.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	folders, err := f.folders.ListByConnector(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, folders)
	pages, err := f.pages.ListByConnector(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, pages)
	assert.Equal(t, []string{id}, f.workflow.stops, "cleanup stops the session first")
}

func TestConfiguration(t *testing.T) {
	f := newConnectorFixture()
	id, err := f.svc.Create(context.Background(), validConfig())
	require.NoError(t, err)

	cfg, err := f.svc.Configuration(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, cfg.ConnectorID)

	_, err = f.svc.Configuration(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrConnectorNotFound)
}
