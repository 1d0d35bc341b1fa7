package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crawlsync/internal/core/domain"
)

// mockConnectorManager records lifecycle calls for command tests.
type mockConnectorManager struct {
	createID  string
	createErr error
	updateErr error
	stopErr   error
	cfg       *domain.CrawlConfiguration

	created []domain.CrawlConfiguration
	stopped []string
	cleaned []string
}

func (m *mockConnectorManager) Create(_ context.Context, cfg domain.CrawlConfiguration) (string, error) {
	m.created = append(m.created, cfg)
	return m.createID, m.createErr
}

func (m *mockConnectorManager) Update(context.Context, string, domain.CrawlConfiguration) error {
	return m.updateErr
}

func (m *mockConnectorManager) Stop(_ context.Context, connectorID string) error {
	if m.stopErr != nil {
		return m.stopErr
	}
	m.stopped = append(m.stopped, connectorID)
	return nil
}

func (m *mockConnectorManager) Cleanup(_ context.Context, connectorID string) error {
	m.cleaned = append(m.cleaned, connectorID)
	return nil
}

func (m *mockConnectorManager) Configuration(context.Context, string) (*domain.CrawlConfiguration, error) {
	if m.cfg == nil {
		return nil, domain.ErrConnectorNotFound
	}
	return m.cfg, nil
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func withManager(t *testing.T, m *mockConnectorManager) {
	t.Helper()
	original := connectorManager
	connectorManager = m
	t.Cleanup(func() { connectorManager = original })
}

func TestCreateCmd_Success(t *testing.T) {
	m := &mockConnectorManager{createID: "c1"}
	withManager(t, m)

	out, err := execute(t, "create", "https://example.com", "--depth", "3", "--mode", "website")
	require.NoError(t, err)
	assert.Contains(t, out, "Connector c1 created")

	require.Len(t, m.created, 1)
	assert.Equal(t, "https://example.com", m.created[0].URL)
	assert.Equal(t, 3, m.created[0].Depth)
	assert.Equal(t, domain.ModeWholeWebsite, m.created[0].Mode)
}

func TestCreateCmd_LaunchFailureIsReportedNotFatal(t *testing.T) {
	m := &mockConnectorManager{
		createID:  "c1",
		createErr: &domain.SignalError{Op: "launch", ConnectorID: "c1", Err: errors.New("runtime down")},
	}
	withManager(t, m)

	out, err := execute(t, "create", "https://example.com")
	require.NoError(t, err, "a signal failure after persisting is not a command failure")
	assert.Contains(t, out, "launch signal failed")
}

func TestCreateCmd_ValidationFailure(t *testing.T) {
	m := &mockConnectorManager{createErr: domain.ErrInvalidConfiguration}
	withManager(t, m)

	_, err := execute(t, "create", "https://example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestStopCmd(t *testing.T) {
	m := &mockConnectorManager{}
	withManager(t, m)

	out, err := execute(t, "stop", "c1")
	require.NoError(t, err)
	assert.Contains(t, out, "Connector c1 stopped")
	assert.Equal(t, []string{"c1"}, m.stopped)
}

func TestCleanupCmd(t *testing.T) {
	m := &mockConnectorManager{}
	withManager(t, m)

	out, err := execute(t, "cleanup", "c1")
	require.NoError(t, err)
	assert.Contains(t, out, "Connector c1 removed")
	assert.Equal(t, []string{"c1"}, m.cleaned)
}

func TestShowCmd(t *testing.T) {
	m := &mockConnectorManager{cfg: &domain.CrawlConfiguration{
		ConnectorID: "c1",
		URL:         "https://example.com",
		Depth:       2,
		MaxPages:    512,
		Mode:        domain.ModeChildPages,
		Frequency:   domain.FrequencyDaily,
	}}
	withManager(t, m)

	out, err := execute(t, "show", "c1")
	require.NoError(t, err)
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "never")
}

func TestShowCmd_UnknownConnector(t *testing.T) {
	withManager(t, &mockConnectorManager{})

	_, err := execute(t, "show", "ghost")
	assert.ErrorIs(t, err, domain.ErrConnectorNotFound)
}
