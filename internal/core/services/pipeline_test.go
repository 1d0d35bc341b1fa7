package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crawlsync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/crawlsync/internal/core/domain"
	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
)

// mockExtractor returns canned pages for every supported media type.
type mockExtractor struct {
	supported map[string]bool
	pages     []driven.ExtractedPage
	err       error
	calls     int
}

func (m *mockExtractor) SupportsMediaType(mediaType string) bool {
	return m.supported[mediaType]
}

func (m *mockExtractor) ExtractPages(_ context.Context, _ []byte, _ string) ([]driven.ExtractedPage, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.pages, nil
}

// failingTableStore rejects every upsert.
type failingTableStore struct{}

func (failingTableStore) UpsertTable(context.Context, driven.TableUpsert) error {
	return errors.New("table service unavailable")
}

func newTestNode(url, mediaType, content string) *domain.FetchedNode {
	return &domain.FetchedNode{
		ConnectorID:     "c1",
		ConfigurationID: "cfg1",
		URL:             url,
		MediaType:       mediaType,
		Content:         []byte(content),
	}
}

func TestIngest_PlainText(t *testing.T) {
	pipeline := NewContentPipeline(nil, nil, "")

	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/readme", "text/plain; charset=utf-8", "  hello world  \n"), 100)

	assert.Equal(t, domain.OutcomeIngested, result.Outcome)
	require.NotNil(t, result.Section)
	require.NotNil(t, result.Section.Content)
	assert.Equal(t, "hello world", *result.Section.Content)
	assert.Nil(t, result.Section.Prefix)
	assert.Empty(t, result.Section.Sections)
}

func TestIngest_OversizeGuardAppliesToEveryMediaType(t *testing.T) {
	extractor := &mockExtractor{supported: map[string]bool{"application/pdf": true}}
	tables := memory.NewTableStore()
	pipeline := NewContentPipeline(extractor, tables, "")

	big := strings.Repeat("x", 4*100+1)
	for _, mediaType := range []string{"text/plain", "text/csv", "text/html", "application/pdf", "application/x-unknown"} {
		result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/big", mediaType, big), 100)
		assert.Equal(t, domain.OutcomeSkippedTooLarge, result.Outcome, "media type %s", mediaType)
		assert.Nil(t, result.Section)
	}
	assert.Zero(t, extractor.calls, "the guard runs before extraction")
	assert.Zero(t, tables.Len())
}

func TestIngest_ExactlyAtGuardBoundary(t *testing.T) {
	pipeline := NewContentPipeline(nil, nil, "")

	atLimit := strings.Repeat("x", 4*100)
	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/edge", "text/plain", atLimit), 100)

	assert.Equal(t, domain.OutcomeIngested, result.Outcome)
}

func TestIngest_CSVUpsertsTable(t *testing.T) {
	tables := memory.NewTableStore()
	pipeline := NewContentPipeline(nil, tables, "Website")

	node := newTestNode("https://example.com/data/inventory.csv", "text/csv", "sku,qty\na,1\nb,2\n")
	node.FileName = "Inventory Export 2026.csv"
	node.NativeID = "native-42"

	result := pipeline.Ingest(context.Background(), node, 100)

	assert.Equal(t, domain.OutcomeIngestedAsTable, result.Outcome)
	require.NotNil(t, result.Section)
	assert.Nil(t, result.Section.Content, "table content lives in the tabular store")

	table, ok := tables.Table("native-42")
	require.True(t, ok)
	assert.Equal(t, "inventory-export-2026-csv", table.Name)
	assert.Equal(t, "Structured data from Website (Inventory Export 2026.csv)", table.Description)
	assert.Equal(t, [][]string{{"sku", "qty"}, {"a", "1"}, {"b", "2"}}, table.Rows)
}

func TestIngest_CSVParseFailureSkips(t *testing.T) {
	tables := memory.NewTableStore()
	pipeline := NewContentPipeline(nil, tables, "")

	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/bad.csv", "text/csv", "a,\"unterminated\n"), 100)

	assert.Equal(t, domain.OutcomeSkippedFailed, result.Outcome)
	assert.Nil(t, result.Section)
	assert.Zero(t, tables.Len())
}

func TestIngest_CSVUpsertFailureSkips(t *testing.T) {
	pipeline := NewContentPipeline(nil, failingTableStore{}, "")

	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/data.csv", "application/csv", "a,b\n1,2\n"), 100)

	assert.Equal(t, domain.OutcomeSkippedFailed, result.Outcome)
}

func TestIngest_HTML(t *testing.T) {
	pipeline := NewContentPipeline(nil, nil, "")

	html := `<html><body><article><h1>Title</h1><p>Body text of the page.</p></article></body></html>`
	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/page", "text/html; charset=utf-8", html), 10_000)

	assert.Equal(t, domain.OutcomeIngested, result.Outcome)
	require.NotNil(t, result.Section)
	require.NotNil(t, result.Section.Content)
	assert.Contains(t, *result.Section.Content, "Body text of the page")
}

func TestIngest_PDFPagePrefixes(t *testing.T) {
	extractor := &mockExtractor{
		supported: map[string]bool{"application/pdf": true},
		pages: []driven.ExtractedPage{
			{PageNumber: 1, Content: "first"},
			{PageNumber: 2, Content: "second"},
			{PageNumber: 3, Content: "third"},
		},
	}
	pipeline := NewContentPipeline(extractor, nil, "")

	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/manual.pdf", "application/pdf", "%PDF-1.7"), 10_000)

	assert.Equal(t, domain.OutcomeIngested, result.Outcome)
	require.NotNil(t, result.Section)
	assert.Nil(t, result.Section.Content, "top-level section carries only children")
	assert.Nil(t, result.Section.Prefix)
	require.Len(t, result.Section.Sections, 3)

	for i, want := range []string{"first", "second", "third"} {
		section := result.Section.Sections[i]
		require.NotNil(t, section.Prefix)
		assert.Equal(t, fmt.Sprintf("\n$pdfPage: %d/3\n", i+1), *section.Prefix)
		require.NotNil(t, section.Content)
		assert.Equal(t, want, *section.Content)
	}
}

func TestIngest_SlidePrefixes(t *testing.T) {
	const pptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	extractor := &mockExtractor{
		supported: map[string]bool{pptx: true},
		pages:     []driven.ExtractedPage{{PageNumber: 1, Content: "slide one"}},
	}
	pipeline := NewContentPipeline(extractor, nil, "")

	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/deck.pptx", pptx, "PK"), 10_000)

	require.Equal(t, domain.OutcomeIngested, result.Outcome)
	require.Len(t, result.Section.Sections, 1)
	require.NotNil(t, result.Section.Sections[0].Prefix)
	assert.Equal(t, "\n$slideNumber: 1/1\n", *result.Section.Sections[0].Prefix)
}

func TestIngest_ExtractableWithoutTemplateHasNilPrefixes(t *testing.T) {
	const docx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	extractor := &mockExtractor{
		supported: map[string]bool{docx: true},
		pages:     []driven.ExtractedPage{{PageNumber: 1, Content: "body"}},
	}
	pipeline := NewContentPipeline(extractor, nil, "")

	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/doc.docx", docx, "PK"), 10_000)

	require.Equal(t, domain.OutcomeIngested, result.Outcome)
	require.Len(t, result.Section.Sections, 1)
	assert.Nil(t, result.Section.Sections[0].Prefix)
}

func TestIngest_ExtractionFailureSkips(t *testing.T) {
	extractor := &mockExtractor{
		supported: map[string]bool{"application/pdf": true},
		err:       errors.New("extraction service down"),
	}
	pipeline := NewContentPipeline(extractor, nil, "")

	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/doc.pdf", "application/pdf", "%PDF"), 10_000)

	assert.Equal(t, domain.OutcomeSkippedFailed, result.Outcome)
	assert.Nil(t, result.Section)
}

func TestIngest_ZeroExtractedPagesSkips(t *testing.T) {
	extractor := &mockExtractor{supported: map[string]bool{"application/pdf": true}}
	pipeline := NewContentPipeline(extractor, nil, "")

	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/empty.pdf", "application/pdf", "%PDF"), 10_000)

	assert.Equal(t, domain.OutcomeSkippedFailed, result.Outcome)
}

func TestIngest_UnsupportedMediaType(t *testing.T) {
	extractor := &mockExtractor{supported: map[string]bool{}}
	pipeline := NewContentPipeline(extractor, nil, "")

	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/archive.zip", "application/zip", "PK"), 10_000)

	assert.Equal(t, domain.OutcomeSkippedUnsupported, result.Outcome)
	assert.Nil(t, result.Section)
	assert.Zero(t, extractor.calls)
}

func TestIngest_ZeroCeilingUsesDefault(t *testing.T) {
	pipeline := NewContentPipeline(nil, nil, "")

	result := pipeline.Ingest(context.Background(), newTestNode("https://example.com/x", "text/plain", "short"), 0)

	assert.Equal(t, domain.OutcomeIngested, result.Outcome)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Inventory Export.csv", "inventory-export-csv"},
		{"--weird--name--", "weird-name"},
		{"ALL_CAPS_123", "all-caps-123"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), "slugify(%q)", tt.in)
	}
}

func TestCanonicalMediaType(t *testing.T) {
	assert.Equal(t, "text/html", canonicalMediaType("Text/HTML; charset=UTF-8"))
	assert.Equal(t, "text/plain", canonicalMediaType(" text/plain "))
}
